package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/view"
)

// SortLabel returns the label for a sort direction.
func (l Labels) SortLabel(direction query.Direction) string {
	if direction == query.Ascending {
		return l.SortAscending
	}
	return l.SortDescending
}

// DetailHeading returns the statute name, suffixed in attempt mode.
func (l Labels) DetailHeading(detail *view.Detail) string {
	if detail.AttemptMode {
		return detail.Statute.Name + l.AttemptSuffix
	}
	return detail.Statute.Name
}

// HarshestLine formats a harshest-penalty label, e.g. "最高刑: 10年以下の懲役".
func (l Labels) HarshestLine(harshest string) string {
	return fmt.Sprintf("%s: %s", l.HarshestPrefix, harshest)
}

// Text writes the list, detail and similar panes of derived as plain text.
func Text(w io.Writer, derived view.Derived, labels Labels) error {
	var sb strings.Builder

	sb.WriteString(labels.Title)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "[%s]", labels.SortLabel(derived.State.Direction))
	if derived.State.SearchTerm != "" {
		fmt.Fprintf(&sb, " %q", derived.State.SearchTerm)
	}
	if derived.State.AttemptMode {
		fmt.Fprintf(&sb, " [%s]", labels.AttemptToggle)
	}
	sb.WriteString("\n\n")

	writeList(&sb, derived, labels)
	sb.WriteString("\n")

	if derived.Detail == nil {
		sb.WriteString(labels.SelectPrompt)
		sb.WriteString("\n")
	} else {
		writeDetail(&sb, derived.Detail, labels)
		sb.WriteString("\n")
		writeSimilar(&sb, derived, labels)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, derived view.Derived, labels Labels) {
	sb.WriteString("== " + labels.StatuteList + " ==\n")
	if derived.Empty() {
		sb.WriteString("  " + labels.NoResults + "\n")
		return
	}
	for _, entry := range derived.Visible {
		marker := " "
		if entry.Selected {
			marker = "*"
		}
		fmt.Fprintf(sb, "%s %2d  %-12s %2d\n", marker, entry.Statute.ID, entry.Statute.Name, entry.Severity)
	}
}

func writeDetail(sb *strings.Builder, detail *view.Detail, labels Labels) {
	sb.WriteString("== " + labels.Details + " ==\n")
	sb.WriteString(labels.DetailHeading(detail) + "\n")
	if detail.Hidden {
		sb.WriteString("(" + labels.HiddenNotice + ")\n")
	}
	sb.WriteString(detail.Statute.Description + "\n")
	sb.WriteString(labels.Penalties + ":\n")
	for _, penalty := range detail.Penalties {
		sb.WriteString("  - " + penalty.Description + "\n")
	}
	if detail.MissingAttempt {
		sb.WriteString("! " + labels.MissingAttempt + "\n")
	}
}

func writeSimilar(sb *strings.Builder, derived view.Derived, labels Labels) {
	sb.WriteString("== " + labels.Similar + " ==\n")
	if len(derived.Similar) == 0 {
		sb.WriteString("  " + labels.NoSimilar + "\n")
		return
	}
	for _, entry := range derived.Similar {
		fmt.Fprintf(sb, "  %2d  %s  %s\n", entry.Statute.ID, entry.Statute.Name, labels.HarshestLine(entry.Harshest))
	}
}
