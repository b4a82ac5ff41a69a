package query

import (
	"sort"
	"strings"

	"github.com/coolbeans/keiho/pkg/statute"
)

// FilterByName keeps statutes whose name contains term, ignoring case. Only
// the name is matched. An empty term keeps everything. Input order is kept.
func FilterByName(statutes []statute.Statute, term string) []statute.Statute {
	needle := strings.ToLower(term)
	filtered := make([]statute.Statute, 0, len(statutes))
	for _, s := range statutes {
		if needle == "" || strings.Contains(strings.ToLower(s.Name), needle) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// SortBySeverity returns statutes ordered by MaxSeverity in the given
// direction. The sort is stable: statutes with equal severity keep their
// input order in both directions.
func SortBySeverity(statutes []statute.Statute, attempt bool, direction Direction) []statute.Statute {
	type ranked struct {
		statute  statute.Statute
		severity int
	}
	entries := make([]ranked, len(statutes))
	for i, s := range statutes {
		entries[i] = ranked{statute: s, severity: MaxSeverity(s, attempt)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if direction == Ascending {
			return entries[i].severity < entries[j].severity
		}
		return entries[i].severity > entries[j].severity
	})

	sorted := make([]statute.Statute, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.statute
	}
	return sorted
}

// SimilarTo returns the statutes, other than selected, whose severity is within
// tolerance years of the selected statute's severity under the same mode.
// Input order is kept. A nil selected yields an empty result, and a negative
// tolerance is treated as zero.
func SimilarTo(statutes []statute.Statute, selected *statute.Statute, attempt bool, tolerance int) []statute.Statute {
	similar := []statute.Statute{}
	if selected == nil {
		return similar
	}
	if tolerance < 0 {
		tolerance = 0
	}

	target := MaxSeverity(*selected, attempt)
	for _, candidate := range statutes {
		if candidate.ID == selected.ID {
			continue
		}
		distance := MaxSeverity(candidate, attempt) - target
		if distance < 0 {
			distance = -distance
		}
		if distance <= tolerance {
			similar = append(similar, candidate)
		}
	}
	return similar
}
