package view

import (
	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/statute"
)

// Entry is a statute as listed, with its severity under the current mode.
type Entry struct {
	Statute  statute.Statute `json:"statute"`
	Severity int             `json:"severity"`
	Selected bool            `json:"selected"`
}

// SimilarEntry is a row of the similar-statutes pane.
type SimilarEntry struct {
	Statute  statute.Statute `json:"statute"`
	Severity int             `json:"severity"`
	Harshest string          `json:"harshest"`
}

// Detail is the detail pane for the selected statute.
type Detail struct {
	Statute     statute.Statute   `json:"statute"`
	Penalties   []statute.Penalty `json:"penalties"`
	Severity    int               `json:"severity"`
	Harshest    string            `json:"harshest"`
	AttemptMode bool              `json:"attempt_mode"`

	// MissingAttempt is set when the attempt view is active but the statute
	// defines no attempt penalties; Penalties then holds the base set.
	MissingAttempt bool `json:"missing_attempt"`

	// Hidden is set when the selected statute is filtered out of the list.
	Hidden bool `json:"hidden"`
}

// Derived is everything the presentation layer renders for one state.
type Derived struct {
	// State is the input state after the default-selection rule.
	State State `json:"state"`

	Visible []Entry        `json:"visible"`
	Detail  *Detail        `json:"detail,omitempty"`
	Similar []SimilarEntry `json:"similar"`
}

// Empty reports whether the filtered list has no statutes.
func (d Derived) Empty() bool {
	return len(d.Visible) == 0
}

// Derive computes the filtered and sorted list, applies the default-selection
// rule, and builds the detail and similar panes. When nothing is selected and
// the list is non-empty, the first listed statute becomes selected; the
// returned Derived.State carries that selection and should replace the
// caller's state.
//
// The selected statute is looked up in the whole catalog, so it stays in the
// detail pane when the search hides it. An id unknown to the catalog yields a
// nil Detail.
func Derive(catalog *statute.Catalog, s State) Derived {
	statutes := catalog.All()
	visible := query.SortBySeverity(query.FilterByName(statutes, s.SearchTerm), s.AttemptMode, s.Direction)

	if !s.HasSelection() && len(visible) > 0 {
		s = s.WithSelected(visible[0].ID)
	}

	derived := Derived{
		State:   s,
		Visible: make([]Entry, len(visible)),
		Similar: []SimilarEntry{},
	}

	selectedID, hasSelection := s.Selected()
	visibleSelected := false
	for i, candidate := range visible {
		isSelected := hasSelection && candidate.ID == selectedID
		visibleSelected = visibleSelected || isSelected
		derived.Visible[i] = Entry{
			Statute:  candidate,
			Severity: query.MaxSeverity(candidate, s.AttemptMode),
			Selected: isSelected,
		}
	}

	if !hasSelection {
		return derived
	}
	selected, err := catalog.Get(selectedID)
	if err != nil {
		return derived
	}

	harshest := query.HarshestPenalty(selected, s.AttemptMode)
	derived.Detail = &Detail{
		Statute:        selected,
		Penalties:      query.EffectivePenalties(selected, s.AttemptMode),
		Severity:       harshest.ImprisonmentYears,
		Harshest:       harshest.Description,
		AttemptMode:    s.AttemptMode,
		MissingAttempt: s.AttemptMode && !selected.HasAttemptPenalties(),
		Hidden:         !visibleSelected,
	}

	for _, similar := range query.SimilarTo(visible, &selected, s.AttemptMode, s.Tolerance) {
		similarHarshest := query.HarshestPenalty(similar, s.AttemptMode)
		derived.Similar = append(derived.Similar, SimilarEntry{
			Statute:  similar,
			Severity: similarHarshest.ImprisonmentYears,
			Harshest: similarHarshest.Description,
		})
	}

	return derived
}
