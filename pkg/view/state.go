// Package view implements the explorer's selection and view state: the
// user-controlled parameters, the events that change them, and the pure
// derivation of what the presentation layer shows.
package view

import (
	"github.com/coolbeans/keiho/pkg/query"
)

// State is the complete set of user-controlled view parameters. It is a value
// type; transitions return a new State.
type State struct {
	SearchTerm  string          `json:"search_term"`
	Direction   query.Direction `json:"direction"`
	AttemptMode bool            `json:"attempt_mode"`

	// SelectedID is nil until a statute is selected, either explicitly or by
	// the default-selection rule in Derive.
	SelectedID *int `json:"selected_id,omitempty"`

	// Tolerance is the severity distance used for the similar-statutes pane.
	Tolerance int `json:"tolerance"`
}

// NewState returns the initial state: empty search, descending sort,
// completed-offense penalties, nothing selected.
func NewState() State {
	return State{
		Direction: query.Descending,
		Tolerance: query.DefaultTolerance,
	}
}

// HasSelection reports whether a statute id is selected.
func (s State) HasSelection() bool {
	return s.SelectedID != nil
}

// Selected returns the selected id and whether one is set.
func (s State) Selected() (int, bool) {
	if s.SelectedID == nil {
		return 0, false
	}
	return *s.SelectedID, true
}

// WithSelected returns a copy of s with id selected.
func (s State) WithSelected(id int) State {
	s.SelectedID = &id
	return s
}

// Event is a user action forwarded by a presentation layer.
type Event interface {
	apply(State) State
}

// SearchInput replaces the search text.
type SearchInput struct {
	Term string
}

// SetSort sets the sort direction.
type SetSort struct {
	Direction query.Direction
}

// ToggleSort flips the sort direction.
type ToggleSort struct{}

// SetAttemptMode switches between completed and attempted penalty sets.
type SetAttemptMode struct {
	On bool
}

// ToggleAttemptMode flips the attempt-penalty view.
type ToggleAttemptMode struct{}

// SelectStatute is a click on a statute in the main or similar list.
type SelectStatute struct {
	ID int
}

func (e SearchInput) apply(s State) State {
	s.SearchTerm = e.Term
	return s
}

func (e SetSort) apply(s State) State {
	if e.Direction.Valid() {
		s.Direction = e.Direction
	}
	return s
}

func (ToggleSort) apply(s State) State {
	s.Direction = s.Direction.Reverse()
	return s
}

func (e SetAttemptMode) apply(s State) State {
	s.AttemptMode = e.On
	return s
}

func (ToggleAttemptMode) apply(s State) State {
	s.AttemptMode = !s.AttemptMode
	return s
}

func (e SelectStatute) apply(s State) State {
	return s.WithSelected(e.ID)
}

// Apply returns the state after event. Only SelectStatute changes the
// selection; search, sort and mode changes leave it untouched even when the
// selected statute is no longer visible.
func Apply(s State, event Event) State {
	if event == nil {
		return s
	}
	return event.apply(s)
}
