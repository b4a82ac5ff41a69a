package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/statute"
)

func visibleIDs(d Derived) []int {
	out := make([]int, len(d.Visible))
	for i, entry := range d.Visible {
		out[i] = entry.Statute.ID
	}
	return out
}

func similarIDs(d Derived) []int {
	out := make([]int, len(d.Similar))
	for i, entry := range d.Similar {
		out[i] = entry.Statute.ID
	}
	return out
}

func selectedID(t *testing.T, s State) int {
	t.Helper()
	id, ok := s.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	return id
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s.SearchTerm != "" || s.Direction != query.Descending || s.AttemptMode || s.HasSelection() {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if s.Tolerance != query.DefaultTolerance {
		t.Errorf("tolerance = %d, want %d", s.Tolerance, query.DefaultTolerance)
	}
}

func TestApplyTransitions(t *testing.T) {
	s := NewState().WithSelected(3)

	s = Apply(s, SearchInput{Term: "x"})
	if s.SearchTerm != "x" {
		t.Errorf("search term = %q, want %q", s.SearchTerm, "x")
	}
	s = Apply(s, ToggleSort{})
	if s.Direction != query.Ascending {
		t.Errorf("direction = %s, want asc", s.Direction)
	}
	s = Apply(s, SetSort{Direction: query.Descending})
	if s.Direction != query.Descending {
		t.Errorf("direction = %s, want desc", s.Direction)
	}
	s = Apply(s, SetSort{Direction: "bogus"})
	if s.Direction != query.Descending {
		t.Errorf("invalid direction changed state to %s", s.Direction)
	}
	s = Apply(s, ToggleAttemptMode{})
	if !s.AttemptMode {
		t.Error("expected attempt mode on after toggle")
	}
	s = Apply(s, SetAttemptMode{On: false})
	if s.AttemptMode {
		t.Error("expected attempt mode off")
	}
	if got := selectedID(t, s); got != 3 {
		t.Errorf("selection changed to %d by non-selection events", got)
	}

	s = Apply(s, SelectStatute{ID: 5})
	if got := selectedID(t, s); got != 5 {
		t.Errorf("selected = %d, want 5", got)
	}
	if Apply(s, nil).SearchTerm != s.SearchTerm {
		t.Error("nil event should leave state unchanged")
	}
}

func TestApplyDoesNotAliasState(t *testing.T) {
	original := NewState()
	next := Apply(original, SelectStatute{ID: 2})
	if original.HasSelection() {
		t.Error("Apply mutated the input state")
	}
	if !next.HasSelection() {
		t.Error("expected selection in returned state")
	}
}

func TestDeriveDefaultSelection(t *testing.T) {
	derived := Derive(statute.Default(), NewState())

	if got := selectedID(t, derived.State); got != 1 {
		t.Errorf("default selection = %d, want 1", got)
	}
	if diff := cmp.Diff([]int{1, 2, 4, 3, 5}, visibleIDs(derived)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	if !derived.Visible[0].Selected {
		t.Error("first entry should be marked selected")
	}
	if derived.Detail == nil || derived.Detail.Statute.ID != 1 {
		t.Fatalf("expected detail for statute 1, got %+v", derived.Detail)
	}
	if derived.Detail.Hidden {
		t.Error("selected statute is visible but marked hidden")
	}
	if diff := cmp.Diff([]int{2}, similarIDs(derived)); diff != "" {
		t.Errorf("similar mismatch (-want +got):\n%s", diff)
	}
	if derived.Similar[0].Harshest != "10年以下の懲役" {
		t.Errorf("similar harshest = %q", derived.Similar[0].Harshest)
	}
}

func TestDeriveAscendingDefaultSelection(t *testing.T) {
	s := Apply(NewState(), SetSort{Direction: query.Ascending})
	derived := Derive(statute.Default(), s)
	if got := selectedID(t, derived.State); got != 3 {
		t.Errorf("default selection = %d, want 3", got)
	}
}

func TestDeriveIsPure(t *testing.T) {
	s := NewState()
	Derive(statute.Default(), s)
	if s.HasSelection() {
		t.Error("Derive mutated the caller's state")
	}
}

func TestSelectionPersistsWhenFilteredOut(t *testing.T) {
	session := NewSession(statute.Default())
	session.Dispatch(SelectStatute{ID: 4})
	derived := session.Dispatch(SearchInput{Term: "窃盗"})

	if diff := cmp.Diff([]int{1}, visibleIDs(derived)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	if got := selectedID(t, derived.State); got != 4 {
		t.Errorf("selection = %d, want 4", got)
	}
	if derived.Detail == nil || derived.Detail.Statute.ID != 4 {
		t.Fatalf("expected detail for hidden statute 4, got %+v", derived.Detail)
	}
	if !derived.Detail.Hidden {
		t.Error("expected detail to be marked hidden")
	}
	if derived.Visible[0].Selected {
		t.Error("visible statute 1 should not be marked selected")
	}
	if len(derived.Similar) != 0 {
		t.Errorf("expected no similar statutes, got %v", similarIDs(derived))
	}
}

func TestNoResultsKeepsSelection(t *testing.T) {
	session := NewSession(statute.Default())
	before := selectedID(t, session.State())

	derived := session.Dispatch(SearchInput{Term: "存在しない"})
	if !derived.Empty() {
		t.Fatalf("expected empty view, got %v", visibleIDs(derived))
	}
	if got := selectedID(t, derived.State); got != before {
		t.Errorf("selection = %d, want %d", got, before)
	}
	if derived.Detail == nil {
		t.Error("expected the previously selected statute to stay in the detail pane")
	}
}

func TestNoResultsWithoutSelection(t *testing.T) {
	s := Apply(NewState(), SearchInput{Term: "存在しない"})
	session := NewSessionWithState(statute.Default(), s)

	if session.State().HasSelection() {
		t.Error("auto-selection must not happen on an empty view")
	}
	if session.View().Detail != nil {
		t.Error("expected placeholder (nil detail) with nothing selected")
	}

	derived := session.Dispatch(SearchInput{Term: ""})
	if got := selectedID(t, derived.State); got != 1 {
		t.Errorf("selection after clearing search = %d, want 1", got)
	}
}

func TestAttemptModeWithoutAttemptPenalties(t *testing.T) {
	session := NewSession(statute.Default())
	session.Dispatch(SelectStatute{ID: 4})
	derived := session.Dispatch(ToggleAttemptMode{})

	if got := selectedID(t, derived.State); got != 4 {
		t.Errorf("selection = %d, want 4", got)
	}
	detail := derived.Detail
	if detail == nil {
		t.Fatal("expected detail")
	}
	if !detail.MissingAttempt {
		t.Error("expected missing attempt notice")
	}
	if detail.Severity != 5 {
		t.Errorf("severity = %d, want base severity 5", detail.Severity)
	}
	if diff := cmp.Diff(detail.Statute.Penalties, detail.Penalties); diff != "" {
		t.Errorf("expected base penalties (-want +got):\n%s", diff)
	}
	// In attempt mode 1, 2 and 4 are all 5 years; 3 and 5 are 3 years.
	if diff := cmp.Diff([]int{1, 2, 3, 5}, similarIDs(derived)); diff != "" {
		t.Errorf("similar mismatch (-want +got):\n%s", diff)
	}
}

func TestAttemptModeWithAttemptPenalties(t *testing.T) {
	session := NewSession(statute.Default())
	derived := session.Dispatch(SetAttemptMode{On: true})

	detail := derived.Detail
	if detail == nil || detail.Statute.ID != 1 {
		t.Fatalf("expected detail for statute 1, got %+v", detail)
	}
	if detail.MissingAttempt {
		t.Error("statute 1 defines attempt penalties")
	}
	if detail.Harshest != "5年以下の懲役" {
		t.Errorf("harshest = %q, want 5年以下の懲役", detail.Harshest)
	}
	if len(detail.Penalties) != 2 || detail.Penalties[0].ID != 11 {
		t.Errorf("unexpected attempt penalties: %+v", detail.Penalties)
	}
}

func TestSelectUnknownStatute(t *testing.T) {
	session := NewSession(statute.Default())
	derived := session.Dispatch(SelectStatute{ID: 99})

	if got := selectedID(t, derived.State); got != 99 {
		t.Errorf("selection = %d, want 99", got)
	}
	if derived.Detail != nil {
		t.Error("expected nil detail for unknown statute")
	}
}

func TestSessionSortToggleKeepsSelection(t *testing.T) {
	session := NewSession(statute.Default())
	derived := session.Dispatch(ToggleSort{})

	if diff := cmp.Diff([]int{3, 5, 4, 1, 2}, visibleIDs(derived)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	if got := selectedID(t, derived.State); got != 1 {
		t.Errorf("selection = %d, want 1", got)
	}
}

func TestSimilarUsesTolerance(t *testing.T) {
	s := NewState().WithSelected(1)
	s.Tolerance = 5
	derived := Derive(statute.Default(), s)
	if diff := cmp.Diff([]int{2, 4}, similarIDs(derived)); diff != "" {
		t.Errorf("similar mismatch (-want +got):\n%s", diff)
	}
}
