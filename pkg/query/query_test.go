package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coolbeans/keiho/pkg/statute"
)

func sampleStatutes(t *testing.T) []statute.Statute {
	t.Helper()
	return statute.Default().All()
}

func ids(statutes []statute.Statute) []int {
	out := make([]int, len(statutes))
	for i, s := range statutes {
		out[i] = s.ID
	}
	return out
}

func severities(statutes []statute.Statute, attempt bool) []int {
	out := make([]int, len(statutes))
	for i, s := range statutes {
		out[i] = MaxSeverity(s, attempt)
	}
	return out
}

func findStatute(t *testing.T, statutes []statute.Statute, id int) statute.Statute {
	t.Helper()
	for _, s := range statutes {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("statute %d not in sample", id)
	return statute.Statute{}
}

func TestEffectivePenalties(t *testing.T) {
	for _, s := range sampleStatutes(t) {
		if diff := cmp.Diff(s.Penalties, EffectivePenalties(s, false)); diff != "" {
			t.Errorf("statute %d base penalties mismatch (-want +got):\n%s", s.ID, diff)
		}

		want := s.Penalties
		if s.HasAttemptPenalties() {
			want = s.AttemptPenalties
		}
		if diff := cmp.Diff(want, EffectivePenalties(s, true)); diff != "" {
			t.Errorf("statute %d attempt penalties mismatch (-want +got):\n%s", s.ID, diff)
		}
	}
}

func TestMaxSeverity(t *testing.T) {
	statutes := sampleStatutes(t)

	if diff := cmp.Diff([]int{10, 10, 3, 5, 3}, severities(statutes, false)); diff != "" {
		t.Errorf("base severities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 5, 3, 5, 3}, severities(statutes, true)); diff != "" {
		t.Errorf("attempt severities mismatch (-want +got):\n%s", diff)
	}

	// Pure: repeated calls agree.
	for _, s := range statutes {
		if MaxSeverity(s, true) != MaxSeverity(s, true) {
			t.Errorf("MaxSeverity not idempotent for statute %d", s.ID)
		}
	}
}

func TestMaxSeverityAttemptFallback(t *testing.T) {
	embezzlement := findStatute(t, sampleStatutes(t), 4)
	if embezzlement.HasAttemptPenalties() {
		t.Fatal("statute 4 should not define attempt penalties")
	}
	if got, want := MaxSeverity(embezzlement, true), MaxSeverity(embezzlement, false); got != want {
		t.Errorf("attempt severity = %d, want base severity %d", got, want)
	}
}

func TestMaxSeverityNonCustodialOnly(t *testing.T) {
	fineOnly := statute.Statute{ID: 9, Name: "fine", Penalties: []statute.Penalty{
		{ID: 1, Description: "fine", ImprisonmentYears: 0},
	}}
	if got := MaxSeverity(fineOnly, false); got != 0 {
		t.Errorf("MaxSeverity = %d, want 0", got)
	}
}

func TestMaxSeverityPanicsOnEmpty(t *testing.T) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected panic for statute without penalties")
		}
		err, ok := recovered.(error)
		if !ok || !errors.Is(err, ErrNoPenalties) {
			t.Errorf("expected ErrNoPenalties, got %v", recovered)
		}
	}()
	MaxSeverity(statute.Statute{ID: 1, Name: "empty"}, false)
}

func TestHarshestPenaltyLabel(t *testing.T) {
	statutes := sampleStatutes(t)
	tests := []struct {
		id      int
		attempt bool
		want    string
	}{
		{id: 1, attempt: false, want: "10年以下の懲役"},
		{id: 1, attempt: true, want: "5年以下の懲役"},
		{id: 3, attempt: false, want: "3年以下の懲役"},
		{id: 4, attempt: true, want: "5年以下の懲役"},
		{id: 5, attempt: false, want: "3年以下の懲役"},
	}

	for _, tc := range tests {
		got := HarshestPenaltyLabel(findStatute(t, statutes, tc.id), tc.attempt)
		if got != tc.want {
			t.Errorf("HarshestPenaltyLabel(%d, %v) = %q, want %q", tc.id, tc.attempt, got, tc.want)
		}
	}
}

func TestHarshestPenaltyFirstOfTies(t *testing.T) {
	s := statute.Statute{ID: 1, Name: "ties", Penalties: []statute.Penalty{
		{ID: 1, Description: "fine", ImprisonmentYears: 0},
		{ID: 2, Description: "first", ImprisonmentYears: 4},
		{ID: 3, Description: "second", ImprisonmentYears: 4},
	}}
	if got := HarshestPenalty(s, false); got.ID != 2 {
		t.Errorf("HarshestPenalty picked id %d, want 2", got.ID)
	}
}

func TestFilterByName(t *testing.T) {
	statutes := []statute.Statute{
		{ID: 1, Name: "Theft", Penalties: []statute.Penalty{{ID: 1, ImprisonmentYears: 10}}},
		{ID: 2, Name: "Fraud", Penalties: []statute.Penalty{{ID: 2, ImprisonmentYears: 10}}},
		{ID: 3, Name: "Obstruction", Description: "theft is not mentioned in the name", Penalties: []statute.Penalty{{ID: 3, ImprisonmentYears: 3}}},
		{ID: 4, Name: "Identity THEFT", Penalties: []statute.Penalty{{ID: 4, ImprisonmentYears: 5}}},
	}

	tests := []struct {
		term string
		want []int
	}{
		{term: "", want: []int{1, 2, 3, 4}},
		{term: "theft", want: []int{1, 4}},
		{term: "THEFT", want: []int{1, 4}},
		{term: "frau", want: []int{2}},
		{term: "arson", want: []int{}},
	}

	for _, tc := range tests {
		got := ids(FilterByName(statutes, tc.term))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("FilterByName(%q) mismatch (-want +got):\n%s", tc.term, diff)
		}
	}
}

func TestFilterByNameIdempotent(t *testing.T) {
	statutes := sampleStatutes(t)
	once := FilterByName(statutes, "罪")
	twice := FilterByName(once, "罪")
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("filtering twice changed result (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(ids(statutes), ids(FilterByName(statutes, ""))); diff != "" {
		t.Errorf("empty term is not identity (-want +got):\n%s", diff)
	}
}

func TestFilterByNameSampleTheft(t *testing.T) {
	statutes := sampleStatutes(t)
	for _, direction := range []Direction{Ascending, Descending} {
		got := FilterByName(SortBySeverity(statutes, false, direction), "窃盗")
		if diff := cmp.Diff([]int{1}, ids(got)); diff != "" {
			t.Errorf("search for theft (%s) mismatch (-want +got):\n%s", direction, diff)
		}
	}
}

func TestSortBySeverity(t *testing.T) {
	statutes := sampleStatutes(t)

	descending := SortBySeverity(statutes, false, Descending)
	if diff := cmp.Diff([]int{10, 10, 5, 3, 3}, severities(descending, false)); diff != "" {
		t.Errorf("descending severities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 4, 3, 5}, ids(descending)); diff != "" {
		t.Errorf("descending ids mismatch (-want +got):\n%s", diff)
	}

	ascending := SortBySeverity(statutes, false, Ascending)
	if diff := cmp.Diff([]int{3, 3, 5, 10, 10}, severities(ascending, false)); diff != "" {
		t.Errorf("ascending severities mismatch (-want +got):\n%s", diff)
	}
	// Ties keep input order in both directions.
	if diff := cmp.Diff([]int{3, 5, 4, 1, 2}, ids(ascending)); diff != "" {
		t.Errorf("ascending ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSortBySeverityAttemptMode(t *testing.T) {
	sorted := SortBySeverity(sampleStatutes(t), true, Descending)
	if diff := cmp.Diff([]int{1, 2, 4, 3, 5}, ids(sorted)); diff != "" {
		t.Errorf("attempt descending ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSortBySeverityIdempotentAndPure(t *testing.T) {
	statutes := sampleStatutes(t)
	before := ids(statutes)

	once := SortBySeverity(statutes, false, Descending)
	twice := SortBySeverity(once, false, Descending)
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("sorting twice changed order (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(before, ids(statutes)); diff != "" {
		t.Errorf("input was reordered in place (-before +after):\n%s", diff)
	}
}

func TestSortBySeverityReverseNonTied(t *testing.T) {
	statutes := sampleStatutes(t)
	descending := SortBySeverity(statutes, false, Descending)
	ascending := SortBySeverity(statutes, false, Ascending)

	position := func(sorted []statute.Statute) map[int]int {
		out := make(map[int]int, len(sorted))
		for i, s := range sorted {
			out[s.ID] = i
		}
		return out
	}
	descPos, ascPos := position(descending), position(ascending)

	for _, a := range statutes {
		for _, b := range statutes {
			if MaxSeverity(a, false) == MaxSeverity(b, false) {
				continue
			}
			if (descPos[a.ID] < descPos[b.ID]) == (ascPos[a.ID] < ascPos[b.ID]) {
				t.Errorf("statutes %d and %d keep relative order after reversing direction", a.ID, b.ID)
			}
		}
	}
}

func TestSimilarTo(t *testing.T) {
	statutes := sampleStatutes(t)
	tests := []struct {
		name     string
		selected int
		attempt  bool
		want     []int
	}{
		{name: "theft base", selected: 1, want: []int{2}},
		{name: "embezzlement base", selected: 4, want: []int{3, 5}},
		{name: "obstruction base", selected: 3, want: []int{4, 5}},
		{name: "theft attempt", selected: 1, attempt: true, want: []int{2, 3, 4, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			selected := findStatute(t, statutes, tc.selected)
			got := SimilarTo(statutes, &selected, tc.attempt, DefaultTolerance)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Errorf("SimilarTo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimilarToSeverityWindow(t *testing.T) {
	statutes := sampleStatutes(t)
	selected := findStatute(t, statutes, 1)
	for _, s := range SimilarTo(statutes, &selected, false, DefaultTolerance) {
		severity := MaxSeverity(s, false)
		if severity < 8 || severity > 12 {
			t.Errorf("statute %d severity %d outside [8,12]", s.ID, severity)
		}
	}
}

func TestSimilarToExcludesSelectedAndIsSymmetric(t *testing.T) {
	statutes := sampleStatutes(t)
	for _, attempt := range []bool{false, true} {
		for _, a := range statutes {
			a := a
			similar := SimilarTo(statutes, &a, attempt, DefaultTolerance)
			for _, b := range similar {
				if b.ID == a.ID {
					t.Errorf("statute %d is similar to itself", a.ID)
				}
				b := b
				reverse := SimilarTo(statutes, &b, attempt, DefaultTolerance)
				found := false
				for _, r := range reverse {
					if r.ID == a.ID {
						found = true
					}
				}
				if !found {
					t.Errorf("attempt=%v: %d similar to %d but not the reverse", attempt, b.ID, a.ID)
				}
			}
		}
	}
}

func TestSimilarToEdgeCases(t *testing.T) {
	statutes := sampleStatutes(t)
	if got := SimilarTo(statutes, nil, false, DefaultTolerance); len(got) != 0 {
		t.Errorf("expected empty result without selection, got %v", ids(got))
	}

	selected := findStatute(t, statutes, 3)
	got := SimilarTo(statutes, &selected, false, -5)
	if diff := cmp.Diff([]int{5}, ids(got)); diff != "" {
		t.Errorf("negative tolerance mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{input: "", want: Descending},
		{input: "desc", want: Descending},
		{input: "Descending", want: Descending},
		{input: "ASC", want: Ascending},
		{input: " ascending ", want: Ascending},
		{input: "sideways", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseDirection(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("ParseDirection(%q) error = %v, want ErrInvalidDirection", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if Descending.Reverse() != Ascending || Ascending.Reverse() != Descending {
		t.Error("Reverse does not flip direction")
	}
}
