package query

import (
	"errors"
	"fmt"

	"github.com/coolbeans/keiho/pkg/statute"
)

// ErrNoPenalties marks a statute whose effective penalty set is empty. A
// validated catalog never contains one.
var ErrNoPenalties = errors.New("statute has no penalties")

// EffectivePenalties returns the attempt penalties when attempt is set and the
// statute defines them, and the completed-offense penalties otherwise.
func EffectivePenalties(s statute.Statute, attempt bool) []statute.Penalty {
	if attempt && s.HasAttemptPenalties() {
		return s.AttemptPenalties
	}
	return s.Penalties
}

// HarshestPenalty returns the first penalty, in input order, holding the
// maximum imprisonment term of the effective set. It panics on an empty set.
func HarshestPenalty(s statute.Statute, attempt bool) statute.Penalty {
	penalties := EffectivePenalties(s, attempt)
	if len(penalties) == 0 {
		panic(fmt.Errorf("%w: statute %d", ErrNoPenalties, s.ID))
	}

	harshest := penalties[0]
	for _, p := range penalties[1:] {
		if p.ImprisonmentYears > harshest.ImprisonmentYears {
			harshest = p
		}
	}
	return harshest
}

// MaxSeverity returns the maximum imprisonment years over the effective set.
func MaxSeverity(s statute.Statute, attempt bool) int {
	return HarshestPenalty(s, attempt).ImprisonmentYears
}

// HarshestPenaltyLabel returns the description of the harshest penalty.
func HarshestPenaltyLabel(s statute.Statute, attempt bool) string {
	return HarshestPenalty(s, attempt).Description
}
