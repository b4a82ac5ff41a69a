package statute

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid field of a statute record.
type ValidationError struct {
	StatuteID int
	Field     string
	Message   string
	Value     interface{}
}

// Error formats the violation as "statute <id>: <field>: <message>".
func (e ValidationError) Error() string {
	msg := fmt.Sprintf("statute %d: %s: %s", e.StatuteID, e.Field, e.Message)
	if e.Value != nil {
		msg += fmt.Sprintf(" (got: %v)", e.Value)
	}
	return msg
}

// ValidationErrors is every violation found in one dataset, in record order.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return "statute catalog: no violations"
	case 1:
		return "invalid statute catalog: " + errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid statute catalog (%d violations):", len(errs))
	for _, err := range errs {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Validate checks the dataset invariants: every statute has a name and at
// least one penalty, statute ids are unique, penalty ids are unique across the
// whole dataset, severities are non-negative, and a present attempt set is
// non-empty. All violations are reported, not just the first.
func Validate(statutes []Statute) ValidationErrors {
	var errs ValidationErrors

	statuteIDs := make(map[int]bool, len(statutes))
	penaltyOwners := make(map[int]int)

	for _, s := range statutes {
		if statuteIDs[s.ID] {
			errs = append(errs, ValidationError{
				StatuteID: s.ID,
				Field:     "id",
				Message:   "duplicate statute id",
				Value:     s.ID,
			})
		}
		statuteIDs[s.ID] = true

		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, ValidationError{
				StatuteID: s.ID,
				Field:     "name",
				Message:   "required field is missing",
			})
		}

		if len(s.Penalties) == 0 {
			errs = append(errs, ValidationError{
				StatuteID: s.ID,
				Field:     "penalties",
				Message:   "at least one penalty is required",
			})
		}

		if s.AttemptPenalties != nil && len(s.AttemptPenalties) == 0 {
			errs = append(errs, ValidationError{
				StatuteID: s.ID,
				Field:     "attempt_penalties",
				Message:   "must be omitted or contain at least one penalty",
			})
		}

		errs = append(errs, validatePenalties(s.ID, "penalties", s.Penalties, penaltyOwners)...)
		errs = append(errs, validatePenalties(s.ID, "attempt_penalties", s.AttemptPenalties, penaltyOwners)...)
	}

	return errs
}

func validatePenalties(statuteID int, field string, penalties []Penalty, owners map[int]int) ValidationErrors {
	var errs ValidationErrors
	for i, p := range penalties {
		location := fmt.Sprintf("%s[%d]", field, i)
		if owner, seen := owners[p.ID]; seen {
			errs = append(errs, ValidationError{
				StatuteID: statuteID,
				Field:     location + ".id",
				Message:   fmt.Sprintf("penalty id already used by statute %d", owner),
				Value:     p.ID,
			})
		} else {
			owners[p.ID] = statuteID
		}
		if p.ImprisonmentYears < 0 {
			errs = append(errs, ValidationError{
				StatuteID: statuteID,
				Field:     location + ".imprisonment_years",
				Message:   "must be non-negative",
				Value:     p.ImprisonmentYears,
			})
		}
	}
	return errs
}
