// Package statute holds the immutable catalog of statutes and their
// penalty sets, loaded once from an embedded dataset.
package statute

// Penalty is a single sanction attached to a statute.
type Penalty struct {
	ID          int    `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`

	// ImprisonmentYears is the severity measure. Zero marks a non-custodial
	// penalty (fine or petty fine) and is the lowest comparable severity.
	ImprisonmentYears int `yaml:"imprisonment_years" json:"imprisonment_years"`
}

// Statute is a named legal provision with its completed-offense penalties
// and, optionally, the penalties for an attempted offense.
type Statute struct {
	ID          int       `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Penalties   []Penalty `yaml:"penalties" json:"penalties"`

	// AttemptPenalties is nil when the statute defines no sanction for an
	// attempted offense.
	AttemptPenalties []Penalty `yaml:"attempt_penalties,omitempty" json:"attempt_penalties,omitempty"`
}

// HasAttemptPenalties reports whether an attempt-specific penalty set exists.
func (s Statute) HasAttemptPenalties() bool {
	return s.AttemptPenalties != nil
}

// clone returns a deep copy so catalog callers cannot mutate shared slices.
func (s Statute) clone() Statute {
	out := s
	out.Penalties = append([]Penalty(nil), s.Penalties...)
	if s.AttemptPenalties != nil {
		out.AttemptPenalties = append([]Penalty{}, s.AttemptPenalties...)
	}
	return out
}

// dataset is the on-disk shape of a catalog file.
type dataset struct {
	Statutes []Statute `yaml:"statutes"`
}
