package web

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/view"
)

// Query parameter names carrying the view state.
const (
	paramSearch    = "q"
	paramSort      = "sort"
	paramAttempt   = "attempt"
	paramSelected  = "selected"
	paramTolerance = "tol"
)

// ErrBadParameter marks a malformed view-state query parameter.
var ErrBadParameter = errors.New("bad parameter")

// stateFromQuery reads a view state from URL query values, starting from
// base. Every malformed parameter is skipped and reported in the returned
// error; the state still reflects every well-formed one.
func stateFromQuery(values url.Values, base view.State) (view.State, error) {
	s := base
	var problems []string

	if values.Has(paramSearch) {
		s.SearchTerm = values.Get(paramSearch)
	}

	if raw := values.Get(paramSort); raw != "" {
		direction, err := query.ParseDirection(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s=%q", paramSort, raw))
		} else {
			s.Direction = direction
		}
	}

	if raw := values.Get(paramAttempt); raw != "" {
		on, err := parseFlag(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s=%q", paramAttempt, raw))
		} else {
			s.AttemptMode = on
		}
	}

	if raw := values.Get(paramSelected); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s=%q", paramSelected, raw))
		} else {
			s = s.WithSelected(id)
		}
	}

	if raw := values.Get(paramTolerance); raw != "" {
		tolerance, err := strconv.Atoi(raw)
		if err != nil || tolerance < 0 {
			problems = append(problems, fmt.Sprintf("%s=%q", paramTolerance, raw))
		} else {
			s.Tolerance = tolerance
		}
	}

	if len(problems) > 0 {
		return s, fmt.Errorf("%w: %s", ErrBadParameter, strings.Join(problems, ", "))
	}
	return s, nil
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", raw)
}

// queryFromState encodes s so that stateFromQuery restores it.
func queryFromState(s view.State, defaults view.State) url.Values {
	values := url.Values{}
	if s.SearchTerm != "" {
		values.Set(paramSearch, s.SearchTerm)
	}
	if s.Direction != defaults.Direction {
		values.Set(paramSort, s.Direction.String())
	}
	if s.AttemptMode {
		values.Set(paramAttempt, "1")
	}
	if id, ok := s.Selected(); ok {
		values.Set(paramSelected, strconv.Itoa(id))
	}
	if s.Tolerance != defaults.Tolerance {
		values.Set(paramTolerance, strconv.Itoa(s.Tolerance))
	}
	return values
}
