package view

import "github.com/coolbeans/keiho/pkg/statute"

// Session threads a State through successive events for one interactive
// user. It is not safe for concurrent use; a UI event loop owns it.
type Session struct {
	catalog *statute.Catalog
	state   State
	derived Derived
}

// NewSession starts a session in the initial state, with the default
// selection already applied.
func NewSession(catalog *statute.Catalog) *Session {
	return NewSessionWithState(catalog, NewState())
}

// NewSessionWithState starts a session from an existing state.
func NewSessionWithState(catalog *statute.Catalog, initial State) *Session {
	session := &Session{catalog: catalog}
	session.derive(initial)
	return session
}

// Dispatch applies event, re-derives the view and returns it.
func (s *Session) Dispatch(event Event) Derived {
	s.derive(Apply(s.state, event))
	return s.derived
}

// View returns the most recently derived view.
func (s *Session) View() Derived {
	return s.derived
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) derive(next State) {
	s.derived = Derive(s.catalog, next)
	s.state = s.derived.State
}
