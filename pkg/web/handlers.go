package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/statute"
	"github.com/coolbeans/keiho/pkg/view"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string `json:"error"`
}

// statuteResponse is a statute with its severity under the requested mode.
type statuteResponse struct {
	statute.Statute
	AttemptMode bool              `json:"attempt_mode"`
	Effective   []statute.Penalty `json:"effective_penalties"`
	Severity    int               `json:"severity"`
	Harshest    string            `json:"harshest"`
}

func newStatuteResponse(s statute.Statute, attempt bool) statuteResponse {
	harshest := query.HarshestPenalty(s, attempt)
	return statuteResponse{
		Statute:     s,
		AttemptMode: attempt,
		Effective:   query.EffectivePenalties(s, attempt),
		Severity:    harshest.ImprisonmentYears,
		Harshest:    harshest.Description,
	}
}

func (s *Server) derive(state view.State) view.Derived {
	s.metrics.observeDerivation(state.AttemptMode)
	return view.Derive(s.catalog, state)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state, err := stateFromQuery(r.URL.Query(), s.defaults)
	data := page{Labels: s.labels, defaults: s.defaults}
	if err != nil {
		s.logger.Warn().Err(err).Str("query", r.URL.RawQuery).Msg("ignoring malformed view parameters")
		data.Warning = err.Error()
	}
	data.View = s.derive(state)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	state, err := stateFromQuery(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, s.derive(state))
}

func (s *Server) handleStatutes(w http.ResponseWriter, r *http.Request) {
	attempt, err := attemptParam(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	statutes := s.catalog.All()
	out := make([]statuteResponse, len(statutes))
	for i, st := range statutes {
		out[i] = newStatuteResponse(st, attempt)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatute(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	id, err := strconv.Atoi(rawID)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "statute id must be an integer: " + rawID})
		return
	}
	attempt, err := attemptParam(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	st, err := s.catalog.Get(id)
	if errors.Is(err, statute.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, newStatuteResponse(st, attempt))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"statutes": s.catalog.Len(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found: " + r.URL.Path})
}

func attemptParam(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get(paramAttempt)
	if raw == "" {
		return false, nil
	}
	on, err := parseFlag(raw)
	if err != nil {
		return false, errors.Join(ErrBadParameter, err)
	}
	return on, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
