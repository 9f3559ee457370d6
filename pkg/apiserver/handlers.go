package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// RespondRequest is the inbound turn payload.
type RespondRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// RespondResponse is the structured reply for one turn.
type RespondResponse struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Priority  string `json:"priority"`
	Badge     string `json:"badge"`
	Error     string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubjects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"subjects": allowedSubjects()})
}

// handleRespond runs one moderation turn: load session, respond, append
// the turn to history, persist. Turns for the same session must not be
// issued concurrently by the caller.
func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	ctx := r.Context()
	var state *session.State
	if req.SessionID == "" {
		state = session.NewState()
	} else {
		var err error
		state, err = s.store.Get(ctx, req.SessionID)
		if errors.Is(err, session.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		if err != nil {
			logging.Errorf("Failed to load session %s: %v", req.SessionID, err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load session"})
			return
		}
	}

	result := s.responder.Respond(ctx, state, req.Message)

	state.AppendMessage(session.RoleUser, req.Message)
	state.AppendMessage(session.RoleAssistant, result.Content)
	if err := s.store.Put(ctx, state); err != nil {
		logging.Errorf("Failed to persist session %s: %v", state.ID, err)
	}

	resp := RespondResponse{
		SessionID: state.ID,
		Content:   result.Content,
		Priority:  string(result.Priority),
		Badge:     result.Badge,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StudentName string `json:"student_name"`
	}
	// An empty body is fine; the name is optional.
	_ = json.NewDecoder(r.Body).Decode(&body)

	state := session.NewState()
	state.StudentName = strings.TrimSpace(body.StudentName)

	if err := s.store.Put(r.Context(), state); err != nil {
		logging.Errorf("Failed to create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create session"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": state.ID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load session"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete session"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
