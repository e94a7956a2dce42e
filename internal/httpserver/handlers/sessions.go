package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

type createSessionRequest struct {
	RecordID string `json:"recordId"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// CreateSession opens an assistant session, scoped to a record when
// recordId is given. The body is optional.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, d, err)
			return
		}

		s, err := d.Sessions.Open(r.Context(), d.Catalog, d.Factory, req.RecordID)
		if err != nil {
			writeError(w, d, err)
			return
		}

		d.Logger.Info("assistant session opened",
			logger.String("session_id", s.ID()),
			logger.String("record_id", s.RecordID()),
			logger.Bool("degraded", s.Degraded()))
		writeJSON(w, http.StatusCreated, s.Snapshot())
	}
}

// GetSession serves the state and history of session {id}.
func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

// SendMessage runs one exchange and answers with the resulting snapshot.
// 409 while another exchange is in flight, 410 once closed.
func SendMessage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, d)
		if !ok {
			return
		}

		var req sendMessageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}

		if err := s.Send(r.Context(), req.Text); err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

// CloseSession closes and forgets session {id}. Unknown ids answer 204.
func CloseSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if s, ok := d.Sessions.Remove(id); ok {
			if err := s.Close(); err != nil {
				d.Logger.Warn("failed to close session",
					logger.String("session_id", id),
					logger.Error(err))
			}
			d.Logger.Info("assistant session closed", logger.String("session_id", id))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func lookupSession(w http.ResponseWriter, r *http.Request, d deps.Deps) (*assistant.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := d.Sessions.Get(id)
	if !ok {
		writeError(w, d, notFound("session", id))
		return nil, false
	}
	return s, true
}
