package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

type postCommentRequest struct {
	Author  string `json:"user"`
	Avatar  string `json:"avatar"`
	Content string `json:"content"`
}

// ListComments serves the thread of record {id}, pinned first then newest.
func ListComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Catalog.Store().Get(id); !ok {
			writeError(w, d, notFound("record", id))
			return
		}
		writeJSON(w, http.StatusOK, d.Comments.List(id))
	}
}

// PostComment adds a comment to the thread of record {id}.
func PostComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Catalog.Store().Get(id); !ok {
			writeError(w, d, notFound("record", id))
			return
		}

		var req postCommentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}

		c, err := d.Comments.Post(id, req.Author, req.Avatar, req.Content)
		if err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Debug("comment posted",
			logger.String("record_id", id),
			logger.String("comment_id", c.ID))
		writeJSON(w, http.StatusCreated, c)
	}
}
