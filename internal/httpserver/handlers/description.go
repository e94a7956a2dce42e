package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
)

// Describe generates a marketing description for record {id}. The result
// is returned only; saving it is a separate PUT.
func Describe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		record, ok, err := d.Catalog.Get(r.Context(), id)
		if err != nil {
			writeError(w, d, err)
			return
		}
		if !ok {
			writeError(w, d, notFound("record", id))
			return
		}

		desc := assistant.GenerateDescription(r.Context(), d.Factory.Gateway, record, d.Logger)
		writeJSON(w, http.StatusOK, desc)
	}
}
