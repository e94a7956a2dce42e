package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

// Categories lists the category labels in display order, "All" first.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Categories())
	}
}

// ListRecords serves the catalog, filtered by ?category= and ranked by ?q=.
func ListRecords(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		category := domain.CategoryAll
		if label := strings.TrimSpace(r.URL.Query().Get("category")); label != "" {
			c, err := domain.ParseCategory(label)
			if err != nil {
				writeError(w, d, err)
				return
			}
			category = c
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			records, err := d.Catalog.ListByCategory(ctx, category)
			if err != nil {
				writeError(w, d, err)
				return
			}
			writeJSON(w, http.StatusOK, records)
			return
		}

		candidates, err := d.Catalog.Search(ctx, query, category)
		if err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Debug("catalog search",
			logger.String("query", query),
			logger.Int("matches", len(candidates)))

		records := make([]domain.Record, 0, len(candidates))
		for _, c := range candidates {
			records = append(records, c.Record)
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// GetRecord serves one record or 404.
func GetRecord(d deps.Deps) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, record)
	}
}

// CreateRecord saves a new record; an empty id is assigned.
func CreateRecord(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.Record
		if err := decodeJSON(w, r, &record); err != nil {
			writeError(w, d, err)
			return
		}
		if strings.TrimSpace(record.ID) == "" {
			record.ID = domain.NewRecordID()
		}

		if err := d.Catalog.Save(r.Context(), record); err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Info("record created",
			logger.String("record_id", record.ID),
			logger.String("title", record.Title))
		writeJSON(w, http.StatusCreated, record)
	}
}

// UpdateRecord inserts or replaces the record at {id}.
func UpdateRecord(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.Record
		if err := decodeJSON(w, r, &record); err != nil {
			writeError(w, d, err)
			return
		}
		record.ID = chi.URLParam(r, "id")

		if err := d.Catalog.Save(r.Context(), record); err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Info("record saved", logger.String("record_id", record.ID))
		writeJSON(w, http.StatusOK, record)
	}
}

// DeleteRecord removes the record at {id}; absent ids still answer 204.
func DeleteRecord(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Catalog.Delete(r.Context(), id); err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Info("record deleted", logger.String("record_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
