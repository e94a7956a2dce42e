package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	RecordsLoaded *int   `json:"records_loaded,omitempty"`
	OpenSessions  *int   `json:"open_sessions,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := d.Catalog.Store()
		recordCount := store.Count()
		openSessions := d.Sessions.Count()

		components := map[string]componentStatus{
			"catalog": {
				OK:            !store.LastLoad().IsZero(),
				RecordsLoaded: &recordCount,
				LastReload:    formatTime(store.LastLoad()),
				Mode:          store.ResourceName(),
			},
			"backend": checkBackend(r.Context(), d),
			"assistant": {
				OK:     true,
				Mode:   d.Factory.Mode(),
				Impact: assistantImpact(d.Factory.Mode()),
			},
			"sessions": {
				OK:           true,
				OpenSessions: &openSessions,
				LastReload:   formatTime(d.Sessions.LastSweep()),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func assistantImpact(mode string) string {
	if mode == "live" {
		return "replies-generated"
	}
	return "replies-simulated"
}

func determineStatus(components map[string]componentStatus) string {
	if catalog, ok := components["catalog"]; ok && !catalog.OK {
		return "critical" // nothing to serve
	}
	if backend, ok := components["backend"]; ok && !backend.OK {
		return "degraded" // writes will fail
	}
	if a, ok := components["assistant"]; ok && a.Mode != "live" {
		return "degraded"
	}
	return "operational"
}

func checkBackend(parent context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Backend,
			Impact: "catalog-writes-failing",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:   true,
		Mode: d.Backend,
	}
}
