package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/mw"
)

func init() { Register(registerSessions) }

func registerSessions(r chi.Router, d deps.Deps) {
	limit := assistantLimit(d, "sessions")

	r.Route("/api/sessions", func(r chi.Router) {
		// the stream is long-lived and must not inherit the request timeout
		r.Get("/{id}/stream", handlers.SessionStream(d))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(d.RequestTimeout))
			r.With(limit).Post("/", handlers.CreateSession(d))
			r.Get("/{id}", handlers.GetSession(d))
			r.With(limit).Post("/{id}/messages", handlers.SendMessage(d))
			r.Delete("/{id}", handlers.CloseSession(d))
		})
	})
}

// assistantLimit throttles the routes that reach the assistant gateway.
func assistantLimit(d deps.Deps, scope string) func(http.Handler) http.Handler {
	return mw.RateLimit(mw.RateLimitConfig{
		Scope:        scope,
		Burst:        d.ChatBurst,
		RefillPerMin: d.ChatRefillPerMin,
		MaxClients:   10000,
		TrustProxy:   d.TrustProxy,
		Now:          d.Now,
		Logger:       d.Logger,
	})
}
