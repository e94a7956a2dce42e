package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

// healthz stays open for load balancers; readyz and infra are internal.
func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	internal := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	internal.Get("/readyz", handlers.Readyz(d))
	internal.Get("/infra", handlers.Infra(d))
}
