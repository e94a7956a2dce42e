package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/mw"
)

func init() { Register(registerRecords) }

// Reads are public. Writes mutate the durable catalog and are admin only.
func registerRecords(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(d.RequestTimeout))

		r.Get("/categories", handlers.Categories(d))
		r.Get("/profile", handlers.Profile(d))
		r.Get("/records", handlers.ListRecords(d))
		r.Get("/records/{id}", handlers.GetRecord(d))
		r.Get("/records/{id}/comments", handlers.ListComments(d))

		r.Group(func(r chi.Router) {
			r.Use(assistantLimit(d, "records"))
			r.Post("/records/{id}/comments", handlers.PostComment(d))
			r.Post("/records/{id}/description", handlers.Describe(d))
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
			r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
			r.Post("/records", handlers.CreateRecord(d))
			r.Put("/records/{id}", handlers.UpdateRecord(d))
			r.Delete("/records/{id}", handlers.DeleteRecord(d))
		})
	})
}
