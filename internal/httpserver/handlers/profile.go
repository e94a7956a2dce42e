package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
)

type profileResponse struct {
	Profile     domain.Profile      `json:"profile"`
	Skills      []string            `json:"skills"`
	Experiences []domain.Experience `json:"experience"`
}

// Profile serves the owner's profile, skills and work history.
func Profile(d deps.Deps) http.HandlerFunc {
	resp := profileResponse{
		Profile:     d.Persona.Profile,
		Skills:      d.Persona.Skills,
		Experiences: d.Persona.Experiences,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}
