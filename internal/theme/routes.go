package theme

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Patch("/{id}/name", h.UpdateName)
	r.Patch("/{id}/success-description", h.UpdateSuccessDescription)
	r.Delete("/{id}", h.Delete)

	return r
}
