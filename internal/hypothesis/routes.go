package hypothesis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Add)
	r.Post("/batch", h.AddBatch)
	r.Get("/", h.List)
	r.Patch("/{id}", h.UpdateText)
	r.Patch("/{id}/complete", h.ToggleComplete)
	r.Delete("/{id}", h.Delete)

	return r
}
