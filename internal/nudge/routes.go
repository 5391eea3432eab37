package nudge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes are mounted under the coach route group; role enforcement happens in
// the service layer against the stored role.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Send)
	r.Get("/", h.History)
	r.Get("/clients/{clientId}", h.ClientHistory)

	return r
}

// ScheduledRoutes are mounted outside the session-auth group; the handlers
// enforce the bearer secret themselves.
func ScheduledRoutes(h *ScheduledHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.WeeklyNudges)
	r.Post("/log", h.LogWeeklyNudge)

	return r
}
