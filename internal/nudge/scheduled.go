package nudge

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/leadcanvas/leadcanvas/internal/config"
)

// ScheduledHandler serves the endpoints called by the external weekly
// scheduler. They authenticate with a static bearer secret instead of a user
// session and must never leak whether a given token was close.
type ScheduledHandler struct {
	service Service
}

func NewScheduledHandler(service Service) *ScheduledHandler {
	return &ScheduledHandler{service: service}
}

// authorize compares the Authorization header against SCHEDULER_API_SECRET
// by exact string match. A server missing its secret is misconfigured and
// reports 500, not 401, so the scheduler's alerting can tell the two apart.
func (h *ScheduledHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	secret := os.Getenv("SCHEDULER_API_SECRET")
	if secret == "" {
		log := config.WithContext(r.Context())
		log.Error("SCHEDULER_API_SECRET is not configured")
		config.Fail(w, http.StatusInternalServerError, "scheduler secret not configured")
		return false
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token != secret {
		config.Fail(w, http.StatusUnauthorized, "invalid scheduler token")
		return false
	}
	return true
}

func (h *ScheduledHandler) WeeklyNudges(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	digest, err := h.service.WeeklyDigest(r.Context())
	if err != nil {
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	config.Success(w, http.StatusOK, digest)
}

func (h *ScheduledHandler) LogWeeklyNudge(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var dto LogAutomatedNudgeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.LogAutomatedNudge(r.Context(), dto)
	if err != nil {
		failFromError(w, err)
		return
	}

	config.SuccessWithMessage(w, http.StatusCreated, "Automated nudge logged", result)
}
