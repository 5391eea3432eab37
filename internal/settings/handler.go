package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadcanvas/leadcanvas/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type updateNudgePreferenceDTO struct {
	ReceiveWeeklyNudge bool `json:"receive_weekly_nudge"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, ErrNotFound):
			config.Fail(w, http.StatusNotFound, "settings not found")
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusOK, s)
}

func (h *Handler) UpdateNudgePreference(w http.ResponseWriter, r *http.Request) {
	var dto updateNudgePreferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateNudgePreference(r.Context(), dto.ReceiveWeeklyNudge); err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, ErrNotFound):
			config.Fail(w, http.StatusNotFound, "settings not found")
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusOK, nil)
}
