package nudge

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leadcanvas/leadcanvas/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func failFromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidClientID),
		errors.Is(err, ErrMessageRequired),
		errors.Is(err, ErrMessageTooLong),
		errors.Is(err, ErrNotAClient),
		errors.Is(err, ErrNoPhone):
		config.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		config.Fail(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, ErrForbidden):
		config.Fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrClientNotFound), errors.Is(err, ErrNoCoach):
		config.Fail(w, http.StatusNotFound, err.Error())
	default:
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func limitParam(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var dto SendNudgeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Send(r.Context(), dto)
	if err != nil {
		failFromError(w, err)
		return
	}

	config.SuccessWithMessage(w, http.StatusCreated, "Nudge recorded successfully", result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	nudges, err := h.service.HistoryByCoach(r.Context(), limitParam(r))
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nudges)
}

func (h *Handler) ClientHistory(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	nudges, err := h.service.HistoryForClient(r.Context(), clientID, limitParam(r))
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nudges)
}
