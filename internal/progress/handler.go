package progress

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/leadcanvas/leadcanvas/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type saveProgressDTO struct {
	Text string `json:"text"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var dto saveProgressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.service.Save(r.Context(), dto.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrTextRequired), errors.Is(err, ErrTextTooLong):
			config.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusCreated, map[string]string{"id": e.ID.String()})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			config.Fail(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.service.List(r.Context(), limit)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	config.Success(w, http.StatusOK, entries)
}
