package hypothesis

import (
	"encoding/json"
	"errors"
	"net/http"

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
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidThemeID),
		errors.Is(err, ErrTextRequired),
		errors.Is(err, ErrTextTooLong),
		errors.Is(err, ErrBatchEmpty),
		errors.Is(err, ErrBatchTooLarge):
		config.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		config.Fail(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, ErrThemeNotFound), errors.Is(err, ErrNotFound):
		config.Fail(w, http.StatusNotFound, err.Error())
	default:
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

// AddToTheme handles POST /themes/{themeId}/hypotheses.
func (h *Handler) AddToTheme(w http.ResponseWriter, r *http.Request) {
	var dto AddHypothesisDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.service.AddHypothesis(r.Context(), chi.URLParam(r, "themeId"), dto.Text)
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusCreated, CreatedActionDTO{ID: a.ID.String()})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var dto AddHypothesisDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.service.AddWeeklyAction(r.Context(), dto.Text)
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusCreated, CreatedActionDTO{ID: a.ID.String()})
}

func (h *Handler) AddBatch(w http.ResponseWriter, r *http.Request) {
	var dto AddWeeklyActionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actions, err := h.service.AddWeeklyActions(r.Context(), dto.Actions)
	if err != nil {
		failFromError(w, err)
		return
	}

	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.ID.String())
	}
	config.Success(w, http.StatusCreated, map[string][]string{"ids": ids})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actions, err := h.service.ListByUser(r.Context())
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, actions)
}

func (h *Handler) UpdateText(w http.ResponseWriter, r *http.Request) {
	var dto UpdateTextDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateText(r.Context(), chi.URLParam(r, "id"), dto.Text); err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nil)
}

func (h *Handler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	var dto ToggleCompleteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ToggleComplete(r.Context(), chi.URLParam(r, "id"), dto.IsCompleted); err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nil)
}
