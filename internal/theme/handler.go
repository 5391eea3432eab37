package theme

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
	case errors.Is(err, ErrThemeTextRequired),
		errors.Is(err, ErrThemeTextTooLong),
		errors.Is(err, ErrDescriptionTooLong),
		errors.Is(err, ErrInvalidID):
		config.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		config.Fail(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, ErrThemeLimit):
		config.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		config.Fail(w, http.StatusNotFound, err.Error())
	default:
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.service.Create(r.Context(), dto)
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusCreated, CreatedThemeDTO{ID: t.ID.String()})
}

// List returns the caller's themes ordered by theme_order; ?order=recent
// switches to newest-first for surfaces that show the latest theme.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		themes []DevelopmentTheme
		err    error
	)

	if r.URL.Query().Get("order") == "recent" {
		themes, err = h.service.ListRecent(r.Context())
	} else {
		themes, err = h.service.ListOrdered(r.Context())
	}
	if err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, themes)
}

func (h *Handler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var dto UpdateThemeNameDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateName(r.Context(), chi.URLParam(r, "id"), dto.ThemeText); err != nil {
		failFromError(w, err)
		return
	}

	config.Success(w, http.StatusOK, nil)
}

func (h *Handler) UpdateSuccessDescription(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSuccessDescriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateSuccessDescription(r.Context(), chi.URLParam(r, "id"), dto.SuccessDescription); err != nil {
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
