package summary

import (
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
	case errors.Is(err, ErrInvalidID):
		config.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		config.Fail(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, ErrForbidden):
		config.Fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrClientNotFound):
		config.Fail(w, http.StatusNotFound, err.Error())
	default:
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.service.Home(r.Context())
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, home)
}

func (h *Handler) Canvas(w http.ResponseWriter, r *http.Request) {
	canvas, err := h.service.Canvas(r.Context())
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, canvas)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, stats)
}

func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.Clients(r.Context())
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, clients)
}

func (h *Handler) ClientDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.ClientDetail(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		failFromError(w, err)
		return
	}
	config.Success(w, http.StatusOK, detail)
}
