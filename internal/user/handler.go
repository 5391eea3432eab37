package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, tokens, err := h.service.LoginWithGoogle(r.Context(), dto.Code)
	if err != nil {
		log.WithError(err).Error("Login failed")
		config.Fail(w, http.StatusUnauthorized, "login failed")
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.Success(w, http.StatusOK, u)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		config.Fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.Success(w, http.StatusOK, nil)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, ErrNotFound):
			config.Fail(w, http.StatusNotFound, "user not found")
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusOK, u)
}

func (h *Handler) UpdateLeadershipPurpose(w http.ResponseWriter, r *http.Request) {
	var dto UpdateLeadershipPurposeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateLeadershipPurpose(r.Context(), dto.Purpose); err != nil {
		switch {
		case errors.Is(err, ErrPurposeTooLong):
			config.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, ErrNotFound):
			config.Fail(w, http.StatusNotFound, "user not found")
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusOK, nil)
}

func (h *Handler) UpdateClientPadletURL(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	var dto UpdatePadletURLDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateClientPadletURL(r.Context(), clientID, dto.PadletURL); err != nil {
		switch {
		case errors.Is(err, ErrInvalidID),
			errors.Is(err, ErrPadletURLTooLong),
			errors.Is(err, ErrInvalidPadletURL),
			errors.Is(err, ErrNotAClient):
			config.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUnauthorized):
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, ErrForbidden):
			config.Fail(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrClientNotFound):
			config.Fail(w, http.StatusNotFound, err.Error())
		default:
			config.Fail(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	config.Success(w, http.StatusOK, nil)
}
