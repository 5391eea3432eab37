package auth

import (
	"net/http"

	"github.com/leadcanvas/leadcanvas/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookies(w)

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
