package summary

import (
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/progress"
	"github.com/leadcanvas/leadcanvas/internal/settings"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

type Container struct {
	Service Service
	Handler *Handler
}

func NewContainer(directory user.Directory, themes theme.Repository, actions hypothesis.Repository, progressRepo progress.Repository, settingsRepo settings.Repository) *Container {
	service := NewService(directory, themes, actions, progressRepo, settingsRepo)

	return &Container{
		Service: service,
		Handler: NewHandler(service),
	}
}
