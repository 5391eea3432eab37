package nudge

import (
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Repo             Repository
	Service          Service
	Handler          *Handler
	ScheduledHandler *ScheduledHandler
}

func NewContainer(db *gorm.DB, directory user.Directory, themes theme.Repository, actions hypothesis.Repository) *Container {
	repo := NewRepository(db)
	service := NewService(repo, directory, themes, actions, NewWebhookSender())
	handler := NewHandler(service)

	return &Container{
		Repo:             repo,
		Service:          service,
		Handler:          handler,
		ScheduledHandler: NewScheduledHandler(service),
	}
}
