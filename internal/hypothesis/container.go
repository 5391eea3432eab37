package hypothesis

import (
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"gorm.io/gorm"
)

type Container struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewContainer(db *gorm.DB, themeRepo theme.Repository) *Container {
	repo := NewRepository(db)
	service := NewService(repo, themeRepo)
	handler := NewHandler(service)

	return &Container{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
