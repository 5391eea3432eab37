package user

import "gorm.io/gorm"

type UserContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, settings SettingsProvisioner) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, settings)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
