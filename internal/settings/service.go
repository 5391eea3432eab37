package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
)

var ErrUnauthorized = errors.New("not authenticated")

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	UpdateNudgePreference(ctx context.Context, receive bool) error
	EnsureForUser(userID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) EnsureForUser(userID uuid.UUID) error {
	return s.repo.EnsureForUser(userID)
}

func (s *service) Get(ctx context.Context) (*Settings, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	found, err := s.repo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to load settings")
		return nil, err
	}
	return found, nil
}

func (s *service) UpdateNudgePreference(ctx context.Context, receive bool) error {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warn("Attempt to update nudge preference without authentication")
		return ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrUnauthorized
	}

	rows, err := s.repo.UpdateNudgePreference(userID, receive)
	if err != nil {
		log.WithError(err).Error("Failed to update nudge preference")
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
