package progress

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
)

const maxTextLen = 2000

var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrTextRequired = errors.New("progress entry is required")
	ErrTextTooLong  = errors.New("progress entry must be less than 2000 characters")
)

type Service interface {
	Save(ctx context.Context, text string) (*ProgressEntry, error)
	List(ctx context.Context, limit int) ([]ProgressEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Save(ctx context.Context, text string) (*ProgressEntry, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return nil, ErrTextTooLong
	}

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warn("Attempt to save progress without authentication")
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	e := &ProgressEntry{
		ID:     uuid.New(),
		UserID: userID,
		Text:   strings.TrimSpace(text),
	}
	if err := s.repo.Create(e); err != nil {
		log.WithError(err).Error("Failed to save progress entry")
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, limit int) ([]ProgressEntry, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warn("Attempt to list progress without authentication")
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	entries, err := s.repo.ListByUser(userID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list progress entries")
		return nil, err
	}
	return entries, nil
}
