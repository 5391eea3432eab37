package theme

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/sirupsen/logrus"
)

const MaxThemesPerUser = 3

const (
	maxThemeTextLen   = 100
	maxDescriptionLen = 2000
)

var (
	ErrUnauthorized       = errors.New("not authenticated")
	ErrInvalidID          = errors.New("invalid theme id")
	ErrThemeTextRequired  = errors.New("theme name is required")
	ErrThemeTextTooLong   = errors.New("theme name must be less than 100 characters")
	ErrDescriptionTooLong = errors.New("description must be less than 2000 characters")
	ErrThemeLimit         = errors.New("maximum of 3 themes allowed")

	// ErrNotFound deliberately covers both a nonexistent theme and a theme
	// owned by someone else, so callers cannot probe for other users' data.
	ErrNotFound = errors.New("theme not found or not authorized")
)

type Service interface {
	Create(ctx context.Context, dto CreateThemeDTO) (*DevelopmentTheme, error)
	ListOrdered(ctx context.Context) ([]DevelopmentTheme, error)
	ListRecent(ctx context.Context) ([]DevelopmentTheme, error)
	UpdateName(ctx context.Context, themeID string, themeText string) error
	UpdateSuccessDescription(ctx context.Context, themeID string, description string) error
	Delete(ctx context.Context, themeID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func callerID(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func validateThemeText(themeText string) error {
	if strings.TrimSpace(themeText) == "" {
		return ErrThemeTextRequired
	}
	if utf8.RuneCountInString(themeText) > maxThemeTextLen {
		return ErrThemeTextTooLong
	}
	return nil
}

func (s *service) Create(ctx context.Context, dto CreateThemeDTO) (*DevelopmentTheme, error) {
	log := config.WithContext(ctx)

	if err := validateThemeText(dto.ThemeText); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(dto.SuccessDescription) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	userID, err := callerID(ctx, log, "create theme")
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to count existing themes")
		return nil, err
	}
	if count >= MaxThemesPerUser {
		return nil, ErrThemeLimit
	}

	t := &DevelopmentTheme{
		ID:         uuid.New(),
		UserID:     userID,
		ThemeText:  strings.TrimSpace(dto.ThemeText),
		ThemeOrder: int(count) + 1,
	}
	if desc := strings.TrimSpace(dto.SuccessDescription); desc != "" {
		t.SuccessDescription = &desc
	}

	if err := s.repo.Create(t); err != nil {
		log.WithError(err).Error("Failed to create theme")
		return nil, err
	}

	log.WithField("theme_id", t.ID).Info("Theme created")
	return t, nil
}

func (s *service) ListOrdered(ctx context.Context) ([]DevelopmentTheme, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx, log, "list themes")
	if err != nil {
		return nil, err
	}

	themes, err := s.repo.ListByUserOrdered(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list themes")
		return nil, err
	}
	return themes, nil
}

func (s *service) ListRecent(ctx context.Context) ([]DevelopmentTheme, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx, log, "list themes")
	if err != nil {
		return nil, err
	}

	themes, err := s.repo.ListByUserRecent(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list themes")
		return nil, err
	}
	return themes, nil
}

func (s *service) UpdateName(ctx context.Context, themeID string, themeText string) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(themeID)
	if err != nil {
		return ErrInvalidID
	}
	if err := validateThemeText(themeText); err != nil {
		return err
	}

	userID, err := callerID(ctx, log, "update theme name")
	if err != nil {
		return err
	}

	rows, err := s.repo.UpdateName(id, userID, strings.TrimSpace(themeText))
	if err != nil {
		log.WithError(err).Error("Failed to update theme name")
		return err
	}
	if rows == 0 {
		log.WithFields(logrus.Fields{
			"theme_id": themeID,
			"user_id":  userID,
		}).Warn("Theme not found or does not belong to user")
		return ErrNotFound
	}
	return nil
}

func (s *service) UpdateSuccessDescription(ctx context.Context, themeID string, description string) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(themeID)
	if err != nil {
		return ErrInvalidID
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}

	userID, err := callerID(ctx, log, "update success description")
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(description)
	var value *string
	if trimmed != "" {
		value = &trimmed
	}

	rows, err := s.repo.UpdateSuccessDescription(id, userID, value)
	if err != nil {
		log.WithError(err).Error("Failed to update success description")
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, themeID string) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(themeID)
	if err != nil {
		return ErrInvalidID
	}

	userID, err := callerID(ctx, log, "delete theme")
	if err != nil {
		return err
	}

	rows, err := s.repo.Delete(id, userID)
	if err != nil {
		log.WithError(err).Error("Failed to delete theme")
		return err
	}
	if rows == 0 {
		log.WithFields(logrus.Fields{
			"theme_id": themeID,
			"user_id":  userID,
		}).Warn("Theme not found or does not belong to user for deletion")
		return ErrNotFound
	}

	log.WithField("theme_id", themeID).Info("Theme deleted")
	return nil
}
