package hypothesis

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/sirupsen/logrus"
)

const (
	maxActionTextLen = 500
	maxBatchSize     = 10
)

var (
	ErrUnauthorized    = errors.New("not authenticated")
	ErrInvalidID       = errors.New("invalid action id")
	ErrInvalidThemeID  = errors.New("invalid theme id")
	ErrTextRequired    = errors.New("action text is required")
	ErrTextTooLong     = errors.New("action must be less than 500 characters")
	ErrBatchEmpty      = errors.New("at least one action is required")
	ErrBatchTooLarge   = errors.New("maximum 10 actions allowed")
	ErrThemeNotFound   = errors.New("theme not found or not authorized")
	ErrNotFound        = errors.New("action not found or not authorized")
)

type Service interface {
	AddHypothesis(ctx context.Context, themeID string, text string) (*WeeklyAction, error)
	AddWeeklyAction(ctx context.Context, text string) (*WeeklyAction, error)
	AddWeeklyActions(ctx context.Context, texts []string) ([]*WeeklyAction, error)
	ListByUser(ctx context.Context) ([]WeeklyAction, error)
	UpdateText(ctx context.Context, actionID string, text string) error
	ToggleComplete(ctx context.Context, actionID string, isCompleted bool) error
	Delete(ctx context.Context, actionID string) error
}

type service struct {
	repo      Repository
	themeRepo theme.Repository
}

func NewService(repo Repository, themeRepo theme.Repository) Service {
	return &service{repo: repo, themeRepo: themeRepo}
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

func validateActionText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	if utf8.RuneCountInString(text) > maxActionTextLen {
		return ErrTextTooLong
	}
	return nil
}

// AddHypothesis attaches an experiment to a theme the caller owns. The theme
// ownership check runs before the insert so a caller cannot file hypotheses
// under another user's theme.
func (s *service) AddHypothesis(ctx context.Context, themeID string, text string) (*WeeklyAction, error) {
	log := config.WithContext(ctx)

	tid, err := uuid.Parse(themeID)
	if err != nil {
		return nil, ErrInvalidThemeID
	}
	if err := validateActionText(text); err != nil {
		return nil, err
	}

	userID, err := callerID(ctx, log, "add hypothesis")
	if err != nil {
		return nil, err
	}

	owned, err := s.themeRepo.ExistsByIDAndUser(tid, userID)
	if err != nil {
		log.WithError(err).Error("Failed to verify theme ownership")
		return nil, err
	}
	if !owned {
		log.WithFields(logrus.Fields{
			"theme_id": themeID,
			"user_id":  userID,
		}).Warn("Theme not found or does not belong to user")
		return nil, ErrThemeNotFound
	}

	a := &WeeklyAction{
		ID:          uuid.New(),
		UserID:      userID,
		ThemeID:     &tid,
		ActionText:  strings.TrimSpace(text),
		IsCompleted: false,
	}
	if err := s.repo.Create(a); err != nil {
		log.WithError(err).Error("Failed to add hypothesis")
		return nil, err
	}

	log.WithField("action_id", a.ID).Info("Hypothesis added")
	return a, nil
}

func (s *service) AddWeeklyAction(ctx context.Context, text string) (*WeeklyAction, error) {
	log := config.WithContext(ctx)

	if err := validateActionText(text); err != nil {
		return nil, err
	}

	userID, err := callerID(ctx, log, "add weekly action")
	if err != nil {
		return nil, err
	}

	a := &WeeklyAction{
		ID:          uuid.New(),
		UserID:      userID,
		ActionText:  strings.TrimSpace(text),
		IsCompleted: false,
	}
	if err := s.repo.Create(a); err != nil {
		log.WithError(err).Error("Failed to add weekly action")
		return nil, err
	}
	return a, nil
}

// AddWeeklyActions is the onboarding batch path.
func (s *service) AddWeeklyActions(ctx context.Context, texts []string) ([]*WeeklyAction, error) {
	log := config.WithContext(ctx)

	if len(texts) == 0 {
		return nil, ErrBatchEmpty
	}
	if len(texts) > maxBatchSize {
		return nil, ErrBatchTooLarge
	}
	for _, text := range texts {
		if err := validateActionText(text); err != nil {
			return nil, err
		}
	}

	userID, err := callerID(ctx, log, "add weekly actions")
	if err != nil {
		return nil, err
	}

	actions := make([]*WeeklyAction, 0, len(texts))
	for _, text := range texts {
		actions = append(actions, &WeeklyAction{
			ID:          uuid.New(),
			UserID:      userID,
			ActionText:  strings.TrimSpace(text),
			IsCompleted: false,
		})
	}

	if err := s.repo.CreateBatch(actions); err != nil {
		log.WithError(err).Error("Failed to save weekly actions")
		return nil, err
	}
	return actions, nil
}

func (s *service) ListByUser(ctx context.Context) ([]WeeklyAction, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx, log, "list actions")
	if err != nil {
		return nil, err
	}

	actions, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list actions")
		return nil, err
	}
	return actions, nil
}

func (s *service) UpdateText(ctx context.Context, actionID string, text string) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(actionID)
	if err != nil {
		return ErrInvalidID
	}
	if err := validateActionText(text); err != nil {
		return err
	}

	userID, err := callerID(ctx, log, "update action text")
	if err != nil {
		return err
	}

	rows, err := s.repo.UpdateText(id, userID, strings.TrimSpace(text))
	if err != nil {
		log.WithError(err).Error("Failed to update action text")
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleComplete is idempotent: setting the same value twice succeeds twice.
func (s *service) ToggleComplete(ctx context.Context, actionID string, isCompleted bool) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(actionID)
	if err != nil {
		return ErrInvalidID
	}

	userID, err := callerID(ctx, log, "toggle action completion")
	if err != nil {
		return err
	}

	rows, err := s.repo.SetCompleted(id, userID, isCompleted)
	if err != nil {
		log.WithError(err).Error("Failed to toggle action completion")
		return err
	}
	if rows == 0 {
		log.WithFields(logrus.Fields{
			"action_id": actionID,
			"user_id":   userID,
		}).Warn("Action not found or does not belong to user")
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actionID string) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(actionID)
	if err != nil {
		return ErrInvalidID
	}

	userID, err := callerID(ctx, log, "delete action")
	if err != nil {
		return err
	}

	rows, err := s.repo.Delete(id, userID)
	if err != nil {
		log.WithError(err).Error("Failed to delete action")
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	log.WithField("action_id", actionID).Info("Action deleted")
	return nil
}
