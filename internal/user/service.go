package user

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized     = errors.New("not authenticated")
	ErrForbidden        = errors.New("only coaches can update client padlet links")
	ErrInvalidID        = errors.New("invalid id format")
	ErrPurposeTooLong   = errors.New("purpose must be less than 500 characters")
	ErrPadletURLTooLong = errors.New("url is too long (max 2048 characters)")
	ErrInvalidPadletURL = errors.New("please enter a valid https url")
	ErrNotAClient       = errors.New("can only update padlet links for clients")
	ErrClientNotFound   = errors.New("client not found")
)

const maxPurposeLen = 500
const maxPadletURLLen = 2048

// SettingsProvisioner creates the per-user settings row at account setup.
// Implemented by the settings package; injected via the container.
type SettingsProvisioner interface {
	EnsureForUser(userID uuid.UUID) error
}

type SessionTokens struct {
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Me(ctx context.Context) (*User, error)
	LoginWithGoogle(ctx context.Context, code string) (*User, *SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error)
	UpdateLeadershipPurpose(ctx context.Context, purpose string) error
	UpdateClientPadletURL(ctx context.Context, clientID string, padletURL string) error
}

type service struct {
	repo     Repository
	settings SettingsProvisioner
}

func NewService(repo Repository, settings SettingsProvisioner) Service {
	return &service{repo: repo, settings: settings}
}

func callerID(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warn("Session claims carry a malformed user id")
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func (s *service) Me(ctx context.Context) (*User, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx, log, "read profile")
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to load user profile")
		return nil, err
	}
	return u, nil
}

// seedCoachEmails is a one-time bootstrap: it decides the role of a brand new
// account only. Every authorization decision afterwards reads the role column.
func seedCoachEmails() map[string]bool {
	emails := map[string]bool{}
	for _, e := range strings.Split(os.Getenv("COACH_SEED_EMAILS"), ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails[e] = true
		}
	}
	return emails
}

func (s *service) LoginWithGoogle(ctx context.Context, code string) (*User, *SessionTokens, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(code) == "" {
		return nil, nil, errors.New("authorization code is required")
	}

	info, err := auth.ExchangeGoogleCode(ctx, code)
	if err != nil {
		log.WithError(err).Error("Google code exchange failed")
		return nil, nil, err
	}

	u, err := s.repo.FindByEmail(strings.ToLower(info.Email))
	if errors.Is(err, ErrNotFound) {
		role := RoleClient
		if seedCoachEmails()[strings.ToLower(info.Email)] {
			role = RoleCoach
		}

		u = &User{
			ID:    uuid.New(),
			Role:  role,
			Name:  info.Name,
			Email: strings.ToLower(info.Email),
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user at first login")
			return nil, nil, err
		}
		log.WithFields(logrus.Fields{
			"user_id": u.ID,
			"role":    u.Role,
		}).Info("Created user at first login")
	} else if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, nil, err
	}

	if err := s.settings.EnsureForUser(u.ID); err != nil {
		log.WithError(err).Error("Failed to provision settings for user")
		return nil, nil, err
	}

	tokens, err := issueTokens(u.ID.String(), string(u.Role))
	if err != nil {
		log.WithError(err).Error("Failed to issue session tokens")
		return nil, nil, err
	}
	return u, tokens, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Refresh attempted with an invalid token")
		return nil, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	// Re-read the role so a refreshed session never outlives a role change.
	role, err := s.repo.RoleByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		log.WithError(err).Error("Failed to resolve role during refresh")
		return nil, err
	}

	return issueTokens(claims.UserID, string(role))
}

func issueTokens(userID, role string) (*SessionTokens, error) {
	access, err := auth.GenerateJWT(userID, role, auth.AccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(userID, role, auth.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	return &SessionTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) UpdateLeadershipPurpose(ctx context.Context, purpose string) error {
	log := config.WithContext(ctx)

	if utf8.RuneCountInString(purpose) > maxPurposeLen {
		return ErrPurposeTooLong
	}

	userID, err := callerID(ctx, log, "update leadership purpose")
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(purpose)
	var value *string
	if trimmed != "" {
		value = &trimmed
	}

	rows, err := s.repo.UpdateLeadershipPurpose(userID, value)
	if err != nil {
		log.WithError(err).Error("Failed to update leadership purpose")
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *service) UpdateClientPadletURL(ctx context.Context, clientID string, padletURL string) error {
	log := config.WithContext(ctx)

	targetID, err := uuid.Parse(clientID)
	if err != nil {
		return ErrInvalidID
	}

	normalized := strings.TrimSpace(padletURL)
	var value *string
	if normalized != "" {
		if utf8.RuneCountInString(normalized) > maxPadletURLLen {
			return ErrPadletURLTooLong
		}
		if !isValidHTTPSURL(normalized) {
			return ErrInvalidPadletURL
		}
		value = &normalized
	}

	coachID, err := callerID(ctx, log, "update client padlet url")
	if err != nil {
		return err
	}

	callerRole, err := s.repo.RoleByID(coachID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrForbidden
		}
		log.WithError(err).Error("Failed to verify caller role")
		return err
	}
	if callerRole != RoleCoach {
		return ErrForbidden
	}

	targetRole, err := s.repo.RoleByID(targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrClientNotFound
		}
		log.WithError(err).Error("Failed to verify target role")
		return err
	}
	if targetRole != RoleClient {
		return ErrNotAClient
	}

	rows, err := s.repo.UpdatePadletURL(targetID, value)
	if err != nil {
		log.WithError(err).Error("Failed to update padlet url")
		return err
	}
	if rows == 0 {
		return ErrClientNotFound
	}

	log.WithField("client_id", targetID).Info("Padlet url updated")
	return nil
}

func isValidHTTPSURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "https" && parsed.Host != ""
}
