package nudge

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
	"github.com/sirupsen/logrus"
)

// maxMessageLen matches the SMS channel the downstream automation delivers to.
const maxMessageLen = 320

// automatedPrefix marks audit rows logged by the scheduler rather than a
// coach pressing send.
const automatedPrefix = "[Automated Weekly] "

var (
	ErrUnauthorized    = errors.New("not authenticated")
	ErrForbidden       = errors.New("only coaches can send nudges")
	ErrInvalidClientID = errors.New("invalid client id")
	ErrMessageRequired = errors.New("message text is required")
	ErrMessageTooLong  = errors.New("message must be less than 320 characters")
	ErrClientNotFound  = errors.New("client not found")
	ErrNotAClient      = errors.New("nudges can only be sent to clients")
	ErrNoPhone         = errors.New("client has no phone number on file")
	ErrNoCoach         = errors.New("no coach account available")
)

type Service interface {
	Send(ctx context.Context, dto SendNudgeDTO) (*SendResult, error)
	HistoryByCoach(ctx context.Context, limit int) ([]NudgeSent, error)
	HistoryForClient(ctx context.Context, clientID string, limit int) ([]NudgeSent, error)
	WeeklyDigest(ctx context.Context) (*WeeklyNudgeDigest, error)
	LogAutomatedNudge(ctx context.Context, dto LogAutomatedNudgeDTO) (*SendResult, error)
}

type service struct {
	repo      Repository
	directory user.Directory
	themes    theme.Repository
	actions   hypothesis.Repository
	webhook   WebhookSender
}

func NewService(repo Repository, directory user.Directory, themes theme.Repository, actions hypothesis.Repository, webhook WebhookSender) Service {
	return &service{
		repo:      repo,
		directory: directory,
		themes:    themes,
		actions:   actions,
		webhook:   webhook,
	}
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

// requireCoach re-reads the caller's role from storage rather than trusting
// token claims, so a demoted coach loses access as soon as the row changes.
func (s *service) requireCoach(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	coachID, err := callerID(ctx, log, action)
	if err != nil {
		return uuid.Nil, err
	}
	role, err := s.directory.RoleByID(coachID)
	if err != nil {
		log.Errorf("Failed to look up role for %s: %v", coachID, err)
		return uuid.Nil, err
	}
	if role != user.RoleCoach {
		log.Warnf("User %s attempted to %s without coach role", coachID, action)
		return uuid.Nil, ErrForbidden
	}
	return coachID, nil
}

func validateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrMessageRequired
	}
	if utf8.RuneCountInString(text) > maxMessageLen {
		return "", ErrMessageTooLong
	}
	return text, nil
}

func (s *service) Send(ctx context.Context, dto SendNudgeDTO) (*SendResult, error) {
	log := config.WithContext(ctx)

	coachID, err := s.requireCoach(ctx, log, "send nudge")
	if err != nil {
		return nil, err
	}

	clientID, err := uuid.Parse(dto.ClientID)
	if err != nil {
		return nil, ErrInvalidClientID
	}

	message, err := validateMessage(dto.MessageText)
	if err != nil {
		return nil, err
	}

	client, err := s.directory.FindByID(clientID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		log.Errorf("Failed to load client %s: %v", clientID, err)
		return nil, err
	}
	if client.Role != user.RoleClient {
		return nil, ErrNotAClient
	}
	if client.Phone == nil || strings.TrimSpace(*client.Phone) == "" {
		return nil, ErrNoPhone
	}

	return s.record(ctx, log, coachID, client, message)
}

// record persists the audit row first, then attempts the webhook. A webhook
// failure never rolls back the row; delivery state is reported to the caller.
func (s *service) record(ctx context.Context, log logrus.FieldLogger, coachID uuid.UUID, client *user.User, message string) (*SendResult, error) {
	n := &NudgeSent{
		ID:          uuid.New(),
		CoachID:     coachID,
		ClientID:    client.ID,
		MessageText: message,
		SentAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(n); err != nil {
		log.Errorf("Failed to record nudge from %s to %s: %v", coachID, client.ID, err)
		return nil, err
	}

	result := &SendResult{NudgeID: n.ID, SentAt: n.SentAt}

	url := webhookURL()
	if url == "" {
		log.Warnf("Nudge %s recorded but no webhook is configured", n.ID)
		return result, nil
	}

	payload := WebhookPayload{
		ClientID:    client.ID,
		ClientName:  client.Name,
		Phone:       *client.Phone,
		MessageText: message,
		NudgeID:     n.ID,
		SentAt:      n.SentAt,
	}
	if err := s.webhook.Send(ctx, url, payload); err != nil {
		log.Errorf("Webhook delivery failed for nudge %s: %v", n.ID, err)
		msg := err.Error()
		result.WebhookError = &msg
		return result, nil
	}

	result.WebhookSent = true
	return result, nil
}

func (s *service) HistoryByCoach(ctx context.Context, limit int) ([]NudgeSent, error) {
	log := config.WithContext(ctx)

	coachID, err := s.requireCoach(ctx, log, "list sent nudges")
	if err != nil {
		return nil, err
	}

	nudges, err := s.repo.ListByCoach(coachID, limit)
	if err != nil {
		log.Errorf("Failed to list nudges for coach %s: %v", coachID, err)
		return nil, err
	}
	return nudges, nil
}

func (s *service) HistoryForClient(ctx context.Context, clientID string, limit int) ([]NudgeSent, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireCoach(ctx, log, "view client nudge history"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, ErrInvalidClientID
	}

	nudges, err := s.repo.ListByClient(id, limit)
	if err != nil {
		log.Errorf("Failed to list nudges for client %s: %v", id, err)
		return nil, err
	}
	return nudges, nil
}

// WeeklyDigest assembles the opted-in client roster for the external
// scheduler. Per-client enrichment failures degrade that client's entry
// instead of failing the whole digest.
func (s *service) WeeklyDigest(ctx context.Context) (*WeeklyNudgeDigest, error) {
	log := config.WithContext(ctx)

	clients, err := s.directory.ListNudgeOptedInClients()
	if err != nil {
		log.Errorf("Failed to list opted-in clients: %v", err)
		return nil, err
	}

	digest := &WeeklyNudgeDigest{
		Clients:     make([]WeeklyNudgeClient, 0, len(clients)),
		GeneratedAt: time.Now().UTC(),
	}

	for _, c := range clients {
		entry := WeeklyNudgeClient{
			ClientID:    c.ID,
			Name:        c.Name,
			Phone:       *c.Phone,
			OpenActions: []string{},
		}

		if latest, err := s.themes.FindLatestByUser(c.ID); err != nil {
			log.Warnf("Failed to load latest theme for client %s: %v", c.ID, err)
		} else if latest != nil {
			entry.CurrentTheme = &latest.ThemeText
		}

		if open, err := s.actions.ListOpenByUser(c.ID); err != nil {
			log.Warnf("Failed to load open actions for client %s: %v", c.ID, err)
		} else {
			entry.OpenActionsCount = len(open)
			for _, a := range open {
				entry.OpenActions = append(entry.OpenActions, a.ActionText)
			}
		}

		digest.Clients = append(digest.Clients, entry)
	}

	digest.TotalCount = len(digest.Clients)
	return digest, nil
}

// LogAutomatedNudge records a scheduler-sent nudge after the fact. The oldest
// coach account stands in as the sender so the audit row keeps a valid
// reference.
func (s *service) LogAutomatedNudge(ctx context.Context, dto LogAutomatedNudgeDTO) (*SendResult, error) {
	log := config.WithContext(ctx)

	clientID, err := uuid.Parse(dto.ClientID)
	if err != nil {
		return nil, ErrInvalidClientID
	}

	message, err := validateMessage(dto.MessageText)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(message, automatedPrefix) {
		message = automatedPrefix + message
	}

	client, err := s.directory.FindByID(clientID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		log.Errorf("Failed to load client %s: %v", clientID, err)
		return nil, err
	}
	if client.Role != user.RoleClient {
		return nil, ErrNotAClient
	}

	coach, err := s.directory.FindAnyCoach()
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNoCoach
		}
		log.Errorf("Failed to find a coach for automated nudge: %v", err)
		return nil, err
	}

	n := &NudgeSent{
		ID:          uuid.New(),
		CoachID:     coach.ID,
		ClientID:    client.ID,
		MessageText: message,
		SentAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(n); err != nil {
		log.Errorf("Failed to record automated nudge for %s: %v", client.ID, err)
		return nil, err
	}
	return &SendResult{NudgeID: n.ID, SentAt: n.SentAt}, nil
}
