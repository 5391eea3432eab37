package nudge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is the body posted to the outbound nudge webhook. The
// receiving automation owns actual message delivery; we only hand off.
type WebhookPayload struct {
	ClientID    uuid.UUID `json:"client_id"`
	ClientName  string    `json:"client_name"`
	Phone       string    `json:"phone"`
	MessageText string    `json:"message_text"`
	NudgeID     uuid.UUID `json:"nudge_id"`
	SentAt      time.Time `json:"sent_at"`
}

type WebhookSender interface {
	Send(ctx context.Context, url string, payload WebhookPayload) error
}

type httpWebhookSender struct {
	client *http.Client
}

func NewWebhookSender() WebhookSender {
	return &httpWebhookSender{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *httpWebhookSender) Send(ctx context.Context, url string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// webhookURL is read at call time so the webhook can be enabled or rotated
// without a restart.
func webhookURL() string {
	return os.Getenv("NUDGE_WEBHOOK_URL")
}
