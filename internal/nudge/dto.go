package nudge

import (
	"time"

	"github.com/google/uuid"
)

type SendNudgeDTO struct {
	ClientID    string `json:"clientId"`
	MessageText string `json:"messageText"`
}

// SendResult carries the durable record's identity plus the best-effort
// delivery outcome. WebhookSent false with a nil WebhookError means no
// webhook is configured.
type SendResult struct {
	NudgeID      uuid.UUID `json:"nudge_id"`
	SentAt       time.Time `json:"sent_at"`
	WebhookSent  bool      `json:"webhook_sent"`
	WebhookError *string   `json:"webhook_error"`
}

type WeeklyNudgeClient struct {
	ClientID         uuid.UUID `json:"client_id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	CurrentTheme     *string   `json:"current_theme"`
	OpenActionsCount int       `json:"open_actions_count"`
	OpenActions      []string  `json:"open_actions"`
}

type WeeklyNudgeDigest struct {
	Clients     []WeeklyNudgeClient `json:"clients"`
	GeneratedAt time.Time           `json:"generated_at"`
	TotalCount  int                 `json:"total_count"`
}

type LogAutomatedNudgeDTO struct {
	ClientID    string `json:"client_id"`
	MessageText string `json:"message_text"`
}
