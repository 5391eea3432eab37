package nudge

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

// NudgeSent is an append-only audit record. It references both the sending
// coach and the receiving client but is owned by neither; no update or delete
// operation exists.
type NudgeSent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CoachID     uuid.UUID `gorm:"column:coach_id;type:uuid;not null;index" json:"coach_id"`
	Coach       user.User `gorm:"foreignKey:CoachID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ClientID    uuid.UUID `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	Client      user.User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	MessageText string    `gorm:"column:message_text;not null" json:"message_text"`
	SentAt      time.Time `gorm:"column:sent_at;autoCreateTime" json:"sent_at"`
}

func (NudgeSent) TableName() string {
	return "nudges_sent"
}
