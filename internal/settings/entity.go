package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

type Settings struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	User               user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReceiveWeeklyNudge bool      `gorm:"column:receive_weekly_nudge;not null;default:true" json:"receive_weekly_nudge"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}
