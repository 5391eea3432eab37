package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

// ProgressEntry is append-only: entries are created and listed, never updated.
type ProgressEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProgressEntry) TableName() string {
	return "progress_entries"
}
