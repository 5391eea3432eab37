package hypothesis

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

// WeeklyAction is the single canonical entity behind both the canvas
// "hypothesis" flow and the legacy weekly-action checklist. ThemeID is nil for
// legacy rows created before themes existed. IsCompleted is meaningful only in
// the legacy flow; canvas-created rows always start false.
type WeeklyAction struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User        user.User               `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ThemeID     *uuid.UUID              `gorm:"column:theme_id;type:uuid;index" json:"theme_id,omitempty"`
	Theme       *theme.DevelopmentTheme `gorm:"foreignKey:ThemeID;constraint:OnDelete:CASCADE;" json:"-"`
	ActionText  string                  `gorm:"column:action_text;not null" json:"action_text"`
	IsCompleted bool                    `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CreatedAt   time.Time               `gorm:"autoCreateTime" json:"created_at"`
}

func (WeeklyAction) TableName() string {
	return "weekly_actions"
}
