package theme

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

// DevelopmentTheme is a client-declared leadership focus area. A user owns at
// most MaxThemesPerUser themes at a time.
type DevelopmentTheme struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User               user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ThemeText          string    `gorm:"column:theme_text;not null" json:"theme_text"`
	SuccessDescription *string   `gorm:"column:success_description" json:"success_description,omitempty"`
	ThemeOrder         int       `gorm:"column:theme_order;not null;default:1" json:"theme_order"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DevelopmentTheme) TableName() string {
	return "development_themes"
}
