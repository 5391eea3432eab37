package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Role              Role      `gorm:"type:text;not null;default:'client'" json:"role"`
	Name              string    `gorm:"not null" json:"name"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone             *string   `json:"phone,omitempty"`
	LeadershipPurpose *string   `gorm:"column:leadership_purpose" json:"leadership_purpose,omitempty"`
	PadletURL         *string   `gorm:"column:padlet_url" json:"padlet_url,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
