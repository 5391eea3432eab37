package settings

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("settings not found")

type Repository interface {
	EnsureForUser(userID uuid.UUID) error
	FindByUser(userID uuid.UUID) (*Settings, error)
	UpdateNudgePreference(userID uuid.UUID, receive bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// EnsureForUser creates the settings row at account setup; it is a no-op when
// one already exists.
func (r *repository) EnsureForUser(userID uuid.UUID) error {
	s := Settings{ID: uuid.New(), UserID: userID, ReceiveWeeklyNudge: true}
	return r.db.
		Where("user_id = ?", userID).
		Attrs(s).
		FirstOrCreate(&Settings{}).Error
}

func (r *repository) FindByUser(userID uuid.UUID) (*Settings, error) {
	var s Settings
	if err := r.db.First(&s, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateNudgePreference(userID uuid.UUID, receive bool) (int64, error) {
	res := r.db.Model(&Settings{}).
		Where("user_id = ?", userID).
		Update("receive_weekly_nudge", receive)
	return res.RowsAffected, res.Error
}
