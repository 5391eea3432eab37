package hypothesis

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(a *WeeklyAction) error
	CreateBatch(actions []*WeeklyAction) error
	ListByUser(userID uuid.UUID) ([]WeeklyAction, error)
	ListByUserOldestFirst(userID uuid.UUID) ([]WeeklyAction, error)
	ListByTheme(themeID uuid.UUID) ([]WeeklyAction, error)
	ListOpenByUser(userID uuid.UUID) ([]WeeklyAction, error)
	UpdateText(id, userID uuid.UUID, text string) (int64, error)
	SetCompleted(id, userID uuid.UUID, isCompleted bool) (int64, error)
	Delete(id, userID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(a *WeeklyAction) error {
	return r.db.Create(a).Error
}

func (r *repository) CreateBatch(actions []*WeeklyAction) error {
	if len(actions) == 0 {
		return nil
	}
	return r.db.Create(&actions).Error
}

func (r *repository) ListByUser(userID uuid.UUID) ([]WeeklyAction, error) {
	var actions []WeeklyAction
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *repository) ListByUserOldestFirst(userID uuid.UUID) ([]WeeklyAction, error) {
	var actions []WeeklyAction
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *repository) ListByTheme(themeID uuid.UUID) ([]WeeklyAction, error) {
	var actions []WeeklyAction
	if err := r.db.
		Where("theme_id = ?", themeID).
		Order("created_at ASC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *repository) ListOpenByUser(userID uuid.UUID) ([]WeeklyAction, error) {
	var actions []WeeklyAction
	if err := r.db.
		Where("user_id = ? AND is_completed = ?", userID, false).
		Order("created_at DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *repository) UpdateText(id, userID uuid.UUID, text string) (int64, error) {
	res := r.db.Model(&WeeklyAction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("action_text", text)
	return res.RowsAffected, res.Error
}

func (r *repository) SetCompleted(id, userID uuid.UUID, isCompleted bool) (int64, error) {
	res := r.db.Model(&WeeklyAction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_completed", isCompleted)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(id, userID uuid.UUID) (int64, error) {
	res := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&WeeklyAction{})
	return res.RowsAffected, res.Error
}
