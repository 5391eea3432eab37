package progress

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(e *ProgressEntry) error
	ListByUser(userID uuid.UUID, limit int) ([]ProgressEntry, error)
	LatestByUser(userID uuid.UUID) (*ProgressEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(e *ProgressEntry) error {
	return r.db.Create(e).Error
}

func (r *repository) ListByUser(userID uuid.UUID, limit int) ([]ProgressEntry, error) {
	q := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []ProgressEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) LatestByUser(userID uuid.UUID) (*ProgressEntry, error) {
	var e ProgressEntry
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, nil
	}
	return &e, nil
}
