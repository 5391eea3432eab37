package nudge

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(n *NudgeSent) error
	ListByCoach(coachID uuid.UUID, limit int) ([]NudgeSent, error)
	ListByClient(clientID uuid.UUID, limit int) ([]NudgeSent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(n *NudgeSent) error {
	return r.db.Create(n).Error
}

func (r *repository) ListByCoach(coachID uuid.UUID, limit int) ([]NudgeSent, error) {
	q := r.db.
		Where("coach_id = ?", coachID).
		Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var nudges []NudgeSent
	if err := q.Find(&nudges).Error; err != nil {
		return nil, err
	}
	return nudges, nil
}

func (r *repository) ListByClient(clientID uuid.UUID, limit int) ([]NudgeSent, error) {
	q := r.db.
		Where("client_id = ?", clientID).
		Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var nudges []NudgeSent
	if err := q.Find(&nudges).Error; err != nil {
		return nil, err
	}
	return nudges, nil
}
