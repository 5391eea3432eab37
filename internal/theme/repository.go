package theme

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(t *DevelopmentTheme) error
	CountByUser(userID uuid.UUID) (int64, error)
	ExistsByIDAndUser(id, userID uuid.UUID) (bool, error)
	ListByUserOrdered(userID uuid.UUID) ([]DevelopmentTheme, error)
	ListByUserRecent(userID uuid.UUID) ([]DevelopmentTheme, error)
	FindLatestByUser(userID uuid.UUID) (*DevelopmentTheme, error)
	UpdateName(id, userID uuid.UUID, themeText string) (int64, error)
	UpdateSuccessDescription(id, userID uuid.UUID, description *string) (int64, error)
	Delete(id, userID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(t *DevelopmentTheme) error {
	return r.db.Create(t).Error
}

func (r *repository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&DevelopmentTheme{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) ExistsByIDAndUser(id, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&DevelopmentTheme{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByUserOrdered(userID uuid.UUID) ([]DevelopmentTheme, error) {
	var themes []DevelopmentTheme
	if err := r.db.
		Where("user_id = ?", userID).
		Order("theme_order ASC").
		Find(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *repository) ListByUserRecent(userID uuid.UUID) ([]DevelopmentTheme, error) {
	var themes []DevelopmentTheme
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *repository) FindLatestByUser(userID uuid.UUID) (*DevelopmentTheme, error) {
	var t DevelopmentTheme
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == uuid.Nil {
		return nil, nil
	}
	return &t, nil
}

func (r *repository) UpdateName(id, userID uuid.UUID, themeText string) (int64, error) {
	res := r.db.Model(&DevelopmentTheme{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("theme_text", themeText)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateSuccessDescription(id, userID uuid.UUID, description *string) (int64, error) {
	res := r.db.Model(&DevelopmentTheme{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("success_description", description)
	return res.RowsAffected, res.Error
}

// Delete removes the theme owned by userID. Hypotheses referencing it are
// removed by the weekly_actions foreign key cascade.
func (r *repository) Delete(id, userID uuid.UUID) (int64, error) {
	res := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&DevelopmentTheme{})
	return res.RowsAffected, res.Error
}
