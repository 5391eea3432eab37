package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// RoleLookup is the narrow read capability authorization decisions depend on.
// It is deliberately separate from Repository so that code which only needs
// to answer "what role does this identity hold" is not handed the full
// privileged surface.
type RoleLookup interface {
	RoleByID(id uuid.UUID) (Role, error)
}

// Directory is the privileged read capability for cross-user lookups. Only
// role-scoped operations (coach acting on a client) may depend on it.
type Directory interface {
	RoleLookup
	FindByID(id uuid.UUID) (*User, error)
	ListClients() ([]User, error)
	FindAnyCoach() (*User, error)
	ListNudgeOptedInClients() ([]User, error)
}

// PrivilegedWriter writes rows the caller does not own. Reachable only after
// the role-scoped checks in the service layer have passed.
type PrivilegedWriter interface {
	UpdatePadletURL(clientID uuid.UUID, url *string) (int64, error)
}

type Repository interface {
	Directory
	PrivilegedWriter
	Create(u *User) error
	FindByEmail(email string) (*User, error)
	UpdateLeadershipPurpose(userID uuid.UUID, purpose *string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) RoleByID(id uuid.UUID) (Role, error) {
	var u User
	if err := r.db.Select("role").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return u.Role, nil
}

func (r *repository) ListClients() ([]User, error) {
	var users []User
	if err := r.db.
		Where("role = ?", RoleClient).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindAnyCoach() (*User, error) {
	var u User
	if err := r.db.First(&u, "role = ?", RoleCoach).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) ListNudgeOptedInClients() ([]User, error) {
	var users []User
	if err := r.db.
		Joins("JOIN settings ON settings.user_id = users.id").
		Where("users.role = ?", RoleClient).
		Where("settings.receive_weekly_nudge = ?", true).
		Where("users.phone IS NOT NULL").
		Order("users.name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) UpdateLeadershipPurpose(userID uuid.UUID, purpose *string) (int64, error) {
	res := r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("leadership_purpose", purpose)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdatePadletURL(clientID uuid.UUID, url *string) (int64, error) {
	res := r.db.Model(&User{}).
		Where("id = ?", clientID).
		Update("padlet_url", url)
	return res.RowsAffected, res.Error
}
