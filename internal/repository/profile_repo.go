package repository

import (
	"go-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(id uuid.UUID) (*model.Profile, error)
	FindAll() ([]model.Profile, error)
	Create(profile *model.Profile) error
	UpdateRole(id uuid.UUID, role model.Role) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db}
}

func (r *profileRepo) FindByID(id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) FindAll() ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.Order("created_at").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepo) UpdateRole(id uuid.UUID, role model.Role) error {
	return r.db.Model(&model.Profile{}).Where("id = ?", id).Update("role", role).Error
}
