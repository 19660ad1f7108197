package team

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository interface {
	FindByID(id uuid.UUID) (*Team, error)
	FindByName(name string) (*Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) FindByID(id uuid.UUID) (*Team, error) {
	var t Team
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) FindByName(name string) (*Team, error) {
	var t Team
	if err := r.db.First(&t, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
