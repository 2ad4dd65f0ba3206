package postgres

import (
	"github.com/empmanager/personnel-management/internal/direction"
	"gorm.io/gorm"
)

type DirectionRepository struct {
	db *gorm.DB
}

func NewDirectionRepository(db *gorm.DB) direction.Repository {
	return &DirectionRepository{db: db}
}

func (r *DirectionRepository) List() ([]direction.Direction, error) {
	var directions []direction.Direction
	if err := r.db.Order("name").Find(&directions).Error; err != nil {
		return nil, err
	}
	return directions, nil
}

func (r *DirectionRepository) GetByID(id int64) (*direction.Direction, error) {
	var d direction.Direction
	if err := r.db.Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
