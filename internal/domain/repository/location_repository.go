package repository

import (
	"blood-donation-api/internal/domain/entity"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(db *gorm.DB, location *entity.Location) error
	// FindByID also returns soft deleted locations so callers can tell them apart.
	FindByID(db *gorm.DB, id uint) (*entity.Location, error)
	FindAll(db *gorm.DB) ([]entity.Location, error)
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}
