package repository

import (
	"errors"

	"blood-donation-api/internal/domain/entity"
	domainRepo "blood-donation-api/internal/domain/repository"

	"gorm.io/gorm"
)

type locationRepository struct{}

func NewLocationRepository() domainRepo.LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Create(db *gorm.DB, location *entity.Location) error {
	return db.Create(location).Error
}

func (r *locationRepository) FindByID(db *gorm.DB, id uint) (*entity.Location, error) {
	var location entity.Location
	err := db.Unscoped().Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindAll(db *gorm.DB) ([]entity.Location, error) {
	var locations []entity.Location
	err := db.Order("start_time DESC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	return db.Model(&entity.Location{}).Where("id = ?", id).Updates(fields).Error
}

func (r *locationRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.Location{}, id).Error
}
