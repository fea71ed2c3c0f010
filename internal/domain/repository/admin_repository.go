package repository

import (
	"blood-donation-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindBySecretKey(db *gorm.DB, secretKey string) (*entity.Admin, error)
}

type BloodStorageRepository interface {
	FindAll(db *gorm.DB) ([]entity.BloodStorage, error)
	FindByTypeAndRhesus(db *gorm.DB, bloodType entity.BloodType, rhesus entity.Rhesus) (*entity.BloodStorage, error)
	Create(db *gorm.DB, storage *entity.BloodStorage) error
	UpdateQuantity(db *gorm.DB, id uint, quantity int) error
}
