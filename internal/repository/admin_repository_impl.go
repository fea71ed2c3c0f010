package repository

import (
	"errors"

	"blood-donation-api/internal/domain/entity"
	domainRepo "blood-donation-api/internal/domain/repository"

	"gorm.io/gorm"
)

type adminRepository struct{}

func NewAdminRepository() domainRepo.AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(db *gorm.DB, admin *entity.Admin) error {
	return db.Create(admin).Error
}

func (r *adminRepository) FindBySecretKey(db *gorm.DB, secretKey string) (*entity.Admin, error) {
	var admin entity.Admin
	err := db.Where("secret_key = ?", secretKey).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

type bloodStorageRepository struct{}

func NewBloodStorageRepository() domainRepo.BloodStorageRepository {
	return &bloodStorageRepository{}
}

func (r *bloodStorageRepository) FindAll(db *gorm.DB) ([]entity.BloodStorage, error) {
	var storages []entity.BloodStorage
	err := db.Order("created_at DESC").Find(&storages).Error
	if err != nil {
		return nil, err
	}
	return storages, nil
}

func (r *bloodStorageRepository) FindByTypeAndRhesus(db *gorm.DB, bloodType entity.BloodType, rhesus entity.Rhesus) (*entity.BloodStorage, error) {
	var storage entity.BloodStorage
	err := db.Where("type = ? AND rhesus = ?", bloodType, rhesus).First(&storage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &storage, nil
}

func (r *bloodStorageRepository) Create(db *gorm.DB, storage *entity.BloodStorage) error {
	return db.Create(storage).Error
}

func (r *bloodStorageRepository) UpdateQuantity(db *gorm.DB, id uint, quantity int) error {
	return db.Model(&entity.BloodStorage{}).Where("id = ?", id).Update("quantity", quantity).Error
}
