package repository

import (
	"errors"

	"blood-donation-api/internal/domain/entity"
	domainRepo "blood-donation-api/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByNIK(db *gorm.DB, nik string) (*entity.User, error) {
	var user entity.User
	err := db.Where("nik = ?", nik).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindAllWithAppointments(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := preloadAppointments(db).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByIDWithAppointments(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := preloadAppointments(db).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) UpdatePassword(db *gorm.DB, id uint, hashedPassword string) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func preloadAppointments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointments.created_at DESC")
		}).
		Preload("Appointments.Location", unscoped).
		Preload("Appointments.Questionnaire", orderByNumber)
}

// appointments keep pointing at their location after it is soft deleted
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func orderByNumber(db *gorm.DB) *gorm.DB {
	return db.Order("questionnaires.number ASC")
}
