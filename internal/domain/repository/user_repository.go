package repository

import (
	"blood-donation-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByNIK(db *gorm.DB, nik string) (*entity.User, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	FindAllWithAppointments(db *gorm.DB) ([]entity.User, error)
	FindByIDWithAppointments(db *gorm.DB, id uint) (*entity.User, error)
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	UpdatePassword(db *gorm.DB, id uint, hashedPassword string) error
}
