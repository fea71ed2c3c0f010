package repository

import (
	"blood-donation-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByIDAndUserID(db *gorm.DB, id, userID uint) (*entity.Appointment, error)
	FindAllByUserID(db *gorm.DB, userID uint) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// UpdateStatus filters on both id and owner and reports the affected rows.
	UpdateStatus(db *gorm.DB, id, userID uint, status entity.AppointmentStatus) (int64, error)
}

type QuestionnaireRepository interface {
	CreateBatch(db *gorm.DB, items []entity.Questionnaire) error
}
