package repository

import (
	"errors"

	"blood-donation-api/internal/domain/entity"
	domainRepo "blood-donation-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("User", "Location", "Questionnaire").Create(appointment).Error
}

func (r *appointmentRepository) FindByIDAndUserID(db *gorm.DB, id, userID uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Preload("Location", unscoped).
		Preload("Questionnaire", orderByNumber).
		Where("id = ? AND user_id = ?", id, userID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAllByUserID(db *gorm.DB, userID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Joins("JOIN locations ON locations.id = appointments.location_id").
		Preload("Location", unscoped).
		Where("appointments.user_id = ?", userID).
		Order("locations.start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Preload("User").
		Preload("Location", unscoped).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id, userID uint, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

type questionnaireRepository struct{}

func NewQuestionnaireRepository() domainRepo.QuestionnaireRepository {
	return &questionnaireRepository{}
}

func (r *questionnaireRepository) CreateBatch(db *gorm.DB, items []entity.Questionnaire) error {
	if len(items) == 0 {
		return nil
	}
	return db.CreateInBatches(&items, 100).Error
}
