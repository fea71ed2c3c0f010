package usecase

import (
	"context"
	"errors"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, userID uint) (*dto.AppointmentListResponse, error)
	GetMyAppointment(ctx context.Context, userID, id uint) (*dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, userID, id uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	questionnaireRepo repository.QuestionnaireRepository
	locationRepo      repository.LocationRepository
	auditService      service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	locationRepo repository.LocationRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		questionnaireRepo: questionnaireRepo,
		locationRepo:      locationRepo,
		auditService:      auditService,
	}
}

// CreateAppointment inserts the appointment and its questionnaire in one
// transaction. Nothing is kept if any insert fails.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatusScheduled
	if req.Status != "" {
		parsed, err := entity.ParseAppointmentStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	location, err := u.locationRepo.FindByID(u.db.WithContext(ctx), req.LocationID)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", req.LocationID, err)
		return nil, err
	}
	if location == nil || location.IsDeleted() {
		return nil, ErrLocationNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		UserID:     userID,
		LocationID: location.ID,
		Status:     status,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	items := flattenQuestionnaire(appointment.ID, req.QuestionnaireSections)
	if err := u.questionnaireRepo.CreateBatch(tx, items); err != nil {
		u.log.Warnf("Failed to create questionnaire for appointment %d: %+v", appointment.ID, err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		UserID:   &userID,
		Action:   entity.AuditActionAppointmentCreate,
		Entity:   "appointment",
		EntityID: appointment.ID,
		NewValue: map[string]interface{}{
			"locationId":    appointment.LocationID,
			"status":        appointment.Status,
			"questionnaire": len(items),
		},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Location = location
	appointment.Questionnaire = items
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, userID uint) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAllByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %d: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetMyAppointment(ctx context.Context, userID, id uint) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByIDAndUserID(u.db.WithContext(ctx), id, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointmentStatus only touches rows owned by userID.
func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, userID, id uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(tx, id, userID, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		UserID:   &userID,
		Action:   entity.AuditActionAppointmentStatus,
		Entity:   "appointment",
		EntityID: id,
		NewValue: map[string]interface{}{"status": status},
	}); err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByIDAndUserID(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// GetAllAppointments lists every user's appointments for the admin surface.
func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func flattenQuestionnaire(appointmentID uint, sections []dto.QuestionnaireSection) []entity.Questionnaire {
	var items []entity.Questionnaire
	for _, section := range sections {
		for _, item := range section.Items {
			items = append(items, entity.Questionnaire{
				AppointmentID: appointmentID,
				Number:        item.ItemNumber,
				Question:      item.Question,
				Answer:        item.Answer,
			})
		}
	}
	return items
}
