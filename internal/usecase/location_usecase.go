package usecase

import (
	"context"
	"errors"
	"time"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationDeleted  = errors.New("location has been deleted")
	ErrInvalidTimeRange = errors.New("startTime must be before endTime")
	ErrStartTimeInPast  = errors.New("startTime must be in the future")
)

type LocationUsecase interface {
	CreateLocation(ctx context.Context, adminID uint, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	GetAllLocations(ctx context.Context) (*dto.LocationListResponse, error)
	GetLocation(ctx context.Context, id uint) (*dto.LocationResponse, error)
	UpdateLocation(ctx context.Context, adminID, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, adminID, id uint) error
}

type locationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locationRepo repository.LocationRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewLocationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	auditService service.AuditService,
) LocationUsecase {
	return &locationUsecase{
		db:           db,
		log:          log,
		locationRepo: locationRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *locationUsecase) CreateLocation(ctx context.Context, adminID uint, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := u.checkSchedule(*req.StartTime, *req.EndTime); err != nil {
		return nil, err
	}

	location := &entity.Location{
		Name:      req.Name,
		Latitude:  decimal.NewFromFloat(*req.Latitude),
		Longitude: decimal.NewFromFloat(*req.Longitude),
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.locationRepo.Create(tx, location); err != nil {
		u.log.Warnf("Failed to create location: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		Actor:    service.AdminActor(adminID),
		Action:   entity.AuditActionLocationCreate,
		Entity:   "location",
		EntityID: location.ID,
		NewValue: converter.LocationToResponse(location),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LocationToResponse(location), nil
}

func (u *locationUsecase) GetAllLocations(ctx context.Context) (*dto.LocationListResponse, error) {
	locations, err := u.locationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all locations: %+v", err)
		return nil, err
	}

	return &dto.LocationListResponse{
		Locations: converter.LocationsToResponses(locations),
		Total:     len(locations),
	}, nil
}

func (u *locationUsecase) GetLocation(ctx context.Context, id uint) (*dto.LocationResponse, error) {
	location, err := u.findActive(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return converter.LocationToResponse(location), nil
}

func (u *locationUsecase) UpdateLocation(ctx context.Context, adminID, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.findActive(tx, id)
	if err != nil {
		return nil, err
	}
	before := converter.LocationToResponse(location)

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
		location.Name = *req.Name
	}
	if req.Latitude != nil {
		location.Latitude = decimal.NewFromFloat(*req.Latitude)
		changes["latitude"] = location.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = decimal.NewFromFloat(*req.Longitude)
		changes["longitude"] = location.Longitude
	}
	if req.StartTime != nil {
		changes["start_time"] = *req.StartTime
		location.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		changes["end_time"] = *req.EndTime
		location.EndTime = *req.EndTime
	}

	if !location.StartTime.Before(location.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime != nil && !req.StartTime.After(u.now()) {
		return nil, ErrStartTimeInPast
	}

	if len(changes) > 0 {
		if err := u.locationRepo.UpdateFields(tx, id, changes); err != nil {
			u.log.Warnf("Failed to update location %d: %+v", id, err)
			return nil, err
		}

		if err := u.auditService.Record(ctx, tx, service.AuditEntry{
			Actor:    service.AdminActor(adminID),
			Action:   entity.AuditActionLocationUpdate,
			Entity:   "location",
			EntityID: id,
			OldValue: before,
			NewValue: converter.LocationToResponse(location),
		}); err != nil {
			return nil, err
		}
	}

	updated, err := u.locationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload location %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LocationToResponse(updated), nil
}

func (u *locationUsecase) DeleteLocation(ctx context.Context, adminID, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.findActive(tx, id)
	if err != nil {
		return err
	}

	if err := u.locationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete location %d: %+v", id, err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		Actor:    service.AdminActor(adminID),
		Action:   entity.AuditActionLocationDelete,
		Entity:   "location",
		EntityID: id,
		OldValue: converter.LocationToResponse(location),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *locationUsecase) checkSchedule(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if !start.After(u.now()) {
		return ErrStartTimeInPast
	}
	return nil
}

// findActive tells a missing location apart from a soft deleted one.
func (u *locationUsecase) findActive(db *gorm.DB, id uint) (*entity.Location, error) {
	location, err := u.locationRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", id, err)
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}
	if location.IsDeleted() {
		return nil, ErrLocationDeleted
	}
	return location, nil
}
