package usecase

import (
	"context"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BloodStorageUsecase interface {
	GetBloodStorage(ctx context.Context) ([]dto.BloodStorageResponse, error)
	// SetBloodStorage creates or overwrites the stock of one (type, rhesus) pair.
	SetBloodStorage(ctx context.Context, adminID uint, req *dto.SetBloodStorageRequest) (*dto.BloodStorageResponse, error)
}

type bloodStorageUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	bloodStorageRepo repository.BloodStorageRepository
	auditService     service.AuditService
}

func NewBloodStorageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bloodStorageRepo repository.BloodStorageRepository,
	auditService service.AuditService,
) BloodStorageUsecase {
	return &bloodStorageUsecase{
		db:               db,
		log:              log,
		bloodStorageRepo: bloodStorageRepo,
		auditService:     auditService,
	}
}

func (u *bloodStorageUsecase) GetBloodStorage(ctx context.Context) ([]dto.BloodStorageResponse, error) {
	storages, err := u.bloodStorageRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find blood storage: %+v", err)
		return nil, err
	}

	return converter.BloodStoragesToResponses(storages), nil
}

func (u *bloodStorageUsecase) SetBloodStorage(ctx context.Context, adminID uint, req *dto.SetBloodStorageRequest) (*dto.BloodStorageResponse, error) {
	bloodType, err := entity.ParseBloodType(req.Type)
	if err != nil {
		return nil, err
	}
	rhesus, err := entity.ParseRhesus(req.Rhesus)
	if err != nil {
		return nil, err
	}
	if bloodType == nil {
		return nil, entity.ErrInvalidBloodType
	}
	if rhesus == nil {
		return nil, entity.ErrInvalidRhesus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	storage, err := u.bloodStorageRepo.FindByTypeAndRhesus(tx, *bloodType, *rhesus)
	if err != nil {
		u.log.Warnf("Failed to find blood storage: %+v", err)
		return nil, err
	}

	var oldQuantity interface{}
	if storage == nil {
		storage = &entity.BloodStorage{Type: *bloodType, Rhesus: *rhesus, Quantity: *req.Quantity}
		if err := u.bloodStorageRepo.Create(tx, storage); err != nil {
			u.log.Warnf("Failed to create blood storage: %+v", err)
			return nil, err
		}
	} else {
		oldQuantity = storage.Quantity
		if err := u.bloodStorageRepo.UpdateQuantity(tx, storage.ID, *req.Quantity); err != nil {
			u.log.Warnf("Failed to update blood storage %d: %+v", storage.ID, err)
			return nil, err
		}
		storage.Quantity = *req.Quantity
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		Actor:    service.AdminActor(adminID),
		Action:   entity.AuditActionBloodStorageSet,
		Entity:   "blood_storage",
		EntityID: storage.ID,
		OldValue: oldQuantity,
		NewValue: storage.Quantity,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BloodStorageToResponse(storage), nil
}
