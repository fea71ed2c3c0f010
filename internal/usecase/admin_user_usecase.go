package usecase

import (
	"context"
	"io"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/infrastructure/storage"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminUserUsecase manages donor accounts on behalf of an admin
type AdminUserUsecase interface {
	CreateUser(ctx context.Context, adminID uint, req *dto.SignupRequest) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, adminID, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateUserPicture(ctx context.Context, adminID, id uint, file io.Reader) (*dto.UserResponse, error)
}

type adminUserUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	writer       *userWriter
}

func NewAdminUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	fileStorage storage.FileStorage,
) AdminUserUsecase {
	return &adminUserUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		writer: &userWriter{
			db:           db,
			log:          log,
			userRepo:     userRepo,
			auditService: auditService,
			storage:      fileStorage,
		},
	}
}

func (u *adminUserUsecase) CreateUser(ctx context.Context, adminID uint, req *dto.SignupRequest) (*dto.UserResponse, error) {
	user, err := newUser(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "nik") {
			return nil, ErrNIKAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		Actor:    service.AdminActor(adminID),
		Action:   entity.AuditActionAdminUserCreate,
		Entity:   "user",
		EntityID: user.ID,
		NewValue: map[string]interface{}{"nik": user.NIK, "name": user.Name},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUserUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAllWithAppointments(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *adminUserUsecase) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByIDWithAppointments(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUserUsecase) UpdateUser(ctx context.Context, adminID, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.writer.updateProfile(ctx, id, req, service.AuditEntry{
		Actor:  service.AdminActor(adminID),
		Action: entity.AuditActionAdminUserUpdate,
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUserUsecase) UpdateUserPicture(ctx context.Context, adminID, id uint, file io.Reader) (*dto.UserResponse, error) {
	user, err := u.writer.updatePicture(ctx, id, file, service.AuditEntry{
		Actor:  service.AdminActor(adminID),
		Action: entity.AuditActionAdminUserUpdate,
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
