package usecase

import (
	"context"
	"errors"
	"io"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/infrastructure/storage"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var (
	ErrSamePassword     = errors.New("old and new password must differ")
	ErrWrongPassword    = errors.New("old password is incorrect")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort = errors.New("new password must be at least 8 characters long")
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	EditPassword(ctx context.Context, userID uint, req *dto.EditPasswordRequest) error
	UpdateProfilePicture(ctx context.Context, userID uint, file io.Reader) (*dto.UserResponse, error)
}

type profileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	writer       *userWriter
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	fileStorage storage.FileStorage,
) ProfileUsecase {
	return &profileUsecase{
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

func (u *profileUsecase) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.writer.updateProfile(ctx, userID, req, service.AuditEntry{
		UserID: &userID,
		Action: entity.AuditActionProfileUpdate,
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) EditPassword(ctx context.Context, userID uint, req *dto.EditPasswordRequest) error {
	if req.OldPassword == req.NewPassword {
		return ErrSamePassword
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return ErrPasswordMismatch
	}
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	if err := u.userRepo.UpdatePassword(tx, userID, hashed); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		UserID:   &userID,
		Action:   entity.AuditActionPasswordChange,
		Entity:   "user",
		EntityID: userID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *profileUsecase) UpdateProfilePicture(ctx context.Context, userID uint, file io.Reader) (*dto.UserResponse, error) {
	user, err := u.writer.updatePicture(ctx, userID, file, service.AuditEntry{
		UserID: &userID,
		Action: entity.AuditActionProfileUpdate,
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
