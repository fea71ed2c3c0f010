package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const secretKeyBytes = 32

var (
	ErrAdminNotFound = errors.New("admin not found")
)

type AdminUsecase interface {
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.CreateAdminResponse, error)
	// Authenticate resolves the admin owning secretKey.
	Authenticate(ctx context.Context, secretKey string) (*entity.Admin, error)
}

type adminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	auditService service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		auditService: auditService,
	}
}

func (u *adminUsecase) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.CreateAdminResponse, error) {
	secretKey, err := generateSecretKey()
	if err != nil {
		u.log.Warnf("Failed to generate secret key: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	admin := &entity.Admin{
		Name:      strings.TrimSpace(req.Name),
		SecretKey: secretKey,
	}
	if err := u.adminRepo.Create(tx, admin); err != nil {
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, service.AuditEntry{
		Actor:    service.AdminActor(admin.ID),
		Action:   entity.AuditActionAdminCreate,
		Entity:   "admin",
		EntityID: admin.ID,
		NewValue: map[string]interface{}{"name": admin.Name},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.CreateAdminResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		SecretKey: admin.SecretKey,
		CreatedAt: admin.CreatedAt,
	}, nil
}

func (u *adminUsecase) Authenticate(ctx context.Context, secretKey string) (*entity.Admin, error) {
	if secretKey == "" {
		return nil, ErrAdminNotFound
	}

	admin, err := u.adminRepo.FindBySecretKey(u.db.WithContext(ctx), secretKey)
	if err != nil {
		u.log.Warnf("Failed to find admin by secret key: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return admin, nil
}

func generateSecretKey() (string, error) {
	b := make([]byte, secretKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
