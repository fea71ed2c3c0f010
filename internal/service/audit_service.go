package service

import (
	"context"
	"strconv"

	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditEntry describes one change to record. UserID is nil when the actor is
// an admin or the sheet sync job; the actor is then named in Actor.
type AuditEntry struct {
	UserID   *uint
	Actor    string
	Action   string
	Entity   string
	EntityID uint
	OldValue interface{}
	NewValue interface{}
}

type AuditService interface {
	// Record writes the entry with tx so it commits or rolls back with the change.
	Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error {
	metadata := entity.JSON{
		"entity":   entry.Entity,
		"entityId": strconv.FormatUint(uint64(entry.EntityID), 10),
		"oldValue": entry.OldValue,
		"newValue": entry.NewValue,
	}
	if entry.Actor != "" {
		metadata["actor"] = entry.Actor
	}

	auditLog := &entity.AuditLog{
		UserID:   entry.UserID,
		Action:   entry.Action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", entry.Action, err)
		return err
	}

	return nil
}

// AdminActor names an admin in audit metadata
func AdminActor(adminID uint) string {
	return "admin:" + strconv.FormatUint(uint64(adminID), 10)
}

const SheetSyncActor = "sheet-sync"
