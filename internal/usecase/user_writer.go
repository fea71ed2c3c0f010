package usecase

import (
	"context"
	"io"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"
	"blood-donation-api/internal/infrastructure/storage"
	"blood-donation-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const profilePicturePrefix = "profile-pictures"

// userWriter holds the user updates shared by the profile and admin surfaces.
// Callers fill in the actor of the audit entry.
type userWriter struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	storage      storage.FileStorage
}

func (w *userWriter) updateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest, entry service.AuditEntry) (*entity.User, error) {
	changes, err := profileChanges(req)
	if err != nil {
		return nil, err
	}

	tx := w.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := w.userRepo.FindByID(tx, userID)
	if err != nil {
		w.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if len(changes) > 0 {
		if err := w.userRepo.UpdateFields(tx, userID, changes); err != nil {
			if isDuplicateKeyError(err, "nik") {
				return nil, ErrNIKAlreadyExists
			}
			w.log.Warnf("Failed to update user %d: %+v", userID, err)
			return nil, err
		}

		entry.Entity = "user"
		entry.EntityID = userID
		entry.NewValue = changes
		if err := w.auditService.Record(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	updated, err := w.userRepo.FindByID(tx, userID)
	if err != nil {
		w.log.Warnf("Failed to reload user %d: %+v", userID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		w.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (w *userWriter) updatePicture(ctx context.Context, userID uint, file io.Reader, entry service.AuditEntry) (*entity.User, error) {
	user, err := w.userRepo.FindByID(w.db.WithContext(ctx), userID)
	if err != nil {
		w.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	url, err := saveImage(ctx, w.storage, profilePicturePrefix, file)
	if err != nil {
		if err != ErrFileTooLarge && err != ErrUnsupportedFileType && err != ErrEmptyFile {
			w.log.Warnf("Failed to store profile picture: %+v", err)
		}
		return nil, err
	}

	tx := w.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := w.userRepo.UpdateFields(tx, userID, map[string]interface{}{"profile_picture": url}); err != nil {
		w.log.Warnf("Failed to update profile picture: %+v", err)
		return nil, err
	}

	entry.Entity = "user"
	entry.EntityID = userID
	entry.OldValue = map[string]interface{}{"profilePicture": user.ProfilePicture}
	entry.NewValue = map[string]interface{}{"profilePicture": url}
	if err := w.auditService.Record(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		w.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.ProfilePicture = &url
	return user, nil
}
