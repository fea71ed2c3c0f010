package usecase

import (
	"bytes"
	"context"
	"testing"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestCreateAdminAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	uc := NewAdminUsecase(env.db, env.log, repository.NewAdminRepository(), env.audit)
	ctx := context.Background()

	created, err := uc.CreateAdmin(ctx, &dto.CreateAdminRequest{Name: " Petugas PMI "})
	require.NoError(t, err)
	assert.Equal(t, "Petugas PMI", created.Name)
	assert.Len(t, created.SecretKey, 64)

	admin, err := uc.Authenticate(ctx, created.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, created.ID, admin.ID)

	_, err = uc.Authenticate(ctx, "not-a-key")
	assert.ErrorIs(t, err, ErrAdminNotFound)

	_, err = uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrAdminNotFound)

	other, err := uc.CreateAdmin(ctx, &dto.CreateAdminRequest{Name: "Second"})
	require.NoError(t, err)
	assert.NotEqual(t, created.SecretKey, other.SecretKey)
}

func TestSetBloodStorageUpserts(t *testing.T) {
	env := newTestEnv(t)
	uc := NewBloodStorageUsecase(env.db, env.log, repository.NewBloodStorageRepository(), env.audit)
	ctx := context.Background()

	first, err := uc.SetBloodStorage(ctx, 1, &dto.SetBloodStorageRequest{Type: "a", Rhesus: "positive", Quantity: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, "A", first.Type)
	assert.Equal(t, "POSITIVE", first.Rhesus)

	second, err := uc.SetBloodStorage(ctx, 1, &dto.SetBloodStorageRequest{Type: "A", Rhesus: "POSITIVE", Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Quantity)

	_, err = uc.SetBloodStorage(ctx, 1, &dto.SetBloodStorageRequest{Type: "Z", Rhesus: "POSITIVE", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, entity.ErrInvalidBloodType)

	_, err = uc.SetBloodStorage(ctx, 1, &dto.SetBloodStorageRequest{Type: "O", Rhesus: " ", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, entity.ErrInvalidRhesus)

	all, err := uc.GetBloodStorage(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].Quantity)
}

func TestAdminUserManagement(t *testing.T) {
	env := newTestEnv(t)
	fs := newMemoryStorage()
	uc := NewAdminUserUsecase(env.db, env.log, repository.NewUserRepository(), env.audit, fs)
	ctx := context.Background()

	created, err := uc.CreateUser(ctx, 3, signupRequest("3273000000000009"))
	require.NoError(t, err)

	_, err = uc.CreateUser(ctx, 3, signupRequest("3273000000000009"))
	assert.ErrorIs(t, err, ErrNIKAlreadyExists)

	location := env.seedLocation(t, "Aula")
	require.NoError(t, env.db.Create(&entity.Appointment{UserID: created.ID, LocationID: location.ID, Status: entity.AppointmentStatusScheduled}).Error)

	got, err := uc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Appointments, 1)
	require.NotNil(t, got.Appointments[0].Location)
	assert.Equal(t, "Aula", got.Appointments[0].Location.Name)

	list, err := uc.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	updated, err := uc.UpdateUser(ctx, 3, created.ID, &dto.UpdateProfileRequest{City: strPtr("Cimahi")})
	require.NoError(t, err)
	assert.Equal(t, "Cimahi", updated.City)

	_, err = uc.UpdateUser(ctx, 3, 9999, &dto.UpdateProfileRequest{City: strPtr("Cimahi")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	pictured, err := uc.UpdateUserPicture(ctx, 3, created.ID, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.NotNil(t, pictured.ProfilePicture)

	var audits int64
	require.NoError(t, env.db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionAdminUserUpdate).Count(&audits).Error)
	assert.Equal(t, int64(2), audits)

	_, err = uc.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
