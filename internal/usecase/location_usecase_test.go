package usecase

import (
	"context"
	"testing"
	"time"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

func newLocationUsecase(env *testEnv) LocationUsecase {
	uc := NewLocationUsecase(env.db, env.log, repository.NewLocationRepository(), env.audit)
	uc.(*locationUsecase).now = func() time.Time { return fixedNow }
	return uc
}

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func createLocationRequest(start, end time.Time) *dto.CreateLocationRequest {
	return &dto.CreateLocationRequest{
		Name:      "GOR Saparua",
		Latitude:  floatPtr(-6.9097),
		Longitude: floatPtr(107.6189),
		StartTime: timePtr(start),
		EndTime:   timePtr(end),
	}
}

func TestCreateLocation(t *testing.T) {
	env := newTestEnv(t)
	uc := newLocationUsecase(env)
	ctx := context.Background()

	got, err := uc.CreateLocation(ctx, 7, createLocationRequest(fixedNow.Add(time.Hour), fixedNow.Add(5*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, -6.9097, got.Latitude)
	assert.Equal(t, 107.6189, got.Longitude)

	var audit entity.AuditLog
	require.NoError(t, env.db.Where("action = ?", entity.AuditActionLocationCreate).First(&audit).Error)
	assert.Equal(t, "admin:7", audit.Metadata["actor"])
	assert.Nil(t, audit.UserID)
}

func TestCreateLocationValidatesSchedule(t *testing.T) {
	env := newTestEnv(t)
	uc := newLocationUsecase(env)
	ctx := context.Background()

	_, err := uc.CreateLocation(ctx, 1, createLocationRequest(fixedNow.Add(5*time.Hour), fixedNow.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = uc.CreateLocation(ctx, 1, createLocationRequest(fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrStartTimeInPast)

	assert.Zero(t, env.count(t, &entity.Location{}))
}

func TestLocationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	uc := newLocationUsecase(env)
	ctx := context.Background()

	created, err := uc.CreateLocation(ctx, 1, createLocationRequest(fixedNow.Add(time.Hour), fixedNow.Add(5*time.Hour)))
	require.NoError(t, err)

	updated, err := uc.UpdateLocation(ctx, 1, created.ID, &dto.UpdateLocationRequest{Name: strPtr("GOR Pajajaran")})
	require.NoError(t, err)
	assert.Equal(t, "GOR Pajajaran", updated.Name)
	assert.Equal(t, -6.9097, updated.Latitude)

	_, err = uc.UpdateLocation(ctx, 1, created.ID, &dto.UpdateLocationRequest{EndTime: timePtr(fixedNow)})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	list, err := uc.GetAllLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, uc.DeleteLocation(ctx, 1, created.ID))

	_, err = uc.GetLocation(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLocationDeleted)

	err = uc.DeleteLocation(ctx, 1, created.ID)
	assert.ErrorIs(t, err, ErrLocationDeleted)

	_, err = uc.GetLocation(ctx, 4040)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	list, err = uc.GetAllLocations(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}
