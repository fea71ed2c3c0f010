package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/repository"
	"blood-donation-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSheet struct {
	values  map[string][][]string
	cleared []string
	updated map[string][][]interface{}
	readErr error
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{values: map[string][][]string{}, updated: map[string][][]interface{}{}}
}

func (f *fakeSheet) GetValues(ctx context.Context, rng string) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.values[rng], nil
}

func (f *fakeSheet) ClearValues(ctx context.Context, rng string) error {
	f.cleared = append(f.cleared, rng)
	return nil
}

func (f *fakeSheet) UpdateValues(ctx context.Context, rng string, values [][]interface{}) error {
	f.updated[rng] = values
	return nil
}

type fakeResolver struct {
	lat, lng float64
	err      error
	links    []string
}

func (f *fakeResolver) Coordinates(ctx context.Context, link string) (float64, float64, error) {
	f.links = append(f.links, link)
	return f.lat, f.lng, f.err
}

func newSyncService(db *gorm.DB, sheet SheetClient, resolver CoordinateResolver, spreadsheetID string) *SheetSyncService {
	log := testutil.NewLogger()
	return NewSheetSyncService(
		db, log, sheet, spreadsheetID, resolver,
		repository.NewUserRepository(),
		repository.NewLocationRepository(),
		repository.NewAppointmentRepository(),
		NewAuditService(log, repository.NewAuditLogRepository()),
	)
}

func seedAppointment(t *testing.T, db *gorm.DB) (*entity.User, *entity.Appointment) {
	t.Helper()
	gender := entity.GenderFemale
	user := &entity.User{NIK: "3201234567890001", Name: "Siti", Password: "hash", Gender: &gender, BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(user).Error)
	location := &entity.Location{
		Name:      "PMI Kota",
		Latitude:  decimal.RequireFromString("-6.2"),
		Longitude: decimal.RequireFromString("106.8"),
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(28 * time.Hour),
	}
	require.NoError(t, db.Create(location).Error)
	appointment := &entity.Appointment{UserID: user.ID, LocationID: location.ID, Status: entity.AppointmentStatusScheduled}
	require.NoError(t, db.Create(appointment).Error)
	return user, appointment
}

func TestPerformSkipsWithoutSpreadsheet(t *testing.T) {
	db := testutil.NewDB(t)
	sheet := newFakeSheet()
	sheet.readErr = errors.New("should not be called")

	err := newSyncService(db, sheet, &fakeResolver{}, "").Perform(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sheet.cleared)
}

func TestPerformImportsLocations(t *testing.T) {
	db := testutil.NewDB(t)
	sheet := newFakeSheet()
	resolver := &fakeResolver{lat: -7.25, lng: 112.75}

	sheet.values[RangeNewLocations] = [][]string{
		{"Aula Desa", "-6.914744", "107.609810", "", "2030-01-01T09:00:00+07:00", "2030-01-01T13:00:00+07:00"},
		{"Tanpa Waktu", "-6.9", "107.6"},
		{"Dari Link", "", "", "https://maps.app.goo.gl/xyz", "2030-02-01 08:00", "2030-02-01 12:00"},
		{"", "", "", "", "", ""},
		{"Setelah Baris Kosong", "-6.1", "106.1", "", "2030-03-01", "2030-03-02"},
	}

	err := newSyncService(db, sheet, resolver, "sheet-id").Perform(context.Background())
	require.NoError(t, err)

	var locations []entity.Location
	require.NoError(t, db.Order("id ASC").Find(&locations).Error)
	require.Len(t, locations, 2)
	assert.Equal(t, "Aula Desa", locations[0].Name)
	assert.Equal(t, "-6.914744", locations[0].Latitude.StringFixed(6))
	assert.Equal(t, "Dari Link", locations[1].Name)
	assert.Equal(t, "112.750000", locations[1].Longitude.StringFixed(6))
	assert.Equal(t, []string{"https://maps.app.goo.gl/xyz"}, resolver.links)

	assert.Contains(t, sheet.cleared, "Tambah Lokasi Donor!A3:F3")
	assert.Contains(t, sheet.cleared, "Tambah Lokasi Donor!A5:F5")
	assert.NotContains(t, sheet.cleared, "Tambah Lokasi Donor!A4:F4")

	wib := JakartaLocation()
	assert.Equal(t, time.Date(2030, 2, 1, 8, 0, 0, 0, wib).Unix(), locations[1].StartTime.Unix())

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionSheetLocationImport).Count(&audits).Error)
	assert.Equal(t, int64(2), audits)
}

func TestPerformAppliesStatusEdits(t *testing.T) {
	db := testutil.NewDB(t)
	user, appointment := seedAppointment(t, db)
	sheet := newFakeSheet()

	id := strconv.FormatUint(uint64(appointment.ID), 10)
	uid := strconv.FormatUint(uint64(user.ID), 10)
	sheet.values[RangeAppointmentEdit] = [][]string{
		{"TRUE", "1", id, uid, user.NIK, user.Name, "", "PMI Kota", "Hadir"},
		// wrong owner is ignored
		{"TRUE", "2", id, "999", "", "", "", "", "Tidak Hadir"},
		// not in edit mode
		{"", "3", id, uid, "", "", "", "", "Tidak Hadir"},
	}

	err := newSyncService(db, sheet, &fakeResolver{}, "sheet-id").Perform(context.Background())
	require.NoError(t, err)

	var got entity.Appointment
	require.NoError(t, db.First(&got, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusAttended, got.Status)
}

func TestPerformUnknownStatusLabelMeansMissed(t *testing.T) {
	db := testutil.NewDB(t)
	user, appointment := seedAppointment(t, db)
	sheet := newFakeSheet()

	sheet.values[RangeAppointmentEdit] = [][]string{{
		"x", "1",
		strconv.FormatUint(uint64(appointment.ID), 10),
		strconv.FormatUint(uint64(user.ID), 10),
		"", "", "", "", "Batal",
	}}

	require.NoError(t, newSyncService(db, sheet, &fakeResolver{}, "sheet-id").Perform(context.Background()))

	var got entity.Appointment
	require.NoError(t, db.First(&got, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusMissed, got.Status)
}

func TestPerformRewritesViews(t *testing.T) {
	db := testutil.NewDB(t)
	user, appointment := seedAppointment(t, db)
	sheet := newFakeSheet()

	require.NoError(t, newSyncService(db, sheet, &fakeResolver{}, "sheet-id").Perform(context.Background()))

	for _, rng := range []string{RangeUserView, RangeAppointmentView, RangeLocationView} {
		assert.Contains(t, sheet.cleared, rng)
	}

	users := sheet.updated["Lihat Daftar Akun!A1"]
	require.Len(t, users, 2)
	assert.Equal(t, "ID", users[0][0])
	assert.Len(t, users[0], 20)
	assert.Equal(t, user.Name, users[1][1])
	assert.Equal(t, "Perempuan", users[1][5])
	assert.Equal(t, "1990-05-01", users[1][4])

	appointments := sheet.updated["Lihat Pendaftaran Donor!A1"]
	require.Len(t, appointments, 2)
	assert.Equal(t, "Mode Edit", appointments[0][0])
	assert.Equal(t, appointment.ID, appointments[1][2])
	assert.Equal(t, user.NIK, appointments[1][4])
	assert.Equal(t, "Terdaftar", appointments[1][8])

	locations := sheet.updated["Lihat Lokasi Donor!A1"]
	require.Len(t, locations, 2)
	assert.Equal(t, "-6.200000", locations[1][3])
	assert.Equal(t, "106.800000", locations[1][4])
}

func TestPerformReturnsReadError(t *testing.T) {
	db := testutil.NewDB(t)
	sheet := newFakeSheet()
	sheet.readErr = errors.New("quota exceeded")

	err := newSyncService(db, sheet, &fakeResolver{}, "sheet-id").Perform(context.Background())
	assert.ErrorIs(t, err, sheet.readErr)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Terdaftar", StatusLabel(entity.AppointmentStatusScheduled))
	assert.Equal(t, "Hadir", StatusLabel(entity.AppointmentStatusAttended))
	assert.Equal(t, "Tidak Hadir", StatusLabel(entity.AppointmentStatusMissed))
}
