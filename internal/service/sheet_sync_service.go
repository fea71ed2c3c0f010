package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sheet ranges used by the sync job
const (
	RangeNewLocations    = "Tambah Lokasi Donor!A3:F"
	RangeAppointmentEdit = "Lihat Pendaftaran Donor!A2:I"
	RangeUserView        = "Lihat Daftar Akun!A1:T"
	RangeAppointmentView = "Lihat Pendaftaran Donor!A1:I"
	RangeLocationView    = "Lihat Lokasi Donor!A1:H"

	newLocationsFirstRow = 3
)

var ErrSheetClientUnavailable = errors.New("sheet client is not configured")

var sheetSyncRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blood_donation_sheet_sync_runs_total",
		Help: "Spreadsheet sync runs by result",
	},
	[]string{"result"},
)

// SheetClient reads and writes spreadsheet value ranges
type SheetClient interface {
	GetValues(ctx context.Context, rng string) ([][]string, error)
	ClearValues(ctx context.Context, rng string) error
	UpdateValues(ctx context.Context, rng string, values [][]interface{}) error
}

// CoordinateResolver extracts coordinates from a Maps link
type CoordinateResolver interface {
	Coordinates(ctx context.Context, link string) (float64, float64, error)
}

var sheetStatusToAppointment = map[string]entity.AppointmentStatus{
	"Terdaftar":   entity.AppointmentStatusScheduled,
	"Hadir":       entity.AppointmentStatusAttended,
	"Tidak Hadir": entity.AppointmentStatusMissed,
}

// SheetSyncService imports new locations and status edits from the
// spreadsheet, then rewrites the read-only views from the database.
type SheetSyncService struct {
	db              *gorm.DB
	log             *logrus.Logger
	client          SheetClient
	spreadsheetID   string
	resolver        CoordinateResolver
	userRepo        repository.UserRepository
	locationRepo    repository.LocationRepository
	appointmentRepo repository.AppointmentRepository
	auditService    AuditService
	tz              *time.Location
}

func NewSheetSyncService(
	db *gorm.DB,
	log *logrus.Logger,
	client SheetClient,
	spreadsheetID string,
	resolver CoordinateResolver,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService AuditService,
) *SheetSyncService {
	return &SheetSyncService{
		db:              db,
		log:             log,
		client:          client,
		spreadsheetID:   spreadsheetID,
		resolver:        resolver,
		userRepo:        userRepo,
		locationRepo:    locationRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		tz:              JakartaLocation(),
	}
}

func (s *SheetSyncService) Perform(ctx context.Context) error {
	if s.spreadsheetID == "" {
		s.log.Warn("SPREADSHEET_ID is empty, skipping sheet sync")
		sheetSyncRuns.WithLabelValues("skipped").Inc()
		return nil
	}
	if s.client == nil {
		sheetSyncRuns.WithLabelValues("error").Inc()
		return ErrSheetClientUnavailable
	}

	if err := s.sync(ctx); err != nil {
		sheetSyncRuns.WithLabelValues("error").Inc()
		return err
	}

	sheetSyncRuns.WithLabelValues("success").Inc()
	s.log.Info("Sheet sync completed")
	return nil
}

func (s *SheetSyncService) sync(ctx context.Context) error {
	rows, err := s.readNewLocations(ctx)
	if err != nil {
		return err
	}
	s.importLocations(ctx, rows)

	if err := s.importAppointmentStatuses(ctx); err != nil {
		return err
	}

	for _, rng := range []string{RangeUserView, RangeAppointmentView, RangeLocationView} {
		if err := s.client.ClearValues(ctx, rng); err != nil {
			return err
		}
	}

	users, err := s.userRepo.FindAll(s.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	appointments, err := s.appointmentRepo.FindAll(s.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}
	locations, err := s.locationRepo.FindAll(s.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to load locations: %w", err)
	}

	exports := []struct {
		rng    string
		values [][]interface{}
	}{
		{"Lihat Daftar Akun!A1", s.userExport(users)},
		{"Lihat Pendaftaran Donor!A1", s.appointmentExport(appointments)},
		{"Lihat Lokasi Donor!A1", s.locationExport(locations)},
	}
	for _, export := range exports {
		if err := s.client.UpdateValues(ctx, export.rng, export.values); err != nil {
			return err
		}
	}

	return nil
}

// readNewLocations stops at the first fully blank row.
func (s *SheetSyncService) readNewLocations(ctx context.Context) ([][]string, error) {
	rows, err := s.client.GetValues(ctx, RangeNewLocations)
	if err != nil {
		return nil, err
	}

	result := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlankRow(row) {
			break
		}
		result = append(result, row)
	}
	return result, nil
}

func (s *SheetSyncService) importLocations(ctx context.Context, rows [][]string) {
	for i, row := range rows {
		sheetRow := i + newLocationsFirstRow
		name, latRaw, lngRaw, mapLink := cell(row, 0), cell(row, 1), cell(row, 2), cell(row, 3)
		startRaw, endRaw := cell(row, 4), cell(row, 5)

		if name == "" || startRaw == "" || endRaw == "" {
			s.log.Warnf("Sheet row %d is incomplete, skipping location", sheetRow)
			continue
		}

		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if (latErr != nil || lngErr != nil) && mapLink != "" {
			var err error
			lat, lng, err = s.resolver.Coordinates(ctx, mapLink)
			if err != nil {
				s.log.Warnf("Failed to read coordinates for %q: %+v", name, err)
			} else {
				latErr, lngErr = nil, nil
			}
		}
		if latErr != nil || lngErr != nil {
			s.log.Warnf("Location %q has no valid coordinates, skipping", name)
			continue
		}

		start, err := ParseSheetTime(startRaw, s.tz)
		if err != nil {
			s.log.Warnf("Location %q has invalid start time %q, skipping", name, startRaw)
			continue
		}
		end, err := ParseSheetTime(endRaw, s.tz)
		if err != nil {
			s.log.Warnf("Location %q has invalid end time %q, skipping", name, endRaw)
			continue
		}

		location := &entity.Location{
			Name:      name,
			Latitude:  decimal.NewFromFloat(lat),
			Longitude: decimal.NewFromFloat(lng),
			StartTime: start,
			EndTime:   end,
		}
		if err := s.createLocation(ctx, location); err != nil {
			s.log.Warnf("Failed to save location %q: %+v", name, err)
			continue
		}

		// clear the row so the next run does not import it twice
		rowRange := fmt.Sprintf("Tambah Lokasi Donor!A%d:F%d", sheetRow, sheetRow)
		if err := s.client.ClearValues(ctx, rowRange); err != nil {
			s.log.Warnf("Failed to clear sheet row %d: %+v", sheetRow, err)
		}

		s.log.Infof("Imported location %q from sheet", name)
	}
}

func (s *SheetSyncService) createLocation(ctx context.Context, location *entity.Location) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := s.locationRepo.Create(tx, location); err != nil {
		return err
	}

	if err := s.auditService.Record(ctx, tx, AuditEntry{
		Actor:    SheetSyncActor,
		Action:   entity.AuditActionSheetLocationImport,
		Entity:   "location",
		EntityID: location.ID,
		NewValue: location,
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}

// importAppointmentStatuses applies rows whose first column was filled in.
func (s *SheetSyncService) importAppointmentStatuses(ctx context.Context) error {
	rows, err := s.client.GetValues(ctx, RangeAppointmentEdit)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}

		statusLabel := cell(row, 8)
		if statusLabel == "" {
			continue
		}

		appointmentID, err := strconv.ParseUint(cell(row, 2), 10, 64)
		if err != nil {
			s.log.Warnf("Invalid appointment id %q in sheet", cell(row, 2))
			continue
		}
		userID, err := strconv.ParseUint(cell(row, 3), 10, 64)
		if err != nil {
			s.log.Warnf("Invalid user id %q in sheet", cell(row, 3))
			continue
		}

		status, ok := sheetStatusToAppointment[statusLabel]
		if !ok {
			status = entity.AppointmentStatusMissed
		}

		if err := s.updateStatus(ctx, uint(appointmentID), uint(userID), status); err != nil {
			s.log.Warnf("Failed to update appointment %d from sheet: %+v", appointmentID, err)
			continue
		}
	}

	return nil
}

func (s *SheetSyncService) updateStatus(ctx context.Context, appointmentID, userID uint, status entity.AppointmentStatus) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := s.appointmentRepo.UpdateStatus(tx, appointmentID, userID, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment %d of user %d not found", appointmentID, userID)
	}

	if err := s.auditService.Record(ctx, tx, AuditEntry{
		UserID:   &userID,
		Actor:    SheetSyncActor,
		Action:   entity.AuditActionAppointmentStatus,
		Entity:   "appointment",
		EntityID: appointmentID,
		NewValue: map[string]interface{}{"status": status},
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (s *SheetSyncService) userExport(users []entity.User) [][]interface{} {
	values := [][]interface{}{{
		"ID", "Nama Lengkap", "URL Foto Profil", "Tempat Lahir", "Tanggal Lahir",
		"Jenis Kelamin", "Pekerjaan", "Berat Badan (Kg)", "Tinggi Badan (Cm)", "Tipe Darah",
		"Rhesus", "Alamat", "No. RT", "No. RW", "Desa/Kelurahan",
		"Kecamatan", "Kabupaten/Kota", "Provinsi", "Mendaftar Pada", "Terakhir Diperbarui",
	}}

	for _, u := range users {
		values = append(values, []interface{}{
			u.ID,
			u.Name,
			stringOrEmpty(u.ProfilePicture),
			u.BirthPlace,
			u.BirthDate.Format("2006-01-02"),
			genderLabel(u.Gender),
			u.Job,
			strconv.FormatFloat(u.WeightKg, 'f', -1, 64),
			strconv.FormatFloat(u.HeightCm, 'f', -1, 64),
			bloodTypeLabel(u.BloodType),
			rhesusLabel(u.Rhesus),
			u.Address,
			strconv.Itoa(u.NoRT),
			strconv.Itoa(u.NoRW),
			u.Village,
			u.District,
			u.City,
			u.Province,
			FormatJakartaISO(u.CreatedAt),
			FormatJakartaISO(u.UpdatedAt),
		})
	}
	return values
}

func (s *SheetSyncService) appointmentExport(appointments []entity.Appointment) [][]interface{} {
	values := [][]interface{}{{
		"Mode Edit", "No.", "ID Appointment", "ID User", "NIK",
		"Nama Lengkap Pendonor", "Tanggal Donor", "Lokasi Donor", "Status Donor",
	}}

	for i, a := range appointments {
		var nik, name, date, place string
		if a.User != nil {
			nik, name = a.User.NIK, a.User.Name
		}
		if a.Location != nil {
			date, place = s.formatDisplay(a.Location.EndTime), a.Location.Name
		}
		values = append(values, []interface{}{
			"", i + 1, a.ID, a.UserID, nik, name, date, place, StatusLabel(a.Status),
		})
	}
	return values
}

func (s *SheetSyncService) locationExport(locations []entity.Location) [][]interface{} {
	values := [][]interface{}{{
		"No.", "ID Lokasi", "Nama Lokasi", "Lattitude (Lintang)", "Longitude (Bujur)",
		"Waktu Mulai", "Waktu Selesai", "Tanggal Lokasi Ditambahkan",
	}}

	for i, l := range locations {
		values = append(values, []interface{}{
			i + 1,
			l.ID,
			l.Name,
			l.Latitude.StringFixed(6),
			l.Longitude.StringFixed(6),
			s.formatDisplay(l.StartTime),
			s.formatDisplay(l.EndTime),
			s.formatDisplay(l.CreatedAt),
		})
	}
	return values
}

func (s *SheetSyncService) formatDisplay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(s.tz).Format("2 Jan 2006, 15.04")
}

// StatusLabel renders a status the way the spreadsheet shows it
func StatusLabel(status entity.AppointmentStatus) string {
	switch status {
	case entity.AppointmentStatusScheduled:
		return "Terdaftar"
	case entity.AppointmentStatusAttended:
		return "Hadir"
	case entity.AppointmentStatusMissed:
		return "Tidak Hadir"
	default:
		return "ERROR: Status Tidak Dikenal"
	}
}

func genderLabel(g *entity.Gender) string {
	if g == nil {
		return ""
	}
	if *g == entity.GenderMale {
		return "Laki-laki"
	}
	return "Perempuan"
}

func rhesusLabel(r *entity.Rhesus) string {
	if r == nil {
		return ""
	}
	if *r == entity.RhesusPositive {
		return "Positif"
	}
	return "Negatif"
}

func bloodTypeLabel(b *entity.BloodType) string {
	if b == nil {
		return ""
	}
	return string(*b)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
