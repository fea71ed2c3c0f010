package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/repository"
	"blood-donation-api/internal/service"
	"blood-donation-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	log   *logrus.Logger
	audit service.AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := testutil.NewLogger()
	return &testEnv{
		db:    testutil.NewDB(t),
		log:   log,
		audit: service.NewAuditService(log, repository.NewAuditLogRepository()),
	}
}

func (e *testEnv) seedUser(t *testing.T, nik, password string) *entity.User {
	t.Helper()
	hashed, err := hashPassword(password)
	require.NoError(t, err)
	user := &entity.User{
		NIK:       nik,
		Name:      "Donor " + nik[len(nik)-4:],
		Password:  hashed,
		BirthDate: time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedLocation(t *testing.T, name string) *entity.Location {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	location := &entity.Location{
		Name:      name,
		Latitude:  decimal.RequireFromString("-6.175392"),
		Longitude: decimal.RequireFromString("106.827153"),
		StartTime: start,
		EndTime:   start.Add(5 * time.Hour),
	}
	require.NoError(t, e.db.Create(location).Error)
	return location
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

type memoryStorage struct {
	keys []string
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: map[string][]byte{}}
}

func (s *memoryStorage) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	s.data[key] = b
	return "/public/uploads/" + key, nil
}

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
