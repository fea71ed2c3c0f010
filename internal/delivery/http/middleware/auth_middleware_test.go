package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blood-donation-api/config"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/jwt"
	"blood-donation-api/pkg/response"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestAuth() (*AuthMiddleware, *jwt.JWTService, *clock) {
	c := &clock{t: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	svc := jwt.NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	}, jwt.WithClock(c.now))
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewAuthMiddleware(svc, log), svc, c
}

type recorder struct {
	called bool
	userID uint
}

func (rec *recorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.called = true
		rec.userID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, authHeader string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	m, _, _ := newTestAuth()

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer "} {
		rec := &recorder{}
		w := serve(m.Authenticate(rec.handler()), header, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, "Unauthorized: No token provided", errorMessage(t, w))
		assert.False(t, rec.called)
	}
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	m, svc, _ := newTestAuth()

	refresh, err := svc.IssueRefreshToken(5)
	require.NoError(t, err)

	for _, token := range []string{"not-a-jwt", refresh} {
		rec := &recorder{}
		w := serve(m.Authenticate(rec.handler()), "Bearer "+token, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Forbidden: Invalid token", errorMessage(t, w))
		assert.False(t, rec.called)
	}
}

func TestAuthenticateAttachesUserID(t *testing.T) {
	m, svc, _ := newTestAuth()

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	rec := &recorder{}
	w := serve(m.Authenticate(rec.handler()), "Bearer "+token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rec.called)
	assert.Equal(t, uint(42), rec.userID)
	assert.Empty(t, w.Header().Get("Authorization"))
}

func TestAuthenticateExpiredWithoutRefreshCookie(t *testing.T) {
	m, svc, c := newTestAuth()

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	c.t = c.t.Add(2 * time.Hour)

	rec := &recorder{}
	w := serve(m.Authenticate(rec.handler()), "Bearer "+token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Refresh token required", errorMessage(t, w))
	assert.False(t, rec.called)
}

func TestAuthenticateExpiredWithBadRefreshCookie(t *testing.T) {
	m, svc, c := newTestAuth()

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)
	otherAccess, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	c.t = c.t.Add(2 * time.Hour)
	cases := map[string]string{
		"garbage":      "garbage",
		"access token": otherAccess,
	}
	for name, value := range cases {
		rec := &recorder{}
		w := serve(m.Authenticate(rec.handler()), "Bearer "+token, &http.Cookie{Name: RefreshCookieName, Value: value})

		assert.Equal(t, http.StatusForbidden, w.Code, name)
		assert.Equal(t, "Forbidden: Invalid refresh token", errorMessage(t, w))
		assert.False(t, rec.called)
	}

	c.t = c.t.Add(24 * time.Hour)
	rec := &recorder{}
	w := serve(m.Authenticate(rec.handler()), "Bearer "+token, &http.Cookie{Name: RefreshCookieName, Value: refresh})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, rec.called)
}

func TestAuthenticateRenewsExpiredToken(t *testing.T) {
	m, svc, c := newTestAuth()

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)
	c.t = c.t.Add(2 * time.Hour)

	rec := &recorder{}
	w := serve(m.Authenticate(rec.handler()), "Bearer "+token, &http.Cookie{Name: RefreshCookieName, Value: refresh})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rec.called)
	assert.Equal(t, uint(42), rec.userID)
	assert.Equal(t, "Authorization", w.Header().Get("Access-Control-Expose-Headers"))

	renewed, ok := bearerToken(w.Header().Get("Authorization"))
	require.True(t, ok)
	claims, err := svc.VerifyAccessToken(renewed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

type fakeAdminUsecase struct {
	usecase.AdminUsecase
	admins map[string]uint
	err    error
}

func (f *fakeAdminUsecase) Authenticate(ctx context.Context, secretKey string) (*entity.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.admins[secretKey]
	if !ok {
		return nil, usecase.ErrAdminNotFound
	}
	return &entity.Admin{ID: id}, nil
}

func TestAdminAuthenticate(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	m := NewAdminMiddleware(&fakeAdminUsecase{admins: map[string]uint{"s3cret": 9}}, "", log)

	var adminID uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, _ = GetAdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set(AdminSecretHeader, "s3cret")
	w := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), adminID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set(AdminSecretHeader, "wrong")
	w = httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, forbiddenAdminMessage, errorMessage(t, w))
}

func TestRequireBootstrapKey(t *testing.T) {
	log := logrus.New()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	disabled := NewAdminMiddleware(&fakeAdminUsecase{}, "", log)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-admin", nil)
	w := httptest.NewRecorder()
	disabled.RequireBootstrapKey(next).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	enabled := NewAdminMiddleware(&fakeAdminUsecase{}, "boot", log)
	for key, want := range map[string]int{"boot": http.StatusCreated, "nope": http.StatusForbidden, "": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-admin", nil)
		req.Header.Set(BootstrapKeyHeader, key)
		w := httptest.NewRecorder()
		enabled.RequireBootstrapKey(next).ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, key)
	}
}
