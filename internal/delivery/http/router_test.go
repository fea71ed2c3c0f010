package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blood-donation-api/config"
	"blood-donation-api/internal/delivery/http/handler"
	"blood-donation-api/internal/delivery/http/middleware"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/infrastructure/storage"
	"blood-donation-api/internal/repository"
	"blood-donation-api/internal/service"
	"blood-donation-api/internal/testutil"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/jwt"
	"blood-donation-api/pkg/response"
	"blood-donation-api/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bootstrapKey = "bootstrap-key"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Meta    *response.Meta  `json:"meta"`
}

type request struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
	cookies []*http.Cookie
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	uploadDir := t.TempDir()
	fileStorage := storage.NewLocalStorage(uploadDir, "/public/uploads")
	jwtService := jwt.NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	v := validator.NewValidator()

	userRepo := repository.NewUserRepository()
	locationRepo := repository.NewLocationRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditLogRepo)

	adminUsecase := usecase.NewAdminUsecase(db, log, repository.NewAdminRepository(), auditService)

	handlers := Handlers{
		Health:   handler.NewHealthHandler(db, log),
		Auth:     handler.NewAuthHandler(usecase.NewAuthUsecase(db, log, userRepo, jwtService, auditService), v, jwtService, log, true),
		Profile:  handler.NewProfileHandler(usecase.NewProfileUsecase(db, log, userRepo, auditService, fileStorage), v, log),
		Location: handler.NewLocationHandler(usecase.NewLocationUsecase(db, log, locationRepo, auditService), v, log),
		Appointment: handler.NewAppointmentHandler(usecase.NewAppointmentUsecase(db, log,
			repository.NewAppointmentRepository(), repository.NewQuestionnaireRepository(), locationRepo, auditService), v, log),
		Chat: handler.NewChatHandler(usecase.NewChatUsecase(db, log, nil, userRepo,
			repository.NewConversationRepository(), repository.NewMessageRepository()), v, log),
		Admin: handler.NewAdminHandler(adminUsecase,
			usecase.NewBloodStorageUsecase(db, log, repository.NewBloodStorageRepository(), auditService), v, log),
		AdminUser: handler.NewAdminUserHandler(usecase.NewAdminUserUsecase(db, log, userRepo, auditService, fileStorage), v, log),
		AuditLog:  handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(db, log, auditLogRepo), log),
	}

	rateLimit, err := middleware.NewRateLimiter("", nil, log)
	require.NoError(t, err)

	middlewares := Middlewares{
		Auth:      middleware.NewAuthMiddleware(jwtService, log),
		Admin:     middleware.NewAdminMiddleware(adminUsecase, bootstrapKey, log),
		CORS:      middleware.NewCORSMiddleware(),
		Logging:   middleware.NewLoggingMiddleware(log),
		Secure:    middleware.NewSecure(true),
		RateLimit: rateLimit,
	}

	return NewRouter(handlers, middlewares, uploadDir).Setup()
}

func do(t *testing.T, h http.Handler, req request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	r := httptest.NewRequest(req.method, req.path, body)
	if req.body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}
	for _, c := range req.cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.RefreshCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", middleware.RefreshCookieName)
	return nil
}

func signupAndLogin(t *testing.T, h http.Handler, nik string) (string, *http.Cookie) {
	t.Helper()

	w, _ := do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/signup", body: map[string]interface{}{
		"nik":       nik,
		"name":      "Rina Wulandari",
		"password":  "rahasia123",
		"birthDate": "1997-02-11",
		"gender":    "female",
		"bloodType": "A",
		"rhesus":    "positive",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"nik":      nik,
		"password": "rahasia123",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken, refreshCookie(t, w)
}

func createAdmin(t *testing.T, h http.Handler) string {
	t.Helper()

	w, env := do(t, h, request{
		method:  http.MethodPost,
		path:    "/api/v1/admin/create-admin",
		body:    map[string]string{"name": "Petugas"},
		headers: map[string]string{middleware.BootstrapKeyHeader: bootstrapKey},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var admin struct {
		SecretKey string `json:"secretKey"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &admin))
	require.NotEmpty(t, admin.SecretKey)
	return admin.SecretKey
}

func createLocation(t *testing.T, h http.Handler, secret string) uint {
	t.Helper()

	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	w, env := do(t, h, request{
		method: http.MethodPost,
		path:   "/api/v1/admin/locations",
		body: map[string]interface{}{
			"name":      "Balai Kota",
			"latitude":  -6.914744,
			"longitude": 107.609810,
			"startTime": start,
			"endTime":   start.Add(4 * time.Hour),
		},
		headers: map[string]string{middleware.AdminSecretHeader: secret},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var location struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &location))
	return location.ID
}

func TestHealthRoutes(t *testing.T) {
	h := newTestRouter(t)

	w, env := do(t, h, request{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", env.Status)

	w, env = do(t, h, request{method: http.MethodGet, path: "/health-check"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", env.Status)

	w, _ = do(t, h, request{method: http.MethodGet, path: "/metrics"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupLoginAndProfile(t *testing.T) {
	h := newTestRouter(t)
	token, cookie := signupAndLogin(t, h, "3273000000000001")

	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 86400, cookie.MaxAge)

	w, env := do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/signup", body: map[string]interface{}{
		"nik": "3273000000000001", "name": "Again", "password": "rahasia123", "birthDate": "1990-01-01",
	}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	w, env = do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"nik": "3273000000000001", "password": "wrong-password",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"nik": "3273999999999999", "password": "rahasia123",
	}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, h, request{method: http.MethodGet, path: "/api/v1/profile"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized: No token provided", env.Error)

	w, env = do(t, h, request{method: http.MethodGet, path: "/api/v1/profile", headers: bearer(token)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), `"gender":"FEMALE"`)

	w, env = do(t, h, request{method: http.MethodPatch, path: "/api/v1/profile", headers: bearer(token), body: map[string]string{
		"password": "sneaky-change",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, usecase.ErrPasswordNotAllowed.Error(), env.Error)

	w, _ = do(t, h, request{method: http.MethodPatch, path: "/api/v1/profile/edit-password", headers: bearer(token), body: map[string]string{
		"oldPassword": "not-it", "newPassword": "rahasia456", "confirmNewPassword": "rahasia456",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpointRotatesCookie(t *testing.T) {
	h := newTestRouter(t)
	_, cookie := signupAndLogin(t, h, "3273000000000002")

	w, env := do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/token/refresh"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Refresh token required", env.Error)

	w, env = do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/token/refresh",
		cookies: []*http.Cookie{{Name: middleware.RefreshCookieName, Value: "forged"}}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Invalid refresh token", env.Error)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/token/refresh", cookies: []*http.Cookie{cookie}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, cookie.Value, refreshCookie(t, w).Value)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/auth/logout"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, refreshCookie(t, w).MaxAge)
}

func TestAdminGate(t *testing.T) {
	h := newTestRouter(t)

	w, env := do(t, h, request{method: http.MethodPost, path: "/api/v1/admin/create-admin", body: map[string]string{"name": "Petugas"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: You do not have access to this endpoint", env.Error)

	w, _ = do(t, h, request{method: http.MethodGet, path: "/api/v1/admin/users",
		headers: map[string]string{middleware.AdminSecretHeader: "guess"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	secret := createAdmin(t, h)
	w, env = do(t, h, request{method: http.MethodPost, path: "/api/v1/admin/blood-storage",
		headers: map[string]string{middleware.AdminSecretHeader: secret},
		body:    map[string]interface{}{"type": "O", "rhesus": "NEGATIVE", "quantity": 0}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"quantity":0`)

	w, env = do(t, h, request{method: http.MethodGet, path: "/api/v1/admin/audit-logs",
		headers: map[string]string{middleware.AdminSecretHeader: secret}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)
}

func TestLocationsAndAppointments(t *testing.T) {
	h := newTestRouter(t)
	secret := createAdmin(t, h)
	token, _ := signupAndLogin(t, h, "3273000000000003")
	locationID := createLocation(t, h, secret)

	w, env := do(t, h, request{method: http.MethodGet, path: "/api/v1/locations", headers: bearer(token)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Meta.Total)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/locations", headers: bearer(token), body: map[string]string{}})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w, env = do(t, h, request{method: http.MethodPost, path: "/api/v1/appointments", headers: bearer(token), body: map[string]interface{}{
		"locationId": locationID,
		"questionnaireSections": []map[string]interface{}{
			{"items": []map[string]interface{}{
				{"itemNumber": 1, "question": "Sehat hari ini?", "answer": "Ya"},
				{"itemNumber": 2, "question": "Minum obat?", "answer": "Tidak"},
			}},
		},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appointment struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &appointment))
	assert.Equal(t, "SCHEDULED", appointment.Status)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/appointments", headers: bearer(token),
		body: map[string]interface{}{"locationId": locationID, "status": "CANCELLED"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, request{method: http.MethodPost, path: "/api/v1/appointments", headers: bearer(token),
		body: map[string]interface{}{"locationId": 999}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	path := fmt.Sprintf("/api/v1/appointments/%d", appointment.ID)
	w, env = do(t, h, request{method: http.MethodPatch, path: path, headers: bearer(token), body: map[string]string{"status": "attended"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.ErrInvalidAppointmentStatus.Error(), env.Error)

	w, env = do(t, h, request{method: http.MethodGet, path: path, headers: bearer(token)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"SCHEDULED"`)

	w, env = do(t, h, request{method: http.MethodPatch, path: path, headers: bearer(token), body: map[string]string{"status": "ATTENDED"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"status":"ATTENDED"`)

	w, env = do(t, h, request{method: http.MethodGet, path: "/api/v1/admin/appointments",
		headers: map[string]string{middleware.AdminSecretHeader: secret}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Meta.Total)

	locationPath := fmt.Sprintf("/api/v1/admin/locations/%d", locationID)
	w, _ = do(t, h, request{method: http.MethodDelete, path: locationPath,
		headers: map[string]string{middleware.AdminSecretHeader: secret}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, h, request{method: http.MethodGet, path: fmt.Sprintf("/api/v1/locations/%d", locationID), headers: bearer(token)})
	assert.Equal(t, http.StatusGone, w.Code)

	w, _ = do(t, h, request{method: http.MethodGet, path: path, headers: bearer(token)})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilePictureUploadIsServed(t *testing.T) {
	h := newTestRouter(t)
	token, _ := signupAndLogin(t, h, "3273000000000004")

	upload := func(content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("profilePicture", "me.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPatch, "/api/v1/profile/update-profile-picture", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := upload([]byte("plain text is not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var profile struct {
		ProfilePicture string `json:"profilePicture"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.True(t, strings.HasPrefix(profile.ProfilePicture, "/public/uploads/profile-pictures/"))

	r := httptest.NewRequest(http.MethodGet, profile.ProfilePicture, nil)
	served := httptest.NewRecorder()
	h.ServeHTTP(served, r)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, pngHeader, served.Body.Bytes())
}

func TestChatUnavailableWithoutModel(t *testing.T) {
	h := newTestRouter(t)
	token, _ := signupAndLogin(t, h, "3273000000000005")

	w, _ := do(t, h, request{method: http.MethodPost, path: "/api/v1/ai/chat", headers: bearer(token), body: map[string]string{"message": "Halo"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPreflight(t *testing.T) {
	h := newTestRouter(t)

	w, _ := do(t, h, request{method: http.MethodOptions, path: "/api/v1/appointments"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), middleware.AdminSecretHeader)
}
