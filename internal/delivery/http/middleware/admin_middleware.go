package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	AdminSecretHeader  = "X-Admin-Secret"
	BootstrapKeyHeader = "X-Bootstrap-Key"
)

const forbiddenAdminMessage = "Forbidden: You do not have access to this endpoint"

type AdminMiddleware struct {
	adminUsecase usecase.AdminUsecase
	bootstrapKey string
	log          *logrus.Logger
}

func NewAdminMiddleware(adminUsecase usecase.AdminUsecase, bootstrapKey string, log *logrus.Logger) *AdminMiddleware {
	return &AdminMiddleware{
		adminUsecase: adminUsecase,
		bootstrapKey: bootstrapKey,
		log:          log,
	}
}

// Authenticate resolves the admin from the X-Admin-Secret header
func (m *AdminMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := m.adminUsecase.Authenticate(r.Context(), r.Header.Get(AdminSecretHeader))
		if err != nil {
			if err != usecase.ErrAdminNotFound {
				m.log.Warnf("Failed to authenticate admin: %+v", err)
				response.InternalServerError(w, "")
				return
			}
			response.Forbidden(w, forbiddenAdminMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), admin.ID)))
	})
}

// RequireBootstrapKey guards admin creation. An empty bootstrap key rejects every request.
func (m *AdminMiddleware) RequireBootstrapKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(BootstrapKeyHeader)
		if m.bootstrapKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(m.bootstrapKey)) != 1 {
			response.Forbidden(w, forbiddenAdminMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithAdminID(ctx context.Context, adminID uint) context.Context {
	return context.WithValue(ctx, AdminIDKey, adminID)
}

func GetAdminIDFromContext(ctx context.Context) (uint, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(uint)
	return adminID, ok
}
