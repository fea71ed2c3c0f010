package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"blood-donation-api/pkg/jwt"
	"blood-donation-api/pkg/response"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	AdminIDKey contextKey = "admin_id"
)

// RefreshCookieName is the cookie holding the refresh token
const RefreshCookieName = "refreshToken"

var silentRefreshes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blood_donation_auth_silent_refresh_total",
		Help: "Expired access tokens renewed from the refresh cookie, by outcome",
	},
	[]string{"outcome"},
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		log:        log,
	}
}

// Authenticate admits requests with a valid access token. An expired access
// token is renewed once from the refresh cookie and the new token is returned
// in the Authorization response header.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w, "Unauthorized: No token provided")
			return
		}

		claims, err := m.jwtService.VerifyAccessToken(tokenString)
		if err == nil {
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
			return
		}
		if !errors.Is(err, jwt.ErrExpiredToken) {
			response.Forbidden(w, "Forbidden: Invalid token")
			return
		}

		m.refresh(w, r, next)
	})
}

func (m *AuthMiddleware) refresh(w http.ResponseWriter, r *http.Request, next http.Handler) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		silentRefreshes.WithLabelValues("missing").Inc()
		response.Unauthorized(w, "Refresh token required")
		return
	}

	claims, err := m.jwtService.VerifyRefreshToken(cookie.Value)
	if err != nil {
		silentRefreshes.WithLabelValues("rejected").Inc()
		response.Forbidden(w, "Forbidden: Invalid refresh token")
		return
	}

	accessToken, err := m.jwtService.IssueAccessToken(claims.UserID)
	if err != nil {
		m.log.Warnf("Failed to issue access token: %+v", err)
		response.InternalServerError(w, "")
		return
	}

	silentRefreshes.WithLabelValues("renewed").Inc()
	w.Header().Set("Authorization", "Bearer "+accessToken)
	w.Header().Set("Access-Control-Expose-Headers", "Authorization")

	next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}
