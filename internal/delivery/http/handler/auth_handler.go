package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/delivery/http/middleware"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/jwt"
	"blood-donation-api/pkg/response"
	"blood-donation-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	validator    *validator.CustomValidator
	jwtService   *jwt.JWTService
	log          *logrus.Logger
	cookieSecure bool
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validator.CustomValidator,
	jwtService *jwt.JWTService,
	log *logrus.Logger,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		validator:    validator,
		jwtService:   jwtService,
		log:          log,
		cookieSecure: cookieSecure,
	}
}

// Signup handles donor registration
// @Summary Register a new donor
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.authUsecase.Signup(r.Context(), &req)
	if err != nil {
		if !userInputError(w, err) {
			respondError(w, h.log, err, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", res)
}

// Login handles donor login
// @Summary Login with NIK and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid password")
		default:
			respondError(w, h.log, err, "Failed to login")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)
	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// RefreshToken renews the access token from the refresh cookie and rotates the cookie
// @Summary Refresh access token
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/token/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w, "Refresh token required")
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Forbidden(w, "Forbidden: Invalid refresh token")
		default:
			respondError(w, h.log, err, "Failed to refresh token")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)
	response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
}

// Logout clears the refresh cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtService.GetRefreshExpiry().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
