package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/response"
	"blood-donation-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AdminUserHandler struct {
	adminUserUsecase usecase.AdminUserUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewAdminUserHandler(adminUserUsecase usecase.AdminUserUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		adminUserUsecase: adminUserUsecase,
		validator:        validator,
		log:              log,
	}
}

func (h *AdminUserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUserUsecase.CreateUser(r.Context(), adminID, &req)
	if err != nil {
		if !userInputError(w, err) {
			respondError(w, h.log, err, "Failed to create user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *AdminUserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUserUsecase.GetAllUsers(r.Context())
	if err != nil {
		respondError(w, h.log, err, "Failed to get users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users.Users, &response.Meta{Total: users.Total})
}

func (h *AdminUserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.adminUserUsecase.GetUser(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			respondError(w, h.log, err, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *AdminUserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUserUsecase.UpdateUser(r.Context(), adminID, id, &req)
	if err != nil {
		if userInputError(w, err) {
			return
		}
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			respondError(w, h.log, err, "Failed to update user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *AdminUserHandler) UpdateUserPicture(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	file, ok := formFile(w, r, profilePictureField)
	if !ok {
		return
	}
	defer file.Close()

	user, err := h.adminUserUsecase.UpdateUserPicture(r.Context(), adminID, id, file)
	if err != nil {
		if uploadError(w, err) {
			return
		}
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			respondError(w, h.log, err, "Failed to update profile picture")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile picture updated successfully", user)
}
