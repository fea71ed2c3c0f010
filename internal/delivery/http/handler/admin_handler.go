package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/response"
	"blood-donation-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	adminUsecase        usecase.AdminUsecase
	bloodStorageUsecase usecase.BloodStorageUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewAdminHandler(
	adminUsecase usecase.AdminUsecase,
	bloodStorageUsecase usecase.BloodStorageUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		bloodStorageUsecase: bloodStorageUsecase,
		validator:           validator,
		log:                 log,
	}
}

// CreateAdmin returns the new admin's secret key. It is shown only once.
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, err := h.adminUsecase.CreateAdmin(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "Failed to create admin")
		return
	}

	response.Success(w, http.StatusCreated, "Admin created successfully", admin)
}

func (h *AdminHandler) GetBloodStorage(w http.ResponseWriter, r *http.Request) {
	storages, err := h.bloodStorageUsecase.GetBloodStorage(r.Context())
	if err != nil {
		respondError(w, h.log, err, "Failed to get blood storage")
		return
	}

	response.Success(w, http.StatusOK, "Blood storage retrieved successfully", storages)
}

func (h *AdminHandler) SetBloodStorage(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	var req dto.SetBloodStorageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	storage, err := h.bloodStorageUsecase.SetBloodStorage(r.Context(), adminID, &req)
	if err != nil {
		switch err {
		case entity.ErrInvalidBloodType, entity.ErrInvalidRhesus:
			response.BadRequest(w, err.Error())
		default:
			respondError(w, h.log, err, "Failed to set blood storage")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood storage updated successfully", storage)
}
