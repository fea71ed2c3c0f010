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

// LocationHandler serves the read routes to donors and the write routes to admins
type LocationHandler struct {
	locationUsecase usecase.LocationUsecase
	validator       *validator.CustomValidator
	log             *logrus.Logger
}

func NewLocationHandler(locationUsecase usecase.LocationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *LocationHandler {
	return &LocationHandler{
		locationUsecase: locationUsecase,
		validator:       validator,
		log:             log,
	}
}

func (h *LocationHandler) GetAllLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationUsecase.GetAllLocations(r.Context())
	if err != nil {
		respondError(w, h.log, err, "Failed to get locations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Locations retrieved successfully", locations.Locations, &response.Meta{Total: locations.Total})
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location ID", nil)
		return
	}

	location, err := h.locationUsecase.GetLocation(r.Context(), id)
	if err != nil {
		h.locationError(w, err, "Failed to get location")
		return
	}

	response.Success(w, http.StatusOK, "Location retrieved successfully", location)
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	location, err := h.locationUsecase.CreateLocation(r.Context(), adminID, &req)
	if err != nil {
		h.locationError(w, err, "Failed to create location")
		return
	}

	response.Success(w, http.StatusCreated, "Location created successfully", location)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location ID", nil)
		return
	}

	var req dto.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	location, err := h.locationUsecase.UpdateLocation(r.Context(), adminID, id, &req)
	if err != nil {
		h.locationError(w, err, "Failed to update location")
		return
	}

	response.Success(w, http.StatusOK, "Location updated successfully", location)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdminID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location ID", nil)
		return
	}

	if err := h.locationUsecase.DeleteLocation(r.Context(), adminID, id); err != nil {
		h.locationError(w, err, "Failed to delete location")
		return
	}

	response.NoContent(w)
}

func (h *LocationHandler) locationError(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrLocationNotFound:
		response.NotFound(w, "Location not found")
	case usecase.ErrLocationDeleted:
		response.Gone(w, "Location has been deleted")
	case usecase.ErrInvalidTimeRange, usecase.ErrStartTimeInPast:
		response.BadRequest(w, err.Error())
	default:
		respondError(w, h.log, err, message)
	}
}
