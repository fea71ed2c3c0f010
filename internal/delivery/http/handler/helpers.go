package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"blood-donation-api/internal/delivery/http/middleware"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// multipart overhead allowed on top of the file itself
const multipartSlack = 1 << 20

// respondError is the fallback for errors a handler does not map itself
func respondError(w http.ResponseWriter, log *logrus.Logger, err error, message string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w, "")
		return
	}
	log.WithError(err).Error(message)
	response.InternalServerError(w, message)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func currentUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized: No token provided")
	}
	return userID, ok
}

func currentAdminID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Forbidden: You do not have access to this endpoint")
	}
	return adminID, ok
}

// formFile reads the named multipart file; the caller closes it
func formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadSize+multipartSlack)

	file, _, err := r.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, usecase.ErrFileTooLarge.Error(), nil)
			return nil, false
		}
		response.Error(w, http.StatusBadRequest, field+" file is required", nil)
		return nil, false
	}
	return file, true
}

// uploadError maps the upload failures shared by every picture endpoint
func uploadError(w http.ResponseWriter, err error) bool {
	switch err {
	case usecase.ErrFileTooLarge:
		response.Error(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
	case usecase.ErrUnsupportedFileType, usecase.ErrEmptyFile:
		response.BadRequest(w, err.Error())
	default:
		return false
	}
	return true
}

// userInputError maps bad profile values shared by signup and profile updates
func userInputError(w http.ResponseWriter, err error) bool {
	switch err {
	case usecase.ErrNIKAlreadyExists:
		response.Conflict(w, "NIK already registered")
	case usecase.ErrInvalidDateFormat, usecase.ErrPasswordNotAllowed,
		entity.ErrInvalidGender, entity.ErrInvalidBloodType, entity.ErrInvalidRhesus:
		response.BadRequest(w, err.Error())
	default:
		return false
	}
	return true
}
