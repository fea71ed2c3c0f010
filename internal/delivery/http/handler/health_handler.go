package handler

import (
	"context"
	"net/http"
	"time"

	"blood-donation-api/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const pingTimeout = 3 * time.Second

type HealthHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewHealthHandler(db *gorm.DB, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Ready answers as soon as the server accepts requests
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	response.Status(w, http.StatusOK, "ready")
}

// HealthCheck pings the database
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.WithError(err).Error("database health check failed")
		response.InternalServerError(w, "Database unavailable")
		return
	}

	response.Status(w, http.StatusOK, "healthy")
}
