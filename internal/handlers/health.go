package handlers

import (
	"context"
	"net/http"
	"time"

	"genuka-bridge/internal/build"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler містить handlers для health check
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler створює новий HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health повертає статус здоров'я сервісу
// @Summary Health Check
// @Description Повертає статус здоров'я сервісу і бази даних
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status, state, database := http.StatusOK, "ok", "ok"

	if err := h.ping(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("Database health check failed")
		status, state, database = http.StatusServiceUnavailable, "degraded", "unavailable"
	}

	c.JSON(status, gin.H{
		"status":   state,
		"service":  "genuka-bridge",
		"version":  build.Version,
		"database": database,
	})
	logrus.Debug("Health check performed")
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
