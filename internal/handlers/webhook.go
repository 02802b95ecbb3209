package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"genuka-bridge/internal/middleware"
	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

// WebhookHandler приймає події від Genuka
type WebhookHandler struct {
	router services.WebhookRouter
}

// NewWebhookHandler створює новий WebhookHandler
func NewWebhookHandler(router services.WebhookRouter) *WebhookHandler {
	return &WebhookHandler{router: router}
}

// Receive приймає webhook подію і передає її роутеру
// @Summary Genuka Webhook
// @Description Приймає подію Genuka і виконує відповідний обробник
// @Tags webhook
// @Accept json
// @Produce json
// @Param event body models.WebhookEvent true "Webhook event"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	log := middleware.Logger(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		log.WithError(err).Error("Failed to read webhook body")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to process webhook"})
		return
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.WithError(err).Warn("Invalid webhook payload")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON"})
		return
	}

	log.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"company_id": event.CompanyID,
	}).Info("📨 Webhook received")

	if err := h.router.Dispatch(c.Request.Context(), &event); err != nil {
		log.WithError(err).WithField("event_type", event.Type).Error("Webhook handler failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
