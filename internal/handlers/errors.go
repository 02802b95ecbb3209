package handlers

import (
	"genuka-bridge/internal/middleware"
	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError відповідає JSON помилкою з HTTP кодом з rich error
func respondError(c *gin.Context, err error) {
	richErr := services.AsServiceError(err)

	log := middleware.Logger(c).WithFields(map[string]interface{}{
		"status": richErr.Code,
		"code":   richErr.TextCode,
		"path":   c.Request.URL.Path,
	})
	if richErr.Code >= 500 {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}

	response := models.ErrorResponse{
		Error: richErr.Message,
		Code:  richErr.TextCode,
	}
	if richErr.TextCode == services.ErrorCodeMissingParameters {
		response.Required = services.RequiredCallbackParams
	}

	c.AbortWithStatusJSON(richErr.Code, response)
}
