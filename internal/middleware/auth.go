package middleware

import (
	"errors"
	"net/http"

	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	companyKey   = "company"
	companyIDKey = "company_id"
)

// SessionAuth створює middleware, яке вимагає дійсний сесійний cookie
// і завантажує компанію з бази даних
func SessionAuth(sessions services.SessionManager, companies services.CompanyService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		log := Logger(c)

		companyID, ok := sessions.CompanyIDFromRequest(c.Request)
		if !ok {
			log.Debug("Request without valid session")
			abortUnauthorized(c)
			return
		}

		company, err := companies.FindByID(c.Request.Context(), companyID)
		if err != nil {
			if errors.Is(err, services.ErrCompanyNotFound) {
				log.WithField("company_id", companyID).Warn("Session refers to unknown company")
			} else {
				log.WithError(err).Error("Failed to load company for session")
			}
			abortUnauthorized(c)
			return
		}

		c.Set(companyKey, company)
		c.Set(companyIDKey, companyID)

		log.WithFields(map[string]interface{}{
			"company_id": companyID,
			"path":       c.Request.URL.Path,
		}).Debug("Company authenticated successfully")

		c.Next()
	})
}

// GetCurrentCompany витягує поточну компанію з контексту
func GetCurrentCompany(c *gin.Context) (*models.Company, bool) {
	value, exists := c.Get(companyKey)
	if !exists {
		return nil, false
	}

	company, ok := value.(*models.Company)
	return company, ok
}

// GetCurrentCompanyID витягує ID поточної компанії з контексту
func GetCurrentCompanyID(c *gin.Context) (string, bool) {
	value, exists := c.Get(companyIDKey)
	if !exists {
		return "", false
	}

	companyID, ok := value.(string)
	return companyID, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: "Not authenticated",
		Code:  services.ErrorCodeUnauthorized,
	})
}
