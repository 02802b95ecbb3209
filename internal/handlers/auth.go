package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"genuka-bridge/internal/middleware"
	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler містить handlers для Genuka OAuth та сесій
type AuthHandler struct {
	oauthService    services.OAuthService
	sessions        services.SessionManager
	companyService  services.CompanyService
	defaultRedirect string
}

// NewAuthHandler створює новий AuthHandler
func NewAuthHandler(oauthService services.OAuthService, sessions services.SessionManager, companyService services.CompanyService, defaultRedirect string) *AuthHandler {
	if defaultRedirect == "" {
		defaultRedirect = "/"
	}
	return &AuthHandler{
		oauthService:    oauthService,
		sessions:        sessions,
		companyService:  companyService,
		defaultRedirect: defaultRedirect,
	}
}

// Callback обробляє OAuth callback від Genuka
// @Summary Genuka OAuth Callback
// @Description Перевіряє HMAC підпис і timestamp, обмінює code на токени, зберігає компанію і видає сесійні cookie
// @Tags auth
// @Produce json
// @Param code query string true "Authorization Code"
// @Param company_id query string true "Company ID"
// @Param timestamp query string true "Unix timestamp"
// @Param hmac query string true "HMAC-SHA256 підпис"
// @Param redirect_to query string false "Куди перенаправити після входу"
// @Success 302
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	log := middleware.Logger(c)
	log.Info("🔄 Genuka OAuth callback")

	redirectTo, ok := c.GetQuery("redirect_to")
	if !ok {
		redirectTo = h.defaultRedirect
	}

	req := &models.CallbackRequest{
		Code:       c.Query("code"),
		CompanyID:  c.Query("company_id"),
		Timestamp:  c.Query("timestamp"),
		HMAC:       c.Query("hmac"),
		RedirectTo: redirectTo,
	}

	company, err := h.oauthService.HandleCallback(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.sessions.Issue(c.Writer, company.ID); err != nil {
		respondError(c, services.NewInternalError(err, "Internal server error"))
		return
	}
	services.MarkSessionIssued(company.ID)

	location := redirectLocation(redirectTo)
	log.WithFields(map[string]interface{}{
		"company_id": company.ID,
		"redirect":   location,
	}).Info("✅ Company authenticated, redirecting")

	c.Redirect(http.StatusFound, location)
}

// Check перевіряє чи є дійсна сесія
// @Summary Session Check
// @Description Повертає чи має браузер дійсний сесійний cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.AuthCheckResponse
// @Router /api/auth/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	_, ok := h.sessions.CompanyIDFromRequest(c.Request)
	c.JSON(http.StatusOK, models.AuthCheckResponse{Authenticated: ok})
}

// Refresh оновлює сесію за refresh cookie
// @Summary Session Refresh
// @Description Оновлює токени Genuka і перевидає обидва cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	log := middleware.Logger(c)

	companyID, ok := h.sessions.RefreshCompanyIDFromRequest(c.Request)
	if !ok {
		respondError(c, services.NewRefreshTokenInvalidError())
		return
	}

	company, err := h.oauthService.RefreshSession(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.sessions.Issue(c.Writer, company.ID); err != nil {
		respondError(c, services.NewInternalError(err, "Internal server error"))
		return
	}

	log.WithField("company_id", company.ID).Info("🔁 Session refreshed")
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Session refreshed successfully",
	})
}

// Me повертає поточну компанію
// @Summary Current Company
// @Description Повертає публічні поля автентифікованої компанії
// @Tags auth
// @Produce json
// @Success 200 {object} models.CompanyProfile
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	company, ok := middleware.GetCurrentCompany(c)
	if !ok {
		respondError(c, services.NewUnauthorizedError())
		return
	}

	c.JSON(http.StatusOK, company.Profile())
}

// Logout видаляє обидва сесійні cookie
// @Summary Logout
// @Description Очищує cookie session та refresh_session
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c.Writer)

	middleware.Logger(c).Info("👋 Company logged out")
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Home повертає стан автентифікації для кореневої сторінки
// @Summary Home
// @Description Показує компанію поточної сесії або підказку як встановити застосунок
// @Tags home
// @Produce json
// @Success 200 {object} models.HomeResponse
// @Router / [get]
func (h *AuthHandler) Home(c *gin.Context) {
	response := models.HomeResponse{Message: "Genuka auth bridge is running"}

	companyID, ok := h.sessions.CompanyIDFromRequest(c.Request)
	if ok {
		company, err := h.companyService.FindByID(c.Request.Context(), companyID)
		if err == nil {
			response.Authenticated = true
			response.Company = &models.CompanySummary{
				ID:     company.ID,
				Name:   company.Name,
				Handle: company.Handle,
			}
			c.JSON(http.StatusOK, response)
			return
		}
		middleware.Logger(c).WithError(err).WithField("company_id", companyID).Warn("Session company could not be loaded")
	}

	response.Hint = "Install the app from your Genuka dashboard to sign in"
	c.JSON(http.StatusOK, response)
}

// redirectLocation знімає зайвий шар percent-encoding з redirect_to.
// Некоректні escape-послідовності залишаються як є, решта декодується.
func redirectLocation(redirectTo string) string {
	if !strings.Contains(redirectTo, "%") {
		return redirectTo
	}

	var b strings.Builder
	b.Grow(len(redirectTo))
	for i := 0; i < len(redirectTo); i++ {
		if redirectTo[i] == '%' && i+2 < len(redirectTo) {
			if v, err := strconv.ParseUint(redirectTo[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
		}
		b.WriteByte(redirectTo[i])
	}
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}
