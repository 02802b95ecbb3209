package models

import "time"

// ProviderTokens представляє токени, отримані від Genuka
type ProviderTokens struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	TokenType        string `json:"token_type,omitempty"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

// ExpiresAt обчислює момент завершення дії access token відносно now
func (t *ProviderTokens) ExpiresAt(now time.Time) time.Time {
	return now.Add(time.Duration(t.ExpiresInMinutes) * time.Minute)
}

// CallbackRequest представляє параметри callback запиту від Genuka
type CallbackRequest struct {
	Code       string `form:"code" json:"code"`
	CompanyID  string `form:"company_id" json:"company_id"`
	Timestamp  string `form:"timestamp" json:"timestamp"`
	HMAC       string `form:"hmac" json:"hmac"`
	RedirectTo string `form:"redirect_to" json:"redirect_to"`
}

// SessionPair представляє пару підписаних сесійних токенів
type SessionPair struct {
	SessionToken     string    `json:"-"`
	RefreshToken     string    `json:"-"`
	SessionExpiresAt time.Time `json:"session_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AuthCheckResponse представляє відповідь на перевірку автентифікації
type AuthCheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// SuccessResponse представляє успішну відповідь з повідомленням
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse представляє відповідь з помилкою
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code,omitempty"`
	Required []string `json:"required,omitempty"`
}

// HomeResponse представляє відповідь домашньої сторінки
type HomeResponse struct {
	Message       string          `json:"message"`
	Authenticated bool            `json:"authenticated"`
	Company       *CompanySummary `json:"company,omitempty"`
	Hint          string          `json:"hint,omitempty"`
}
