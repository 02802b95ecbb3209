package services

import (
	"net/http"
	"strings"
	"time"

	"genuka-bridge/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	// SessionCookieName ім'я cookie з коротким сесійним токеном
	SessionCookieName = "session"
	// RefreshCookieName ім'я cookie з довгим refresh токеном
	RefreshCookieName = "refresh_session"

	// SessionTTL час життя сесійного токена
	SessionTTL = 7 * time.Hour
	// RefreshTTL час життя refresh токена
	RefreshTTL = 30 * 24 * time.Hour
)

// SessionManager інтерфейс для видачі та перевірки cookie-сесій
type SessionManager interface {
	Issue(w http.ResponseWriter, companyID string) (*models.SessionPair, error)
	VerifySession(token string) (string, bool)
	VerifyRefresh(token string) (string, bool)
	CompanyIDFromRequest(r *http.Request) (string, bool)
	RefreshCompanyIDFromRequest(r *http.Request) (string, bool)
	Destroy(w http.ResponseWriter)
}

// sessionManager реалізація SessionManager без серверного сховища
type sessionManager struct {
	tokens JWTService
	secure bool
}

// NewSessionManager створює новий Session Manager.
// secure вмикає атрибут Secure для cookie (все крім development).
func NewSessionManager(tokens JWTService, secure bool) SessionManager {
	return &sessionManager{
		tokens: tokens,
		secure: secure,
	}
}

// Issue підписує пару токенів і встановлює обидва cookie
func (sm *sessionManager) Issue(w http.ResponseWriter, companyID string) (*models.SessionPair, error) {
	sessionToken, sessionExpiresAt, err := sm.tokens.Sign(companyID, TokenKindSession, SessionTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := sm.tokens.Sign(companyID, TokenKindRefresh, RefreshTTL)
	if err != nil {
		return nil, err
	}

	sm.writeCookie(w, SessionCookieName, sessionToken, SessionTTL, sessionExpiresAt)
	sm.writeCookie(w, RefreshCookieName, refreshToken, RefreshTTL, refreshExpiresAt)

	logrus.WithFields(logrus.Fields{
		"company_id":         companyID,
		"session_expires_at": sessionExpiresAt,
		"refresh_expires_at": refreshExpiresAt,
	}).Info("Session created")

	return &models.SessionPair{
		SessionToken:     sessionToken,
		RefreshToken:     refreshToken,
		SessionExpiresAt: sessionExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// VerifySession повертає ID компанії з дійсного сесійного токена
func (sm *sessionManager) VerifySession(token string) (string, bool) {
	return sm.verify(token, TokenKindSession)
}

// VerifyRefresh повертає ID компанії з дійсного refresh токена
func (sm *sessionManager) VerifyRefresh(token string) (string, bool) {
	return sm.verify(token, TokenKindRefresh)
}

// CompanyIDFromRequest читає та перевіряє сесійний cookie
func (sm *sessionManager) CompanyIDFromRequest(r *http.Request) (string, bool) {
	token, ok := readCookie(r, SessionCookieName)
	if !ok {
		return "", false
	}
	return sm.VerifySession(token)
}

// RefreshCompanyIDFromRequest читає та перевіряє refresh cookie
func (sm *sessionManager) RefreshCompanyIDFromRequest(r *http.Request) (string, bool) {
	token, ok := readCookie(r, RefreshCookieName)
	if !ok {
		return "", false
	}
	return sm.VerifyRefresh(token)
}

// Destroy видаляє обидва cookie
func (sm *sessionManager) Destroy(w http.ResponseWriter) {
	for _, name := range []string{SessionCookieName, RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   sm.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	logrus.Info("Session destroyed")
}

func (sm *sessionManager) verify(token string, kind TokenKind) (string, bool) {
	if token == "" {
		return "", false
	}
	claims, err := sm.tokens.Verify(token, kind)
	if err != nil {
		return "", false
	}
	return claims.CompanyID, true
}

func (sm *sessionManager) writeCookie(w http.ResponseWriter, name, value string, ttl time.Duration, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}
