package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"genuka-bridge/internal/middleware"
	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret          = "test-client-secret"
	testDefaultRedirect = "/dashboard"
)

// fakeGenuka емулює Genuka API: /oauth/token та /companies/{id}
type fakeGenuka struct {
	server       *httptest.Server
	tokenCalls   atomic.Int32
	tokenStatus  atomic.Int32
	refreshToken string
}

func newFakeGenuka(t *testing.T) *fakeGenuka {
	t.Helper()
	f := &fakeGenuka{refreshToken: "rt-2"}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		if status := int(f.tokenStatus.Load()); status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		_ = r.ParseForm()
		response := map[string]interface{}{
			"access_token":       "at-1",
			"refresh_token":      "rt-1",
			"token_type":         "Bearer",
			"expires_in_minutes": 60,
		}
		if r.PostForm.Get("grant_type") == "refresh_token" {
			response["access_token"] = "at-2"
			response["refresh_token"] = f.refreshToken
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
	mux.HandleFunc("/companies/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/companies/")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          id,
			"handle":      "acme",
			"name":        "Acme",
			"description": "Shop",
			"logoUrl":     "https://cdn.example.com/logo.png",
			"metadata":    map[string]interface{}{"contact": "+237600000000"},
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	companies services.CompanyService
	signer    services.SignatureService
	sessions  services.SessionManager
	genuka    *fakeGenuka
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	genuka := newFakeGenuka(t)
	companies := services.NewCompanyService(db)
	signer := services.NewSignatureService(testSecret)
	genukaAPI := services.NewGenukaAPIService(services.GenukaClientConfig{
		BaseURL:      genuka.server.URL,
		ClientID:     "client-id",
		ClientSecret: testSecret,
		RedirectURI:  "http://localhost:8080/api/auth/callback",
		Timeout:      2 * time.Second,
	})
	oauth := services.NewOAuthService(signer, genukaAPI, companies, 300*time.Second)

	key, err := services.DeriveSessionKey(testSecret)
	require.NoError(t, err)
	sessions := services.NewSessionManager(services.NewJWTService(key, nil), false)

	authHandler := NewAuthHandler(oauth, sessions, companies, testDefaultRedirect)
	webhookHandler := NewWebhookHandler(services.NewWebhookRouter(companies))
	healthHandler := NewHealthHandler(db)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", authHandler.Home)
	r.GET("/health", healthHandler.Health)
	auth := r.Group("/api/auth")
	auth.GET("/callback", authHandler.Callback)
	auth.POST("/webhook", webhookHandler.Receive)
	auth.GET("/check", authHandler.Check)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.SessionAuth(sessions, companies), authHandler.Me)

	return &testEnv{
		router:    r,
		db:        db,
		companies: companies,
		signer:    signer,
		sessions:  sessions,
		genuka:    genuka,
	}
}

// callbackQuery підписує параметри так само як Genuka
func (e *testEnv) callbackQuery(companyID, redirectTo string, age time.Duration) url.Values {
	timestamp := strconv.FormatInt(time.Now().Add(-age).Unix(), 10)
	query := url.Values{}
	query.Set("code", "auth-code")
	query.Set("company_id", companyID)
	query.Set("timestamp", timestamp)
	query.Set("redirect_to", redirectTo)
	query.Set("hmac", e.signer.Sign(services.CallbackParams("auth-code", companyID, redirectTo, timestamp)))
	return query
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// issueCookies повертає пару сесійних cookie для компанії
func (e *testEnv) issueCookies(t *testing.T, companyID string) (session, refresh *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := e.sessions.Issue(rec, companyID)
	require.NoError(t, err)

	for _, cookie := range rec.Result().Cookies() {
		switch cookie.Name {
		case services.SessionCookieName:
			session = cookie
		case services.RefreshCookieName:
			refresh = cookie
		}
	}
	require.NotNil(t, session)
	require.NotNil(t, refresh)
	return session, refresh
}

func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	return cookies
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func strPtr(s string) *string {
	return &s
}
