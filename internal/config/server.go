package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"genuka-bridge/internal/build"
	"genuka-bridge/internal/handlers"
	"genuka-bridge/internal/middleware"
	"genuka-bridge/internal/services"
	"genuka-bridge/migrations"

	_ "genuka-bridge/docs"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const appName = "genuka-bridge"

// StartServer запускає HTTP сервер з конфігурацією
func StartServer(cfg *Config) error {
	setupLogging(cfg)
	printBanner()

	db, err := OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r, err := NewRouter(cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      r,
		ReadTimeout:  durationOrDefault("server.read_timeout", cfg.Server.ReadTimeout, 30*time.Second),
		WriteTimeout: durationOrDefault("server.write_timeout", cfg.Server.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOrDefault("server.idle_timeout", cfg.Server.IdleTimeout, 120*time.Second),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("🚀 Starting Genuka bridge on %s", cfg.GetAddress())
		logrus.Infof("Environment: %s", cfg.Server.Environment)
		logrus.Infof("Log Level: %s", cfg.Server.LogLevel)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	logrus.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logrus.Info("✅ Server exited gracefully")
	return nil
}

// NewRouter створює gin роутер з усіма сервісами та маршрутами
func NewRouter(cfg *Config, db *gorm.DB) (*gin.Engine, error) {
	sessionKey, err := cfg.SessionKey()
	if err != nil {
		return nil, err
	}

	companyService := services.NewCompanyService(db)
	signatureService := services.NewSignatureService(cfg.Genuka.ClientSecret)
	genukaService := services.NewGenukaAPIService(cfg.GenukaClientConfig())
	oauthService := services.NewOAuthService(signatureService, genukaService, companyService, cfg.TimestampTolerance())
	sessionManager := services.NewSessionManager(services.NewJWTService(sessionKey, nil), cfg.SecureCookies())
	webhookRouter := services.NewWebhookRouter(companyService)

	authHandler := handlers.NewAuthHandler(oauthService, sessionManager, companyService, cfg.Genuka.DefaultRedirect)
	webhookHandler := handlers.NewWebhookHandler(webhookRouter)
	healthHandler := handlers.NewHealthHandler(db)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(accessLogFormatter))
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg))

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", authHandler.Home)
	r.GET("/health", healthHandler.Health)

	auth := r.Group("/api/auth")
	{
		auth.GET("/callback", authHandler.Callback)
		auth.POST("/webhook", webhookHandler.Receive)
		auth.GET("/check", authHandler.Check)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.SessionAuth(sessionManager, companyService), authHandler.Me)
	}

	return r, nil
}

// redactedQueryParams не потрапляють в access log у відкритому вигляді
var redactedQueryParams = []string{"code", "hmac"}

// accessLogFormatter форматує рядок access log як gin за замовчуванням, але без секретів у query
func accessLogFormatter(param gin.LogFormatterParams) string {
	path := param.Path
	if param.Request != nil && param.Request.URL != nil {
		path = param.Request.URL.Path
		if param.Request.URL.RawQuery != "" {
			query := param.Request.URL.Query()
			for _, key := range redactedQueryParams {
				if query.Has(key) {
					query.Set(key, "REDACTED")
				}
			}
			path += "?" + query.Encode()
		}
	}

	var statusColor, methodColor, resetColor string
	if param.IsOutputColor() {
		statusColor = param.StatusCodeColor()
		methodColor = param.MethodColor()
		resetColor = param.ResetColor()
	}
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	return fmt.Sprintf("[GIN] %v |%s %3d %s| %13v | %15s |%s %-7s %s %#v\n%s",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		statusColor, param.StatusCode, resetColor,
		param.Latency,
		param.ClientIP,
		methodColor, param.Method, resetColor,
		path,
		param.ErrorMessage,
	)
}

// setupLogging налаштовує логування
func setupLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using info", cfg.Server.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Server.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

func printBanner() {
	banner := figure.NewFigure(appName, "cybermedium", true)
	fmt.Println(banner.String())
	fmt.Printf("version %s (%s)\n\n", build.Version, build.GitCommit)
}

// corsMiddleware налаштовує CORS middleware
func corsMiddleware(cfg *Config) gin.HandlerFunc {
	cors := cfg.Security.CORS
	methods := strings.Join(cors.AllowedMethods, ", ")
	headers := strings.Join(cors.AllowedHeaders, ", ")

	return gin.HandlerFunc(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && isAllowedOrigin(origin, cors.AllowedOrigins) {
			// Cookie сесії не працюють з "*" разом з credentials
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if cors.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if methods != "" {
			c.Header("Access-Control-Allow-Methods", methods)
		}
		if headers != "" {
			c.Header("Access-Control-Allow-Headers", headers)
		}
		if cors.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(cors.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
