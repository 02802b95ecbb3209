package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"genuka-bridge/internal/build"
	"genuka-bridge/internal/config"
	"genuka-bridge/internal/services"
)

// configureAction генерує конфігурацію з шаблону
func configureAction(c *cli.Context) error {
	templatePath := c.String("template")
	outputPath := c.String("output")
	version := c.String("version")
	mode := c.String("mode")

	fmt.Printf("🔧 Configuring Genuka bridge\n")
	fmt.Printf("Template: %s\n", templatePath)
	fmt.Printf("Output: %s\n", outputPath)
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Mode: %s\n", mode)

	templatePathAbs, err := absPath(templatePath)
	if err != nil {
		return err
	}
	outputPathAbs, err := absPath(outputPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(templatePathAbs); os.IsNotExist(err) {
		return fmt.Errorf("template file does not exist: %s", templatePathAbs)
	}

	vars := getConfigVars(mode, version)

	if err := config.GenerateConfigFromTemplate(templatePathAbs, outputPathAbs, vars); err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	fmt.Printf("✅ Configuration generated successfully: %s\n", outputPathAbs)
	return nil
}

// serverAction запускає сервер
func serverAction(c *cli.Context) error {
	configPath := c.String("config")

	fmt.Printf("🚀 Starting Genuka bridge\n")
	fmt.Printf("Config: %s\n", configPath)
	fmt.Printf("Version: %s\n", build.Version)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	return config.StartServer(cfg)
}

// migrateAction застосовує або відкочує міграції
func migrateAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	return config.RunMigrations(cfg, c.Bool("rollback"))
}

// signCallbackAction друкує підписаний callback URL
func signCallbackAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	redirectTo := c.String("redirect-to")
	if redirectTo == "" {
		redirectTo = cfg.Genuka.DefaultRedirect
	}

	callbackURL, err := signedCallbackURL(
		c.String("base-url"),
		cfg.Genuka.ClientSecret,
		c.String("code"),
		c.String("company-id"),
		redirectTo,
		time.Now(),
	)
	if err != nil {
		return err
	}

	fmt.Println(callbackURL)
	return nil
}

// versionAction показує інформацію про версію
func versionAction(c *cli.Context) error {
	info := build.Info()

	fmt.Printf("Genuka bridge\n")
	fmt.Printf("Version: %s\n", info["version"])
	fmt.Printf("Build Number: %s\n", info["number"])
	fmt.Printf("Git Commit: %s\n", info["git_commit"])
	fmt.Printf("Build Time: %s\n", info["build_time"])

	return nil
}

func loadConfig(configPath string) (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s. Run 'configure' command first", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(workDir, path), nil
}

// signedCallbackURL будує callback URL з підписом так, як його формує Genuka
func signedCallbackURL(baseURL, clientSecret, code, companyID, redirectTo string, now time.Time) (string, error) {
	if companyID == "" {
		return "", fmt.Errorf("company id is required")
	}

	timestamp := strconv.FormatInt(now.Unix(), 10)
	signer := services.NewSignatureService(clientSecret)

	query := url.Values{}
	query.Set("code", code)
	query.Set("company_id", companyID)
	query.Set("timestamp", timestamp)
	query.Set("redirect_to", redirectTo)
	query.Set("hmac", signer.Sign(services.CallbackParams(code, companyID, redirectTo, timestamp)))

	return strings.TrimRight(baseURL, "/") + "/api/auth/callback?" + query.Encode(), nil
}

// getConfigVars повертає мапу змінних для конфігурації
func getConfigVars(mode, version string) map[string]interface{} {
	vars := map[string]interface{}{
		"build_version": version,
		"environment":   mode,
	}

	setVarFromEnv(vars, "api_server_host", "API_SERVER_HOST", "localhost")
	setVarFromEnv(vars, "api_server_port", "API_SERVER_PORT", 8080)
	setVarFromEnv(vars, "log_level", "LOG_LEVEL", getLogLevelForMode(mode))
	setVarFromEnv(vars, "log_format", "LOG_FORMAT", getLogFormatForMode(mode))

	setVarFromEnv(vars, "db_driver", "DB_DRIVER", "postgres")
	setVarFromEnv(vars, "db_host", "DB_HOST", "localhost")
	setVarFromEnv(vars, "db_port", "DB_PORT", 5432)
	setVarFromEnv(vars, "db_name", "DB_NAME", "genuka_bridge")
	setVarFromEnv(vars, "db_user", "DB_USER", "genuka_bridge")
	setVarFromEnv(vars, "db_password", "DB_PASSWORD", "")

	setVarFromEnv(vars, "genuka_url", "GENUKA_URL", "https://api.genuka.com")
	setOptionalVarFromEnv(vars, "genuka_client_id", "GENUKA_CLIENT_ID")
	setOptionalVarFromEnv(vars, "genuka_client_secret", "GENUKA_CLIENT_SECRET")
	setOptionalVarFromEnv(vars, "genuka_redirect_uri", "GENUKA_REDIRECT_URI")
	setOptionalVarFromEnv(vars, "genuka_default_redirect", "GENUKA_DEFAULT_REDIRECT")
	setOptionalVarFromEnv(vars, "session_secret", "SESSION_SECRET")
	setOptionalVarFromEnv(vars, "cors_allowed_origins", "CORS_ALLOWED_ORIGINS")

	return vars
}

// setVarFromEnv встановлює змінну з оточення або дефолтне значення
func setVarFromEnv(vars map[string]interface{}, key, envKey string, defaultValue interface{}) {
	if envValue := os.Getenv(envKey); envValue != "" {
		vars[key] = envValue
	} else {
		vars[key] = defaultValue
	}
}

// setOptionalVarFromEnv встановлює змінну тільки якщо вона задана в оточенні
func setOptionalVarFromEnv(vars map[string]interface{}, key, envKey string) {
	if envValue := os.Getenv(envKey); envValue != "" {
		vars[key] = envValue
	}
}

// getLogLevelForMode повертає рівень логування для режиму
func getLogLevelForMode(mode string) string {
	switch mode {
	case "production":
		return "warn"
	case "staging":
		return "info"
	default:
		return "debug"
	}
}

func getLogFormatForMode(mode string) string {
	if mode == "development" {
		return "text"
	}
	return "json"
}
