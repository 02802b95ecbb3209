package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"genuka-bridge/internal/services"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config представляє повну конфігурацію додатку
type Config struct {
	Server   ServerConfig   `hcl:"server,block"`
	Database DatabaseConfig `hcl:"database,block"`
	Genuka   GenukaConfig   `hcl:"genuka,block"`
	Session  *SessionConfig `hcl:"session,block"`
	Security SecurityConfig `hcl:"security,block"`
}

// ServerConfig містить налаштування HTTP сервера
type ServerConfig struct {
	Host         string `hcl:"host" env:"HOST" envDefault:"0.0.0.0"`
	Port         int    `hcl:"port" env:"PORT" envDefault:"8080"`
	Environment  string `hcl:"environment" env:"MODE" envDefault:"production"`
	LogLevel     string `hcl:"log_level" env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `hcl:"log_format" env:"LOG_FORMAT" envDefault:"json"`
	ReadTimeout  string `hcl:"read_timeout,optional" env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout string `hcl:"write_timeout,optional" env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  string `hcl:"idle_timeout,optional" env:"IDLE_TIMEOUT" envDefault:"120s"`
}

// DatabaseConfig містить налаштування бази даних
type DatabaseConfig struct {
	Driver                string `hcl:"driver" env:"DB_DRIVER" envDefault:"postgres"`
	Host                  string `hcl:"host,optional" env:"DB_HOST" envDefault:"postgres-service"`
	Port                  int    `hcl:"port,optional" env:"DB_PORT" envDefault:"5432"`
	Name                  string `hcl:"name" env:"DB_NAME" envDefault:"genuka_bridge"`
	User                  string `hcl:"user,optional" env:"DB_USER" envDefault:"genuka_bridge"`
	Password              string `hcl:"password,optional" env:"DB_PASSWORD"`
	SSLMode               string `hcl:"ssl_mode,optional" env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConnections    int    `hcl:"max_open_connections,optional" env:"DB_MAX_OPEN_CONNECTIONS" envDefault:"10"`
	MaxIdleConnections    int    `hcl:"max_idle_connections,optional" env:"DB_MAX_IDLE_CONNECTIONS" envDefault:"5"`
	ConnectionMaxLifetime string `hcl:"connection_max_lifetime,optional" env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// GenukaConfig містить налаштування інтеграції з Genuka
type GenukaConfig struct {
	URL                string `hcl:"url" env:"GENUKA_URL" envDefault:"https://api.genuka.com"`
	ClientID           string `hcl:"client_id" env:"GENUKA_CLIENT_ID"`
	ClientSecret       string `hcl:"client_secret" env:"GENUKA_CLIENT_SECRET"`
	RedirectURI        string `hcl:"redirect_uri" env:"GENUKA_REDIRECT_URI"`
	DefaultRedirect    string `hcl:"default_redirect,optional" env:"GENUKA_DEFAULT_REDIRECT" envDefault:"/dashboard"`
	TimestampTolerance string `hcl:"timestamp_tolerance,optional" env:"GENUKA_TIMESTAMP_TOLERANCE" envDefault:"5m"`
	RequestTimeout     string `hcl:"request_timeout,optional" env:"GENUKA_REQUEST_TIMEOUT" envDefault:"30s"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional" env:"GENUKA_INSECURE_SKIP_VERIFY"`
}

// SessionConfig містить налаштування сесійних cookie
type SessionConfig struct {
	Secret string `hcl:"secret,optional" env:"SESSION_SECRET"`
}

// SecurityConfig містить налаштування безпеки
type SecurityConfig struct {
	CORS CORSConfig `hcl:"cors,block"`
}

// CORSConfig містить налаштування CORS
type CORSConfig struct {
	AllowedOrigins   []string `hcl:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AllowedMethods   []string `hcl:"allowed_methods,optional" env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `hcl:"allowed_headers,optional" env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Accept,Origin,X-Requested-With,X-Request-ID"`
	AllowCredentials bool     `hcl:"allow_credentials,optional" env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `hcl:"max_age,optional" env:"CORS_MAX_AGE" envDefault:"3600"`
}

// LoadConfig завантажує конфігурацію з HCL файлу
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var config Config
	if err := hclsimple.DecodeFile(configPath, nil, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate перевіряє валідність конфігурації
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Genuka.URL == "" {
		return fmt.Errorf("genuka url is required")
	}
	if c.Genuka.ClientID == "" {
		return fmt.Errorf("genuka client id is required")
	}
	if c.Genuka.ClientSecret == "" {
		return fmt.Errorf("genuka client secret is required")
	}
	if c.Genuka.RedirectURI == "" {
		return fmt.Errorf("genuka redirect uri is required")
	}
	if c.Genuka.InsecureSkipVerify && !c.IsDevelopment() {
		return fmt.Errorf("genuka insecure_skip_verify is only allowed in development")
	}

	durations := map[string]string{
		"server.read_timeout":              c.Server.ReadTimeout,
		"server.write_timeout":             c.Server.WriteTimeout,
		"server.idle_timeout":              c.Server.IdleTimeout,
		"database.connection_max_lifetime": c.Database.ConnectionMaxLifetime,
		"genuka.timestamp_tolerance":       c.Genuka.TimestampTolerance,
		"genuka.request_timeout":           c.Genuka.RequestTimeout,
	}
	for name, value := range durations {
		if value == "" {
			continue
		}
		if _, err := ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}

	return nil
}

// GetAddress повертає адресу для прослуховування сервера
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN повертає DSN для підключення до бази даних
func (c *Config) GetDatabaseDSN() string {
	switch c.Database.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	case "sqlite":
		return c.Database.Name
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
}

// IsDevelopment перевіряє чи додаток працює в режимі розробки
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction перевіряє чи додаток працює в продакшн режимі
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// SecureCookies визначає чи ставити Secure атрибут на сесійні cookie
func (c *Config) SecureCookies() bool {
	return !c.IsDevelopment()
}

// SessionKey повертає ключ підпису сесійних токенів
func (c *Config) SessionKey() ([]byte, error) {
	secret := c.Genuka.ClientSecret
	if c.Session != nil && strings.TrimSpace(c.Session.Secret) != "" {
		secret = c.Session.Secret
	}
	return services.DeriveSessionKey(secret)
}

// GenukaClientConfig повертає налаштування HTTP клієнта Genuka
func (c *Config) GenukaClientConfig() services.GenukaClientConfig {
	return services.GenukaClientConfig{
		BaseURL:            c.Genuka.URL,
		ClientID:           c.Genuka.ClientID,
		ClientSecret:       c.Genuka.ClientSecret,
		RedirectURI:        c.Genuka.RedirectURI,
		Timeout:            durationOrDefault("genuka.request_timeout", c.Genuka.RequestTimeout, 30*time.Second),
		InsecureSkipVerify: c.Genuka.InsecureSkipVerify && c.IsDevelopment(),
	}
}

// TimestampTolerance повертає допустимий вік callback запиту
func (c *Config) TimestampTolerance() time.Duration {
	return durationOrDefault("genuka.timestamp_tolerance", c.Genuka.TimestampTolerance, services.DefaultTimestampTolerance)
}

// GenerateConfigFromTemplate генерує HCL конфігурацію з шаблону використовуючи змінні
func GenerateConfigFromTemplate(templatePath, outputPath string, vars map[string]interface{}) error {
	return generateConfigWithVars(templatePath, outputPath, vars)
}
