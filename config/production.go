// Package config provides configuration management and environment variable handling for the application
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/social-admin/utils"
	"github.com/joho/godotenv"
)

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Security   SecurityConfig   `json:"security"`
	JWT        JWTConfig        `json:"jwt"`
	Email      EmailConfig      `json:"email"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Admin      AdminConfig      `json:"admin"`
	Lifecycle  LifecycleConfig  `json:"lifecycle"`
	Deployment DeploymentConfig `json:"deployment"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
	AutoMigrate     bool          `json:"auto_migrate"`
}

// DSN returns the key/value connection string used by the gorm postgres driver
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres:// form expected by the migration runner
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	BodyLimit       int           `json:"body_limit"`
	EnableDocs      bool          `json:"enable_docs"`
}

type SecurityConfig struct {
	AllowedOrigins  []string      `json:"allowed_origins"`
	AuthRateLimit   int           `json:"auth_rate_limit"`   // requests per window
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per window
	RateLimitWindow time.Duration `json:"rate_limit_window"`
	BcryptCost      int           `json:"bcrypt_cost"`
}

type JWTConfig struct {
	SecretKey  string `json:"secret_key"`
	PrivateKey string `json:"private_key"`  // RSA private key in PEM format
	PublicKey  string `json:"public_key"`   // RSA public key in PEM format
	UseRSAKeys bool   `json:"use_rsa_keys"` // Whether to use RSA keys instead of secret key
	Issuer     string `json:"issuer"`
	Audience   string `json:"audience"`
}

type EmailConfig struct {
	Provider           string        `json:"provider"` // smtp, mock
	Host               string        `json:"host"`
	Port               int           `json:"port"`
	Username           string        `json:"username"`
	Password           string        `json:"password"`
	FromEmail          string        `json:"from_email"`
	FromName           string        `json:"from_name"`
	Timeout            time.Duration `json:"timeout"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

type CacheConfig struct {
	Enabled        bool          `json:"enabled"`
	RedisURL       string        `json:"redis_url"`
	RedisPrefix    string        `json:"redis_prefix"`
	HealthInterval time.Duration `json:"health_interval"`
}

type AdminConfig struct {
	// Username and Password seed the first admin when no admin with that username exists
	Username         string        `json:"username"`
	Password         string        `json:"-"`
	CaptchaTTL       time.Duration `json:"captcha_ttl"`
	CaptchaPadding   int           `json:"captcha_padding"`
	CaptchaImageSize int           `json:"captcha_image_size"`
}

type LifecycleConfig struct {
	ActivationCodeTTL time.Duration `json:"activation_code_ttl"`
	ResetCodeTTL      time.Duration `json:"reset_code_ttl"`
	SessionTokenTTL   time.Duration `json:"session_token_ttl"`
	AdminTokenTTL     time.Duration `json:"admin_token_ttl"`
}

type DeploymentConfig struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (d DeploymentConfig) IsDevelopment() bool {
	return d.Environment == "development" || d.Environment == "local"
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "social_admin"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:       getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024), // 4MB
			EnableDocs:      getEnvBool("SERVER_ENABLE_DOCS", false),
		},
		Security: SecurityConfig{
			AllowedOrigins:  getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{}),
			AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 20),
			GlobalRateLimit: getEnvInt("GLOBAL_RATE_LIMIT", 2000),
			RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			BcryptCost:      getEnvInt("BCRYPT_COST", utils.BcryptCost),
		},
		JWT: JWTConfig{
			SecretKey:  getEnvString("JWT_SECRET_KEY", ""),
			PrivateKey: getEnvString("JWT_PRIVATE_KEY", ""),
			PublicKey:  getEnvString("JWT_PUBLIC_KEY", ""),
			UseRSAKeys: getEnvBool("JWT_USE_RSA_KEYS", false),
			Issuer:     getEnvString("JWT_ISSUER", "social-admin"),
			Audience:   getEnvString("JWT_AUDIENCE", "social-admin-api"),
		},
		Email: EmailConfig{
			Provider:           getEnvString("EMAIL_PROVIDER", "smtp"),
			Host:               getEnvString("EMAIL_HOST", ""),
			Port:               getEnvInt("EMAIL_PORT", 587),
			Username:           getEnvString("EMAIL_USERNAME", ""),
			Password:           getEnvString("EMAIL_PASSWORD", ""),
			FromEmail:          getEnvString("EMAIL_FROM_EMAIL", ""),
			FromName:           getEnvString("EMAIL_FROM_NAME", "Social Admin"),
			Timeout:            getEnvDuration("EMAIL_TIMEOUT", 15*time.Second),
			InsecureSkipVerify: getEnvBool("EMAIL_INSECURE_SKIP_VERIFY", false),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			Output:     getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:   getEnvString("LOG_FILE_PATH", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
		Cache: CacheConfig{
			Enabled:        getEnvBool("CACHE_ENABLED", true),
			RedisURL:       getEnvString("CACHE_REDIS_URL", "redis://localhost:6379"),
			RedisPrefix:    getEnvString("CACHE_REDIS_PREFIX", "social-admin:"),
			HealthInterval: getEnvDuration("CACHE_HEALTH_INTERVAL", 30*time.Second),
		},
		Admin: AdminConfig{
			Username:         getEnvString("ADMIN_USERNAME", ""),
			Password:         getEnvString("ADMIN_PASSWORD", ""),
			CaptchaTTL:       getEnvDuration("ADMIN_CAPTCHA_TTL", 2*time.Minute),
			CaptchaPadding:   getEnvInt("ADMIN_CAPTCHA_PADDING", 8),
			CaptchaImageSize: getEnvInt("ADMIN_CAPTCHA_IMAGE_SIZE", 220),
		},
		Lifecycle: LifecycleConfig{
			ActivationCodeTTL: getEnvDuration("ACTIVATION_CODE_TTL", utils.ActivationCodeTTL),
			ResetCodeTTL:      getEnvDuration("RESET_CODE_TTL", utils.ResetCodeTTL),
			SessionTokenTTL:   getEnvDuration("SESSION_TOKEN_TTL", utils.SessionTokenTTL),
			AdminTokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", utils.AdminTokenTTL),
		},
		Deployment: DeploymentConfig{
			Environment: getEnvString("APP_ENV", "production"),
			Version:     getEnvString("VERSION", "1.0.0"),
		},
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads variables from path if it exists. Variables already set in
// the environment win over the file.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// ValidateProductionConfig validates the production configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var problems []string

	if cfg.Database.Host == "" {
		problems = append(problems, "DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		problems = append(problems, "DB_PORT must be between 1 and 65535")
	}
	if cfg.Database.Name == "" {
		problems = append(problems, "DB_NAME is required")
	}
	if cfg.Database.User == "" {
		problems = append(problems, "DB_USER is required")
	}
	if cfg.Database.Password == "" {
		problems = append(problems, "DB_PASSWORD is required")
	}

	if cfg.JWT.UseRSAKeys {
		if cfg.JWT.PrivateKey == "" || cfg.JWT.PublicKey == "" {
			problems = append(problems, "JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required when JWT_USE_RSA_KEYS is set")
		}
	} else if len(cfg.JWT.SecretKey) < 32 {
		problems = append(problems, "JWT_SECRET_KEY must be at least 32 characters long")
	}
	if cfg.JWT.Issuer == "" {
		problems = append(problems, "JWT_ISSUER is required")
	}
	if cfg.JWT.Audience == "" {
		problems = append(problems, "JWT_AUDIENCE is required")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 || cfg.Server.IdleTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT and SERVER_IDLE_TIMEOUT must be positive")
	}

	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		problems = append(problems, "BCRYPT_COST must be between 10 and 14")
	}

	switch cfg.Email.Provider {
	case "mock":
	case "smtp":
		if cfg.Email.Host == "" {
			problems = append(problems, "EMAIL_HOST is required for the smtp email provider")
		}
		if cfg.Email.FromEmail == "" {
			problems = append(problems, "EMAIL_FROM_EMAIL is required for the smtp email provider")
		}
	default:
		problems = append(problems, "EMAIL_PROVIDER must be one of: smtp, mock")
	}

	if cfg.Lifecycle.ActivationCodeTTL <= 0 || cfg.Lifecycle.ResetCodeTTL <= 0 {
		problems = append(problems, "ACTIVATION_CODE_TTL and RESET_CODE_TTL must be positive")
	}
	if cfg.Lifecycle.SessionTokenTTL <= 0 || cfg.Lifecycle.AdminTokenTTL <= 0 {
		problems = append(problems, "SESSION_TOKEN_TTL and ADMIN_TOKEN_TTL must be positive")
	}

	if (cfg.Admin.Username == "") != (cfg.Admin.Password == "") {
		problems = append(problems, "ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if cfg.Admin.Password != "" && len(cfg.Admin.Password) < 8 {
		problems = append(problems, "ADMIN_PASSWORD must be at least 8 characters long")
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch cfg.Logging.Output {
	case "", "stdout":
	case "file", "both":
		if cfg.Logging.FilePath == "" {
			problems = append(problems, "LOG_FILE_PATH is required when LOG_OUTPUT is file or both")
		}
	default:
		problems = append(problems, "LOG_OUTPUT must be one of: stdout, file, both")
	}

	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" {
		problems = append(problems, "CACHE_REDIS_URL is required when cache is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}

	return nil
}
