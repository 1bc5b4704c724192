package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Signature  SignatureConfig
	Email      EmailConfig
	Assessment AssessmentConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds evidence blob storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SignatureConfig holds settings for the external signature-verification
// service and its polling worker.
type SignatureConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	MaxRetries       int    `mapstructure:"max_retries"`
	Concurrency      int    `mapstructure:"concurrency"`
}

// EmailConfig holds decision-notification email settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// AssessmentConfig holds evaluation defaults.
type AssessmentConfig struct {
	// DefaultDeadlineDays is the issuance deadline in business days applied
	// to assigned-document slots that do not carry their own.
	DefaultDeadlineDays int `mapstructure:"default_deadline_days"`
}

// Load reads configuration from environment variables with the LATRACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LATRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "latrack")
	v.SetDefault("db.password", "latrack_secret")
	v.SetDefault("db.name", "latrack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "latrack")

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "latrack-evidence")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Signature verification defaults
	v.SetDefault("signature.endpoint", "")
	v.SetDefault("signature.timeout_secs", 60)
	v.SetDefault("signature.poll_interval_secs", 10)
	v.SetDefault("signature.max_retries", 3)
	v.SetDefault("signature.concurrency", 3)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-1")
	v.SetDefault("email.from_address", "noreply@latrack.gov.vn")
	v.SetDefault("email.from_name", "Legal Access Tracker")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Assessment defaults: 7 working days for plan-issuance indicators.
	v.SetDefault("assessment.default_deadline_days", 7)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "LATRACK_SERVER_PORT",
		"server.read_timeout":          "LATRACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "LATRACK_SERVER_WRITE_TIMEOUT",
		"server.environment":           "LATRACK_SERVER_ENVIRONMENT",
		"db.host":                      "LATRACK_DB_HOST",
		"db.port":                      "LATRACK_DB_PORT",
		"db.user":                      "LATRACK_DB_USER",
		"db.password":                  "LATRACK_DB_PASSWORD",
		"db.name":                      "LATRACK_DB_NAME",
		"db.sslmode":                   "LATRACK_DB_SSLMODE",
		"db.max_open":                  "LATRACK_DB_MAX_OPEN",
		"db.max_idle":                  "LATRACK_DB_MAX_IDLE",
		"jwt.secret":                   "LATRACK_JWT_SECRET",
		"jwt.access_expiry":            "LATRACK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":           "LATRACK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                   "LATRACK_JWT_ISSUER",
		"s3.region":                    "LATRACK_S3_REGION",
		"s3.bucket":                    "LATRACK_S3_BUCKET",
		"s3.endpoint":                  "LATRACK_S3_ENDPOINT",
		"s3.access_key":                "LATRACK_S3_ACCESS_KEY",
		"s3.secret_key":                "LATRACK_S3_SECRET_KEY",
		"s3.max_file_size_mb":          "LATRACK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":            "LATRACK_S3_PRESIGN_EXPIRY",
		"log.level":                    "LATRACK_LOG_LEVEL",
		"log.format":                   "LATRACK_LOG_FORMAT",
		"cors.allowed_origins":         "LATRACK_CORS_ALLOWED_ORIGINS",
		"signature.endpoint":           "LATRACK_SIGNATURE_ENDPOINT",
		"signature.timeout_secs":       "LATRACK_SIGNATURE_TIMEOUT_SECS",
		"signature.poll_interval_secs": "LATRACK_SIGNATURE_POLL_INTERVAL_SECS",
		"signature.max_retries":        "LATRACK_SIGNATURE_MAX_RETRIES",
		"signature.concurrency":        "LATRACK_SIGNATURE_CONCURRENCY",
		"email.provider":               "LATRACK_EMAIL_PROVIDER",
		"email.region":                 "LATRACK_EMAIL_REGION",
		"email.from_address":           "LATRACK_EMAIL_FROM_ADDRESS",
		"email.from_name":              "LATRACK_EMAIL_FROM_NAME",
		"email.frontend_url":           "LATRACK_EMAIL_FRONTEND_URL",
		"assessment.default_deadline_days": "LATRACK_ASSESSMENT_DEFAULT_DEADLINE_DAYS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LATRACK_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LATRACK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Signature = SignatureConfig{
		Endpoint:         v.GetString("signature.endpoint"),
		TimeoutSecs:      v.GetInt("signature.timeout_secs"),
		PollIntervalSecs: v.GetInt("signature.poll_interval_secs"),
		MaxRetries:       v.GetInt("signature.max_retries"),
		Concurrency:      v.GetInt("signature.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Assessment = AssessmentConfig{
		DefaultDeadlineDays: v.GetInt("assessment.default_deadline_days"),
	}

	return cfg, nil
}
