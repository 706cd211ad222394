package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type JWTConfig struct {
	Secret string
	Issuer string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

type ResetConfig struct {
	CodeTTL           time.Duration
	RequestsPerWindow int
	RequestWindow     time.Duration
	ConfirmAttempts   int
	ConfirmWindow     time.Duration
}

// Config holds the Account Service settings.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	CORSOrigins string
	LogLevel    string
	Development bool

	JWT   JWTConfig
	Email EmailConfig
	Reset ResetConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Development: getBool("DEVELOPMENT", false),
	}

	// JWT config
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "ourphotos-accounts")

	// Email config
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "OurPhotos")

	// Password reset
	cfg.Reset.CodeTTL = getDuration("RESET_CODE_TTL", 10*time.Minute)
	cfg.Reset.RequestsPerWindow = getInt("RESET_REQUESTS_PER_WINDOW", 5)
	cfg.Reset.RequestWindow = getDuration("RESET_REQUEST_WINDOW", 15*time.Minute)
	cfg.Reset.ConfirmAttempts = getInt("RESET_CONFIRM_ATTEMPTS", 5)
	cfg.Reset.ConfirmWindow = getDuration("RESET_CONFIRM_WINDOW", 15*time.Minute)

	return cfg
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.Reset.CodeTTL <= 0 {
		errs = append(errs, errors.New("RESET_CODE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// ClientConfig holds the accountctl settings.
type ClientConfig struct {
	APIURL   string
	Timeout  time.Duration
	LogLevel string
}

func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		APIURL:   getEnv("ACCOUNT_API_URL", "http://localhost:8080/api"),
		Timeout:  getDuration("ACCOUNT_API_TIMEOUT", 15*time.Second),
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

func (c *ClientConfig) Validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return errors.New("ACCOUNT_API_URL must be an http(s) URL")
	}
	if c.Timeout <= 0 {
		return errors.New("ACCOUNT_API_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}
