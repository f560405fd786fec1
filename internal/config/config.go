package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// InsecureJWTSecret is the fallback signing secret used when AUTH_JWT_SECRET is unset.
const InsecureJWTSecret = "dev-insecure-secret-change-me"

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Verification VerificationConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects in-memory storage.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret           string
	TokenTTLHours       int
	SessionTTLHours     int
	SessionSweepMinutes int
	BcryptCost          int
	AdminEmail          string
	AdminPassword       string
}

// VerificationConfig tunes cash-on-delivery phone confirmation.
type VerificationConfig struct {
	CodeTTLMinutes int
	SweepMinutes   int
}

// RateLimitConfig holds per-window request budgets keyed by client IP.
type RateLimitConfig struct {
	WindowMinutes int
	AuthMax       int
	APIMax        int
	OrderMax      int
}

// NotificationConfig holds stub notification settings.
type NotificationConfig struct {
	SMSSender  string
	AlertEmail string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "soap-storefront"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("AUTH_JWT_SECRET", InsecureJWTSecret),
			TokenTTLHours:       getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 7*24),
			SessionTTLHours:     getEnvAsInt("AUTH_SESSION_TTL_HOURS", 7*24),
			SessionSweepMinutes: getEnvAsInt("SESSION_SWEEP_MINUTES", 60),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 10),
			AdminEmail:          strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		},
		Verification: VerificationConfig{
			CodeTTLMinutes: getEnvAsInt("VERIFICATION_CODE_TTL_MINUTES", 10),
			SweepMinutes:   getEnvAsInt("VERIFICATION_SWEEP_MINUTES", 5),
		},
		RateLimit: RateLimitConfig{
			WindowMinutes: getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15),
			AuthMax:       getEnvAsInt("RATE_LIMIT_AUTH_MAX", 5),
			APIMax:        getEnvAsInt("RATE_LIMIT_API_MAX", 100),
			OrderMax:      getEnvAsInt("RATE_LIMIT_ORDER_MAX", 3),
		},
		Notification: NotificationConfig{
			SMSSender:  getEnv("NOTIFY_SMS_SENDER", "MRIDULOTA"),
			AlertEmail: strings.TrimSpace(os.Getenv("NOTIFY_ALERT_EMAIL")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.UsesInsecureSecret() && c.App.IsProduction() {
		return errors.New("AUTH_JWT_SECRET must be set in production")
	}
	if (c.Auth.AdminEmail == "") != (c.Auth.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// UsesInsecureSecret reports whether tokens would be signed with the built-in secret.
func (c *Config) UsesInsecureSecret() bool {
	return c.Auth.JWTSecret == "" || c.Auth.JWTSecret == InsecureJWTSecret
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production") || strings.EqualFold(a.Env, "prod")
}

// IsDevelopment reports whether detailed error messages may be exposed.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the signed token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return hoursOr(a.TokenTTLHours, 7*24)
}

// SessionTTL returns the opaque session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	return hoursOr(a.SessionTTLHours, 7*24)
}

// SessionSweepInterval returns how often expired sessions are purged.
func (a AuthConfig) SessionSweepInterval() time.Duration {
	return minutesOr(a.SessionSweepMinutes, 60)
}

// CodeTTL returns how long an issued verification code stays valid.
func (v VerificationConfig) CodeTTL() time.Duration {
	return minutesOr(v.CodeTTLMinutes, 10)
}

// SweepInterval returns how often expired verification codes are purged.
func (v VerificationConfig) SweepInterval() time.Duration {
	return minutesOr(v.SweepMinutes, 5)
}

// Window returns the rate limiting window.
func (r RateLimitConfig) Window() time.Duration {
	return minutesOr(r.WindowMinutes, 15)
}

func hoursOr(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Hour
}

func minutesOr(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
