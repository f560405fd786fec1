package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.True(t, cfg.UsesInsecureSecret())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.Verification.CodeTTL())
	assert.Equal(t, 5*time.Minute, cfg.Verification.SweepInterval())
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 5, cfg.RateLimit.AuthMax)
	assert.Equal(t, 3, cfg.RateLimit.OrderMax)
	assert.Empty(t, cfg.Postgres.DSN)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "1")
	t.Setenv("VERIFICATION_CODE_TTL_MINUTES", "3")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.False(t, cfg.UsesInsecureSecret())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 3*time.Minute, cfg.Verification.CodeTTL())
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_RejectsInsecureSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_AdminCredentialsTogether(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "x", AdminEmail: "admin@example.com"}}
	require.Error(t, cfg.Validate())

	cfg.Auth.AdminPassword = "secret123"
	require.NoError(t, cfg.Validate())
}

func TestDurationsFallBackOnNonPositive(t *testing.T) {
	assert.Equal(t, 10*time.Minute, VerificationConfig{CodeTTLMinutes: -1}.CodeTTL())
	assert.Equal(t, 7*24*time.Hour, AuthConfig{}.TokenTTL())
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
}
