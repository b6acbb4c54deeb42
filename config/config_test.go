package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "devlearn")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "devlearn")
	t.Setenv("JWT_SECRET", "signing-secret")
	t.Setenv("EMAIL_FROM", "noreply@devlearn.example")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Pool.Host)
	assert.Equal(t, 5432, cfg.Pool.Port)
	assert.Equal(t, 10, cfg.Pool.MaxSize)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Auth.Environment)
	assert.False(t, cfg.Auth.IsProduction())
	// Session tokens default to a 7 day window.
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "devlearn")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "devlearn")
	t.Setenv("EMAIL_FROM", "noreply@devlearn.example")
	// JWT_SECRET deliberately unset.

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_CollectsAllErrors(t *testing.T) {
	// Every problem is reported at once, not just the first.
	t.Setenv("DB_USER", "devlearn")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "devlearn")
	t.Setenv("JWT_SECRET", "signing-secret")
	t.Setenv("EMAIL_FROM", "noreply@devlearn.example")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "staging")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
}

func TestLoadConfig_Production(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("DB_POOL_SIZE", "200")

	cfg, err := LoadConfig()
	// An out-of-range pool size is an error, not a silent clamp.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
	assert.Nil(t, cfg)
}

func TestLoadConfig_PoolSizeWithinRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("DB_POOL_SIZE", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 20, cfg.Pool.MaxSize)
}
