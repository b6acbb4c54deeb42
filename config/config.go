// Package config provides configuration management for the devlearn application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and reported in a single error instead of failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment names recognized in APP_ENV. The environment decides cookie
// attributes (Secure + SameSite=None in production, relaxed otherwise).
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens. It is loaded once at startup and
	// read-only afterwards; tokens signed with any other secret fail
	// verification.
	JWTSecret string
	// TokenTTL is the fixed validity window of a session token. Re-login is
	// the only renewal path.
	TokenTTL time.Duration
	// Environment is EnvDevelopment or EnvProduction.
	Environment string
}

// IsProduction reports whether the app runs with production cookie settings.
func (c *AuthConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string
}

// MailConfig holds settings for the outbound mail sender.
type MailConfig struct {
	Region      string
	FromAddress string
	// Optional static credentials. When empty the default AWS credential
	// chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Pool   *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Mail   *MailConfig
}

// getRequiredEnv reads a required environment variable, collecting an error
// when it is missing.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; collects an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15m", "168h"). Uses defaultValue if not set; collects an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parseAndValidatePoolSize converts a pool size string to an int, clamping it
// between 5 and 100 and collecting an error when it is out of range.
func parseAndValidatePoolSize(valueStr string, varName string, errs *[]string) int {
	size, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid pool size for %s: expected integer, got '%s': %v", varName, valueStr, err))
		return 5
	}
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		size = 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		size = 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)

	poolSize := 10
	if sizeStr := getOptionalEnv("DB_POOL_SIZE", ""); sizeStr != "" {
		poolSize = parseAndValidatePoolSize(sizeStr, "DB_POOL_SIZE", &errs)
	}

	pool := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration. Session tokens live for 7 days unless overridden.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenTTL := getOptionalEnvDuration("TOKEN_TTL", 7*24*time.Hour, &errs)
	environment := getOptionalEnv("APP_ENV", EnvDevelopment)
	if environment != EnvDevelopment && environment != EnvProduction {
		errs = append(errs, fmt.Sprintf("invalid value for APP_ENV: expected %q or %q, got %q", EnvDevelopment, EnvProduction, environment))
	}

	authConfig := &AuthConfig{
		JWTSecret:   jwtSecret,
		TokenTTL:    tokenTTL,
		Environment: environment,
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	// Mail configuration. The from-address is required because the
	// password-reset trigger depends on it; AWS credentials may come from
	// the default chain instead of the environment.
	mailConfig := &MailConfig{
		Region:          getOptionalEnv("AWS_REGION", "us-east-1"),
		FromAddress:     getRequiredEnv("EMAIL_FROM", &errs),
		AccessKeyID:     getOptionalEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getOptionalEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Pool:   pool,
		Auth:   authConfig,
		Server: serverConfig,
		Mail:   mailConfig,
	}, nil
}
