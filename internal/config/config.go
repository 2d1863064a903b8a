package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// MongoURIEnv is the environment variable for the document store connection URI.
	MongoURIEnv = "MONGO_URI"

	// MongoDatabaseEnv is the environment variable for the document store database name.
	MongoDatabaseEnv = "MONGO_DB_NAME"

	// AuthProviderURLEnv is the environment variable for the identity provider base URL.
	AuthProviderURLEnv = "AUTH_PROVIDER_URL"

	// AuthServiceKeyEnv is the environment variable for the identity provider service key.
	AuthServiceKeyEnv = "AUTH_SERVICE_KEY"

	// RateLimitRPSEnv is the environment variable for allowed requests per second per client.
	RateLimitRPSEnv = "RATE_LIMIT_RPS"

	// RateLimitBurstEnv is the environment variable for the rate limiter burst size.
	RateLimitBurstEnv = "RATE_LIMIT_BURST"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 100
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")
)

// Config represents the application configuration.
type Config struct {
	DebugMode     bool
	HTTPServer    Server
	MetricsServer Server
	Mongo         Mongo
	Auth          Auth
	RateLimit     RateLimit
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

// Mongo represents document store configuration settings.
type Mongo struct {
	URI      string
	Database string
}

// Auth represents identity provider configuration settings.
type Auth struct {
	ProviderURL string
	ServiceKey  string
}

// RateLimit represents per-client rate limiter settings.
type RateLimit struct {
	RPS   int
	Burst int
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := allNonEmpty(map[string]string{
		MongoURIEnv:      c.Mongo.URI,
		MongoDatabaseEnv: c.Mongo.Database,
	}); err != nil {
		return fmt.Errorf("document store configuration incomplete: %w", err)
	}

	if err := allNonEmpty(map[string]string{
		AuthProviderURLEnv: c.Auth.ProviderURL,
	}); err != nil {
		return fmt.Errorf("identity provider configuration incomplete: %w", err)
	}

	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("server port configuration incomplete: %w", err)
	}

	if err := allNumbers(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if val, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		HTTPServer: Server{
			Port: os.Getenv(HTTPServerPortEnv),
		},
		MetricsServer: Server{
			Port: os.Getenv(MetricsServerPortEnv),
		},
		Mongo: Mongo{
			URI:      os.Getenv(MongoURIEnv),
			Database: os.Getenv(MongoDatabaseEnv),
		},
		Auth: Auth{
			ProviderURL: os.Getenv(AuthProviderURLEnv),
			ServiceKey:  os.Getenv(AuthServiceKeyEnv),
		},
		RateLimit: RateLimit{
			RPS:   getEnvAsInt(RateLimitRPSEnv, defaultRateLimitRPS),
			Burst: getEnvAsInt(RateLimitBurstEnv, defaultRateLimitBurst),
		},
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
