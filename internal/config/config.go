package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Classifier ClassifierConfig
	Database   DatabaseConfig
	Auth       AuthConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// StaticDir, when set, holds a built web UI served for non-API paths.
	StaticDir string
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// ClassifierConfig selects and tunes the external model backend. An empty
// APIKey means no backend is available and only the keyword fallback runs.
type ClassifierConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// DatabaseConfig holds the optional Postgres connection string.
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
	TokenDuration time.Duration
}

// Supported classifier providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultProvider          = ProviderOpenAI
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultAnthropicModel    = "claude-3-5-haiku-latest"
	defaultClassifierTimeout = 20 * time.Second
	defaultTemperature       = 0.2
	defaultMaxTokens         = 800
	maxClassifierTimeout     = 300

	defaultAdminPassword = "admin"
	defaultJWTSecret     = "change-this-secret"
	defaultTokenDuration = 24 * time.Hour
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided or invalid.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			StaticDir:       os.Getenv("WEB_DIR"),
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Classifier: ClassifierConfig{
			Provider:    defaultProvider,
			Timeout:     defaultClassifierTimeout,
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
			JWTSecret:     getEnv("ADMIN_JWT_SECRET", defaultJWTSecret),
			TokenDuration: defaultTokenDuration,
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if err := loadClassifier(&cfg.Classifier); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("ADMIN_TOKEN_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("invalid ADMIN_TOKEN_HOURS: must be a positive integer")
		}
		cfg.Auth.TokenDuration = time.Duration(hours) * time.Hour
	}

	return cfg, nil
}

// HasCredential reports whether a model backend can be constructed.
func (c ClassifierConfig) HasCredential() bool {
	return c.APIKey != ""
}

func loadClassifier(cfg *ClassifierConfig) error {
	if v := os.Getenv("CLASSIFIER_PROVIDER"); v != "" {
		switch v {
		case ProviderOpenAI, ProviderAnthropic:
			cfg.Provider = v
		default:
			return fmt.Errorf("invalid CLASSIFIER_PROVIDER: must be 'openai' or 'anthropic'")
		}
	}

	// Provider-specific keys win over the generic API_KEY
	switch cfg.Provider {
	case ProviderAnthropic:
		cfg.APIKey = getEnv("ANTHROPIC_API_KEY", os.Getenv("API_KEY"))
		cfg.Model = defaultAnthropicModel
	default:
		cfg.APIKey = getEnv("OPENAI_API_KEY", os.Getenv("API_KEY"))
		cfg.Model = defaultOpenAIModel
	}
	cfg.Model = getEnv("CLASSIFIER_MODEL", cfg.Model)

	if v := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 1 || seconds > maxClassifierTimeout {
			return fmt.Errorf("invalid CLASSIFIER_TIMEOUT_SECONDS: must be between 1 and %d", maxClassifierTimeout)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("CLASSIFIER_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil || temp < 0 || temp > 2 {
			return fmt.Errorf("invalid CLASSIFIER_TEMPERATURE: must be between 0.0 and 2.0")
		}
		cfg.Temperature = float32(temp)
	}

	if v := os.Getenv("CLASSIFIER_MAX_TOKENS"); v != "" {
		tokens, err := strconv.Atoi(v)
		if err != nil || tokens < 1 {
			return fmt.Errorf("invalid CLASSIFIER_MAX_TOKENS: must be a positive integer")
		}
		cfg.MaxTokens = tokens
	}

	return nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
