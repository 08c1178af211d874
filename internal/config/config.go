package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-super-secret-jwt-key"

type Config struct {
	Port    string
	GinMode string
	AppEnv  string

	// Auth
	JWTSecret    string
	JWTExpiresIn time.Duration

	DatabaseURL string

	// AI providers. An empty key leaves that provider unconfigured.
	OpenAIAPIKey string
	GoogleAPIKey string

	Suggestions *SuggestionsConfig `yaml:"suggestions"`

	// Events (optional)
	NatsURL string

	// Database Connection Pool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime int // in minutes
	DBConnMaxLifetime int // in minutes

	// Server
	ServerShutdownTimeoutSeconds int
	MaxRequestBodyBytes          int64

	// CORS
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string

	// Memory monitor
	MemoryMonitorEnabled   bool
	MemoryMonitorSchedule  string
	MemoryGrowthThreshold  int // MB of heap growth since start before warning
	MemoryAlertThresholdMB int // MB of heap in use before warning
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// LoadConfig reads the process environment (and .env when present) plus the
// optional YAML file named by CONFIG_FILE.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnvOrDefault("PORT", "3000"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
		AppEnv:  getEnvOrDefault("APP_ENV", "development"),

		JWTSecret:    getEnvOrDefault("JWT_SECRET", ""),
		JWTExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),

		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),

		OpenAIAPIKey: strings.TrimSpace(getEnvOrDefault("OPENAI_API_KEY", "")),
		GoogleAPIKey: strings.TrimSpace(getEnvOrDefault("GOOGLE_API_KEY", "")),

		NatsURL: getEnvOrDefault("NATS_URL", ""),

		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 15),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleTime: getEnvAsInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 1),
		DBConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 30),

		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),
		MaxRequestBodyBytes:          getEnvAsInt64("MAX_REQUEST_BODY_BYTES", 10<<20),

		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),

		MemoryMonitorEnabled:   getEnvOrDefault("MEMORY_MONITOR_ENABLED", "true") == "true",
		MemoryMonitorSchedule:  getEnvOrDefault("MEMORY_MONITOR_SCHEDULE", "@every 30s"),
		MemoryGrowthThreshold:  getEnvAsInt("MEMORY_MONITOR_GROWTH_THRESHOLD_MB", 50),
		MemoryAlertThresholdMB: getEnvAsInt("MEMORY_MONITOR_ALERT_THRESHOLD_MB", 150),
	}

	configFilePath := getEnvOrDefault("CONFIG_FILE", "config.yaml")
	configFile, err := os.Open(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %v not found, using built-in suggestion settings", configFilePath)
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer configFile.Close()
		log.Printf("Loading config file: %v", configFilePath)
		if err := LoadConfigFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFilePath, err)
		}
	}

	if cfg.Suggestions == nil {
		cfg.Suggestions = DefaultSuggestionsConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, using default connection string")
		cfg.DatabaseURL = "postgres://localhost:5432/sprintsync?sslmode=disable"
	}

	if cfg.OpenAIAPIKey == "" && cfg.GoogleAPIKey == "" {
		log.Println("Warning: no AI API keys configured, suggestions will use the mock generator")
	}

	return cfg, nil
}

// Validate checks settings that must hold before the server starts.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET environment variable is required in production")
		}
		c.JWTSecret = defaultJWTSecret
	}

	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %v", c.JWTExpiresIn)
	}

	if c.Suggestions != nil {
		if err := c.Suggestions.Validate(); err != nil {
			return fmt.Errorf("invalid suggestions config: %w", err)
		}
	}

	return nil
}

// APIKeyFor returns the credential configured for a suggestion provider.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GoogleAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration also accepts the "7d" day suffix used by older deployments.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: Failed to parse environment variable %s='%s' as time.Duration, using default %v: %v", key, value, defaultValue, err)
		return defaultValue
	}
	return parsed
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int64, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func LoadConfigFile(reader io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	return nil
}
