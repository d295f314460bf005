package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mlbahja/blogger/pkg/blogsdk"
)

type Config struct {
	APIURL       string        // API base URL (default: http://localhost:8080)
	SessionDB    string        // Path to the SQLite session file
	SessionKey   string        // Optional: when set, session values are sealed at rest
	Ephemeral    bool          // Keep the session in memory only
	HTTPTimeout  time.Duration // Per-request timeout (default: 10s)
	RateLimit    int           // Max outgoing requests per second, 0 disables (default: 10)
	PollInterval time.Duration // Unread notification poll interval (default: 30s)
	Env          string        // Environment (dev, prod) (default: dev)
	LogLevel     string        // Log level (debug, info, warn, error) (default: warn)
	LogFormat    string        // Log format (json, text) (default: text)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; it never overrides
// variables that are already set. The result is not validated, callers
// apply their overrides and then call Validate.
func LoadConfig() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Config{
		APIURL:       getEnvOrDefault("BLOGGER_API_URL", blogsdk.DefaultBaseURL),
		SessionDB:    getEnvOrDefault("BLOGGER_SESSION_DB", defaultSessionDB()),
		SessionKey:   os.Getenv("BLOGGER_SESSION_KEY"),
		HTTPTimeout:  getEnvDurationOrDefault("BLOGGER_HTTP_TIMEOUT", 10*time.Second),
		RateLimit:    getEnvIntOrDefault("BLOGGER_RATE_LIMIT", 10),
		PollInterval: getEnvDurationOrDefault("BLOGGER_POLL_INTERVAL", 30*time.Second),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("api url is required"))
	}
	if !c.Ephemeral && c.SessionDB == "" {
		errs = append(errs, errors.New("session db path is required"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit))
	}
	return errors.Join(errs...)
}

// defaultSessionDB places the session file under the user's config
// directory, falling back to the working directory.
func defaultSessionDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "blogger", "session.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
