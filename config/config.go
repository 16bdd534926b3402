package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

const DefaultCredentialsPath = "keys/staging-sa.json"

var ErrCredentialsNotFound = errors.New("service account file not found")

type Config struct {
	CredentialsPath       string // GOOGLE_APPLICATION_CREDENTIALS, falls back to keys/staging-sa.json
	UseDefaultCredentials bool   // ambient application default credentials, no key file
	ProjectID             string
	CloudLogging          bool
	DryRun                bool
	LogLevel              slog.Level
	Port                  string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		CredentialsPath:       getEnv("GOOGLE_APPLICATION_CREDENTIALS", DefaultCredentialsPath),
		UseDefaultCredentials: getBool("SEED_USE_DEFAULT_CREDENTIALS", false),
		ProjectID:             getEnv("GOOGLE_CLOUD_PROJECT", getEnv("FIREBASE_PROJECT_ID", "")),
		CloudLogging:          getBool("SEED_CLOUD_LOGGING", false),
		DryRun:                getBool("SEED_DRY_RUN", false),
		LogLevel:              parseLevel(getEnv("LOG_LEVEL", "info")),
		Port:                  getEnv("PORT", "8082"),
	}
}

// ClientOptions returns the options used to initialize the Firebase app.
// A configured key file that does not exist yields ErrCredentialsNotFound.
func (c *Config) ClientOptions() ([]option.ClientOption, error) {
	if c.UseDefaultCredentials {
		return nil, nil
	}
	absPath, err := filepath.Abs(c.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil || fileInfo.IsDir() {
		return nil, fmt.Errorf("%w at %s", ErrCredentialsNotFound, absPath)
	}
	return []option.ClientOption{option.WithCredentialsFile(absPath)}, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
