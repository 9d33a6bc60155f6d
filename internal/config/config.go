// Package config loads application settings from environment variables,
// collecting every problem it finds before failing so a misconfigured
// environment is reported in one shot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the client needs to talk to the remote API and
// keep its local session state.
type Config struct {
	// APIBaseURL is the root of the remote blog API, no trailing slash.
	APIBaseURL string
	// StateDir is where the session token and user cache are persisted.
	StateDir string
	// RequestTimeout bounds a single API round trip.
	RequestTimeout time.Duration
	// RequestsPerSec throttles outbound calls; 0 disables the limiter.
	RequestsPerSec int
	// LogFile is an optional log destination; empty means stderr.
	LogFile string
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

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

// Load reads the configuration from the environment. All variables are
// optional; the defaults point at a local development server.
func Load() (*Config, error) {
	var errs []string

	baseURL := strings.TrimRight(getOptionalEnv("SCRIBBLE_API_URL", "http://localhost:3001/api"), "/")

	stateDir := getOptionalEnv("SCRIBBLE_STATE_DIR", "")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			errs = append(errs, fmt.Sprintf("cannot resolve home directory for state dir: %v", err))
		} else {
			stateDir = filepath.Join(home, ".scribble")
		}
	}

	timeout := getOptionalEnvDuration("SCRIBBLE_TIMEOUT", 5*time.Second, &errs)
	rps := getOptionalEnvInt("SCRIBBLE_RPS", 0, &errs)
	if rps < 0 {
		errs = append(errs, fmt.Sprintf("SCRIBBLE_RPS must not be negative, got %d", rps))
		rps = 0
	}
	logFile := getOptionalEnv("SCRIBBLE_LOG_FILE", "")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &Config{
		APIBaseURL:     baseURL,
		StateDir:       stateDir,
		RequestTimeout: timeout,
		RequestsPerSec: rps,
		LogFile:        logFile,
	}, nil
}
