package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration for the openpdfa server.
type Config struct {
	Port     int
	APIKey   string
	LogLevel string

	// Ghostscript
	GSPath         string // Explicit path to the gs binary; discovered at startup if empty
	GSVersion      string // Version string used to build the default install path (e.g. "10.03.1")
	GSArgs         string // Base argument string passed to gs on every conversion
	TimeoutSeconds int    // Per-conversion deadline for the gs process

	// Scratch space for conversion input/output files
	TempDir string

	// Local data directory for the SQLite audit log ("" disables auditing)
	DataDir string

	// Redis result cache ("" disables caching)
	RedisURL        string
	CacheTTLSeconds int

	// Request body limit for the HTTP API (megabytes)
	MaxBodyMB int
}

// DefaultGSArgs is the flag set handed to Ghostscript when OPENPDFA_GS_ARGS
// is not set. Output and input paths are appended per conversion.
const DefaultGSArgs = "-dPDFA=2 -dBATCH -dNOPAUSE -dNOOUTERSAVE" +
	" -sColorConversionStrategy=UseDeviceIndependentColor" +
	" -sDEVICE=pdfwrite -dPDFACompatibilityPolicy=1"

// Load reads configuration from environment variables with sensible defaults.
// Out-of-range port or timeout values are errors, not silently defaulted:
// the service refuses to start on bad configuration.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     8080,
		APIKey:   os.Getenv("OPENPDFA_API_KEY"),
		LogLevel: envOrDefault("OPENPDFA_LOG_LEVEL", "info"),

		GSPath:         os.Getenv("OPENPDFA_GS_PATH"),
		GSVersion:      os.Getenv("OPENPDFA_GS_VERSION"),
		GSArgs:         envOrDefault("OPENPDFA_GS_ARGS", DefaultGSArgs),
		TimeoutSeconds: envOrDefaultInt("OPENPDFA_TIMEOUT_SECONDS", 120),

		TempDir: envOrDefault("OPENPDFA_TEMP_DIR", filepath.Join(os.TempDir(), "openpdfa")),
		DataDir: os.Getenv("OPENPDFA_DATA_DIR"),

		RedisURL:        os.Getenv("OPENPDFA_REDIS_URL"),
		CacheTTLSeconds: envOrDefaultInt("OPENPDFA_CACHE_TTL_SECONDS", 3600),

		MaxBodyMB: envOrDefaultInt("OPENPDFA_MAX_BODY_MB", 64),
	}

	if portStr := os.Getenv("OPENPDFA_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENPDFA_PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("OPENPDFA_PORT %d out of range (1-65535)", cfg.Port)
	}

	if timeoutStr := os.Getenv("OPENPDFA_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENPDFA_TIMEOUT_SECONDS %q: %w", timeoutStr, err)
		}
		cfg.TimeoutSeconds = timeout
	}
	if cfg.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("OPENPDFA_TIMEOUT_SECONDS must be positive, got %d", cfg.TimeoutSeconds)
	}

	if cfg.CacheTTLSeconds < 1 {
		return nil, fmt.Errorf("OPENPDFA_CACHE_TTL_SECONDS must be positive, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.MaxBodyMB < 1 {
		return nil, fmt.Errorf("OPENPDFA_MAX_BODY_MB must be positive, got %d", cfg.MaxBodyMB)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
