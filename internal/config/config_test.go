package config

import (
	"os"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"OPENPDFA_PORT", "OPENPDFA_API_KEY", "OPENPDFA_LOG_LEVEL",
		"OPENPDFA_GS_PATH", "OPENPDFA_GS_VERSION", "OPENPDFA_GS_ARGS",
		"OPENPDFA_TIMEOUT_SECONDS", "OPENPDFA_TEMP_DIR", "OPENPDFA_DATA_DIR",
		"OPENPDFA_REDIS_URL", "OPENPDFA_CACHE_TTL_SECONDS", "OPENPDFA_MAX_BODY_MB",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("expected timeout 120, got %d", cfg.TimeoutSeconds)
	}
	if cfg.GSArgs != DefaultGSArgs {
		t.Errorf("expected default gs args, got %q", cfg.GSArgs)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv()
	os.Setenv("OPENPDFA_PORT", "9999")
	os.Setenv("OPENPDFA_API_KEY", "test-key")
	os.Setenv("OPENPDFA_TIMEOUT_SECONDS", "30")
	os.Setenv("OPENPDFA_GS_PATH", "/opt/gs/bin/gs")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("expected API key test-key, got %s", cfg.APIKey)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.TimeoutSeconds)
	}
	if cfg.GSPath != "/opt/gs/bin/gs" {
		t.Errorf("expected gs path /opt/gs/bin/gs, got %s", cfg.GSPath)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv()
	os.Setenv("OPENPDFA_PORT", "not-a-number")
	defer clearEnv()

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port, got nil")
	}
}

func TestLoadPortOutOfRange(t *testing.T) {
	clearEnv()
	os.Setenv("OPENPDFA_PORT", "70000")
	defer clearEnv()

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port, got nil")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv()
	os.Setenv("OPENPDFA_TIMEOUT_SECONDS", "0")
	defer clearEnv()

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive timeout, got nil")
	}
}
