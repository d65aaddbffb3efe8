package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "swapi-curl" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("expected no request timeout by default, got %v", cfg.RequestTimeout)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative request timeout")
	}
}
