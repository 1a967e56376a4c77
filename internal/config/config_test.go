package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.AnalyzerMode != "auto" {
		t.Fatalf("AnalyzerMode = %q, want %q", cfg.AnalyzerMode, "auto")
	}
	if cfg.AnalyzerBaseURL != "" {
		t.Fatalf("AnalyzerBaseURL = %q, want empty default", cfg.AnalyzerBaseURL)
	}
	if cfg.SpeechLanguage != "en-US" {
		t.Fatalf("SpeechLanguage = %q, want %q", cfg.SpeechLanguage, "en-US")
	}
	if cfg.SessionInactivityTimeout != 30*time.Minute {
		t.Fatalf("SessionInactivityTimeout = %v, want %v", cfg.SessionInactivityTimeout, 30*time.Minute)
	}
}

func TestLoadUsesExplicitAnalyzerBaseURL(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("ANALYZER_MODE", "http")
	t.Setenv("ANALYZER_BASE_URL", "http://localhost:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AnalyzerMode != "http" {
		t.Fatalf("AnalyzerMode = %q, want %q", cfg.AnalyzerMode, "http")
	}
	if cfg.AnalyzerBaseURL != "http://localhost:5000" {
		t.Fatalf("AnalyzerBaseURL = %q, want explicit value", cfg.AnalyzerBaseURL)
	}
}

func TestLoadRejectsBadAnalyzerMode(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("ANALYZER_MODE", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject invalid ANALYZER_MODE")
	}
}

func TestLoadRejectsTinyInactivityTimeout(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_SESSION_INACTIVITY_TIMEOUT", "1s")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject sub-5s inactivity timeout")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_SESSION_INACTIVITY_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"ANALYZER_MODE",
		"ANALYZER_BASE_URL",
		"SPEECH_PROVIDER",
		"SPEECH_LANGUAGE",
		"DATABASE_URL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
