package config

import (
	"os"
	"testing"
	"time"
)

// unsetenv clears a variable for the duration of the test. t.Setenv is used
// first so the original value is restored on cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "CODEPLANE_API_URL")
	unsetenv(t, "CODEPLANE_API_KEY")
	unsetenv(t, "REQUEST_TIMEOUT_SECONDS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
	}
	if cfg.HasAPIKey() {
		t.Fatalf("expected no API key by default")
	}
	if cfg.RequestTimeout != 10*time.Minute {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
}

func TestLoadStripsTrailingSlash(t *testing.T) {
	t.Setenv("CODEPLANE_API_URL", "https://api.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadRejectsHostlessURL(t *testing.T) {
	t.Setenv("CODEPLANE_API_URL", "/just/a/path")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for hostless url")
	}
}

func TestLoadKeepsWhitespaceKeyVerbatim(t *testing.T) {
	t.Setenv("CODEPLANE_API_KEY", "   ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "   " {
		t.Fatalf("key was altered: %q", cfg.APIKey)
	}
	if !cfg.HasAPIKey() {
		t.Fatalf("whitespace key should still count as configured")
	}
}
