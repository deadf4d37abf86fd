package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "DATABASE_URL", "CORS_ORIGINS", "TRIP_TIMEZONE",
	"VALIDATION_CONCURRENCY", "SHUTDOWN_TIMEOUT",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFromDefaults(t *testing.T) {
	clearEnv(t)
	var buf bytes.Buffer

	cfg, err := LoadFrom(log.New(&buf, "", 0), t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != defaultPort || cfg.DatabaseURL != defaultDatabaseURL {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC, got %v", cfg.Location)
	}
	if cfg.ValidationConcurrency != 4 || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected limits %+v", cfg)
	}
	want := []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	if !slices.Equal(cfg.CORSOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSOrigins)
	}
	if !strings.Contains(buf.String(), "WARN: PORT not set") {
		t.Fatalf("expected default warning, got %q", buf.String())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TRIP_TIMEZONE", "Asia/Tokyo")
	t.Setenv("VALIDATION_CONCURRENCY", "8")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadFrom(log.New(&bytes.Buffer{}, "", 0), t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || cfg.ValidationConcurrency != 8 || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Location.String() != "Asia/Tokyo" {
		t.Fatalf("expected Asia/Tokyo, got %v", cfg.Location)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "port: \"7070\"\ntrip_timezone: Europe/Paris\nvalidation_concurrency: 2\n")
	t.Setenv("VALIDATION_CONCURRENCY", "6")

	cfg, err := LoadFrom(log.New(&bytes.Buffer{}, "", 0), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "7070" || cfg.Location.String() != "Europe/Paris" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ValidationConcurrency != 6 {
		t.Fatalf("expected environment to override file, got %d", cfg.ValidationConcurrency)
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	nested := filepath.Join(dir, "cmd", "api")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, dir, ".env", "# local\nexport DATABASE_URL=\"postgres://dotenv@localhost/trip\"\nPORT=6060\n")
	t.Setenv("PORT", "5050")

	var buf bytes.Buffer
	cfg, err := LoadFrom(log.New(&buf, "", 0), nested)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.DatabaseURL != "postgres://dotenv@localhost/trip" {
		t.Fatalf("expected DATABASE_URL from .env, got %q", cfg.DatabaseURL)
	}
	if cfg.Port != "5050" {
		t.Fatalf(".env must not override the environment, got %q", cfg.Port)
	}
	if !strings.Contains(buf.String(), "loaded env from") {
		t.Fatalf("expected load message, got %q", buf.String())
	}
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown timezone", key: "TRIP_TIMEZONE", val: "Mars/Olympus"},
		{name: "zero concurrency", key: "VALIDATION_CONCURRENCY", val: "0"},
		{name: "negative shutdown", key: "SHUTDOWN_TIMEOUT", val: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadFrom(log.New(&bytes.Buffer{}, "", 0), t.TempDir()); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
