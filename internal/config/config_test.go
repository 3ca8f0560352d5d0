package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LISTEN_ADDR", "DATABASE_PATH", "SESSION_SECRET", "GIN_MODE", "UPLOAD_DIR",
		"UPLOAD_URL_PATH", "STORAGE_KEY", "REMOTE_URL", "REMOTE_TIMEOUT", "SEED_FILE", "VIEW_CACHE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.StorageKey != "projects-local" {
		t.Fatalf("expected default storage key, got %q", cfg.StorageKey)
	}
	if cfg.RemoteURL != defaultRemoteURL {
		t.Fatalf("expected default remote url, got %q", cfg.RemoteURL)
	}
	if cfg.RemoteTimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.RemoteTimeout)
	}
	if cfg.ViewCacheSize != 1024 {
		t.Fatalf("expected view cache 1024, got %d", cfg.ViewCacheSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("STORAGE_KEY", " gallery ")
	t.Setenv("REMOTE_TIMEOUT", "3")
	t.Setenv("VIEW_CACHE_SIZE", "not-a-number")
	t.Setenv("SEED_FILE", "seed.yaml")

	cfg := Load()
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.ListenAddr)
	}
	if cfg.StorageKey != "gallery" {
		t.Fatalf("expected trimmed key, got %q", cfg.StorageKey)
	}
	if cfg.RemoteTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.RemoteTimeout)
	}
	if cfg.ViewCacheSize != 1024 {
		t.Fatalf("expected fallback view cache size, got %d", cfg.ViewCacheSize)
	}
	if cfg.SeedFile != "seed.yaml" {
		t.Fatalf("expected seed file, got %q", cfg.SeedFile)
	}
}

func TestEnvDurationParsesGoDurations(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT", "1500ms")
	if got := envDuration("REMOTE_TIMEOUT", time.Second); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", got)
	}
	t.Setenv("REMOTE_TIMEOUT", "-5s")
	if got := envDuration("REMOTE_TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("expected fallback for negative duration, got %v", got)
	}
}
