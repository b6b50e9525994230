package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("addr = %q, want 0.0.0.0:8000", cfg.Addr())
	}
	if cfg.CPUSample() != 100*time.Millisecond {
		t.Errorf("cpu sample = %v, want 100ms", cfg.CPUSample())
	}
	if cfg.AuthEnabled() {
		t.Error("auth should be off without a secret")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostpulse.yml")
	content := []byte("port: 9000\ncpu_sample_interval: 250ms\nauth_secret: file-secret\nallowed_origins:\n  - https://dash.example.com\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Port)
	}
	if cfg.CPUSample() != 250*time.Millisecond {
		t.Errorf("cpu sample = %v, want 250ms", cfg.CPUSample())
	}
	if !cfg.AuthEnabled() {
		t.Error("auth should be on with a secret")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://dash.example.com" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostpulse.yml")
	if err := os.WriteFile(path, []byte("port: 9000\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("HOSTPULSE_PORT", "9100")
	t.Setenv("HOSTPULSE_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("HOSTPULSE_STREAM_INTERVAL", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("origins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.Stream() != 5*time.Second {
		t.Errorf("stream = %v, want 5s", cfg.Stream())
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HOSTPULSE_PORT", "70000")
	if _, err := Load(""); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	cfg := Default()
	cfg.CPUSampleInterval = "banana"
	if cfg.CPUSample() != 100*time.Millisecond {
		t.Errorf("cpu sample = %v, want default fallback", cfg.CPUSample())
	}
}
