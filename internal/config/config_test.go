package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("missing secret fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Error("expected error for missing JWT_SECRET")
		}
	})

	t.Run("short secret fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "too-short")
		if _, err := Load(); err == nil {
			t.Error("expected error for short JWT_SECRET")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":8080" {
			t.Errorf("Addr = %s, want :8080", cfg.Addr)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %s, want 24h", cfg.TokenTTL)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("ADDR", ":9999")
		t.Setenv("TOKEN_TTL", "1h")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":9999" {
			t.Errorf("Addr = %s, want :9999", cfg.Addr)
		}
		if cfg.TokenTTL != time.Hour {
			t.Errorf("TokenTTL = %s, want 1h", cfg.TokenTTL)
		}
	})

	t.Run("bad duration falls back", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("TOKEN_TTL", "not-a-duration")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %s, want fallback 24h", cfg.TokenTTL)
		}
	})
}
