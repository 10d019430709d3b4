package server

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}

		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}

		if cfg.HealthPort != 8081 {
			t.Errorf("expected health port 8081, got %d", cfg.HealthPort)
		}

		if cfg.RateLimit != 100 {
			t.Errorf("expected rate limit 100, got %v", cfg.RateLimit)
		}

		if cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit burst 200, got %d", cfg.RateLimitBurst)
		}

		if cfg.RequestTimeout != 10*time.Second {
			t.Errorf("expected request timeout 10s, got %v", cfg.RequestTimeout)
		}

		if cfg.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
		}

		if cfg.WriteTimeout != 30*time.Second {
			t.Errorf("expected write timeout 30s, got %v", cfg.WriteTimeout)
		}

		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("port from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")

		cfg := parseConfig()
		if cfg.Port != 9090 {
			t.Errorf("expected port 9090, got %d", cfg.Port)
		}
	})

	t.Run("invalid port ignored", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")

		cfg := parseConfig()
		if cfg.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Port)
		}
	})

	t.Run("request timeout from environment", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

		cfg := parseConfig()
		if cfg.RequestTimeout != 3*time.Second {
			t.Errorf("expected request timeout 3s, got %v", cfg.RequestTimeout)
		}
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

		cfg := parseConfig()
		if cfg.ShutdownTimeout != 5*time.Second {
			t.Errorf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
		}
	})
}
