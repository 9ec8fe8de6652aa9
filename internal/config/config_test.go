package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("fails without a session secret", func(t *testing.T) {
		t.Setenv("ADMIN_SESSION_SECRET", "")
		t.Setenv("ADMIN_TOTP_SECRET", "JBSWY3DPEHPK3PXP")

		if _, err := Load(); err == nil {
			t.Fatal("expected load without ADMIN_SESSION_SECRET to fail")
		}
	})

	t.Run("fails without a TOTP secret", func(t *testing.T) {
		t.Setenv("ADMIN_SESSION_SECRET", "session-secret")
		t.Setenv("ADMIN_TOTP_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected load without ADMIN_TOTP_SECRET to fail")
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("ADMIN_SESSION_SECRET", "session-secret")
		t.Setenv("ADMIN_TOTP_SECRET", "JBSWY3DPEHPK3PXP")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Admin.SessionTTL != 12*time.Hour {
			t.Fatalf("expected default session TTL of 12h, got %v", cfg.Admin.SessionTTL)
		}
		if cfg.Admin.TOTPLabel != "Portfolio Admin" || cfg.Admin.TOTPIssuer != "Portfolio" {
			t.Fatalf("unexpected TOTP defaults: %q / %q", cfg.Admin.TOTPLabel, cfg.Admin.TOTPIssuer)
		}
		if cfg.Admin.LoginRatePerMinute != 10 {
			t.Fatalf("expected default login rate limit of 10, got %d", cfg.Admin.LoginRatePerMinute)
		}
		if cfg.Server.Port != "8080" {
			t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("ADMIN_SESSION_SECRET", "session-secret")
		t.Setenv("ADMIN_TOTP_SECRET", "JBSWY3DPEHPK3PXP")
		t.Setenv("ADMIN_SESSION_TTL", "3600")
		t.Setenv("ADMIN_LOGIN_RATE_LIMIT", "3")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Admin.SessionTTL != time.Hour {
			t.Fatalf("expected 1h session TTL, got %v", cfg.Admin.SessionTTL)
		}
		if cfg.Admin.LoginRatePerMinute != 3 {
			t.Fatalf("expected login rate limit 3, got %d", cfg.Admin.LoginRatePerMinute)
		}
		if cfg.Server.Port != "9090" {
			t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
		}
	})
}
