package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/msomdec/connectrandom/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.OtpTTL != 5*time.Minute {
		t.Fatalf("expected default OTP TTL 5m, got %s", cfg.OtpTTL)
	}
	if cfg.SMTPTimeout != 20*time.Second {
		t.Fatalf("expected default SMTP timeout 20s, got %s", cfg.SMTPTimeout)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_BadBcryptCost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "20")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for out-of-range BCRYPT_COST")
	}
}
