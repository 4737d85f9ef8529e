// Package config loads application settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting for the application.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"connectrandom.db"`
	JWTSecret    string        `env:"JWT_SECRET"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"true"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"12"`
	OtpTTL       time.Duration `env:"OTP_TTL" envDefault:"5m"`

	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPFrom     string        `env:"SMTP_FROM"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"20s"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.OtpTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive, got %s", c.OtpTTL)
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST environment variable is required")
	}
	if c.SMTPFrom == "" {
		return fmt.Errorf("SMTP_FROM environment variable is required")
	}
	return nil
}
