package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !strings.HasPrefix(c.Auth.AdminPasswordHash, "$2") {
		return fmt.Errorf("auth.admin_password_hash must be a bcrypt hash")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}

	if c.Telegram.Token != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.token is set")
	}

	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("report.timezone: %w", err)
	}

	return nil
}

// Location resolves the configured report timezone. Validate guarantees the
// zone loads, so errors here only happen on an unvalidated Config.
func (c ReportConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
