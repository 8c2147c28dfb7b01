package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically;
// callers that override fields afterwards should call it again.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Uploads.Backend {
	case "db":
	case "s3":
		if c.Uploads.S3.Bucket == "" || c.Uploads.S3.Region == "" {
			return fmt.Errorf("uploads.s3: bucket and region are required")
		}
	default:
		return fmt.Errorf("uploads.backend must be db or s3 (got %q)", c.Uploads.Backend)
	}

	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("notify.timeout must be > 0 (got %s)", c.Notify.Timeout)
	}

	t := c.Twilio
	if (t.AccountSID != "" || t.AuthToken != "" || t.From != "") && !t.Enabled() {
		return fmt.Errorf("twilio: account_sid, auth_token and from must be set together")
	}
	m := c.Mailgun
	if (m.Domain != "" || m.APIKey != "" || m.SenderEmail != "") && !m.Enabled() {
		return fmt.Errorf("mailgun: domain, api_key and sender_email must be set together")
	}

	if c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit: rate and burst must be > 0")
	}

	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
