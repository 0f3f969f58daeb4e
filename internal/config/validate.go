package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogFormats = map[string]bool{"text": true, "json": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the configuration for values the resolver cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Authority.BaseURL) == "" {
		return fmt.Errorf("authority.base_url is required")
	}
	parsed, err := url.Parse(c.Authority.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("authority.base_url %q is not a valid URL", c.Authority.BaseURL)
	}
	if c.Authority.MaxAgeDays < 0 {
		return fmt.Errorf("authority.max_age_days must not be negative")
	}
	if c.Authority.RequestTimeout <= 0 {
		return fmt.Errorf("authority.request_timeout must be positive")
	}
	if c.Batch.ProgressEvery <= 0 {
		return fmt.Errorf("batch.progress_every must be positive")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format %q is not supported (text, json)", c.Logging.Format)
	}
	if c.Logging.Level != "" && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
