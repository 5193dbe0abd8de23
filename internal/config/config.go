// Package config loads the clipping profile and the environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoReferenceDate is returned when a run has neither a reference date nor
// the last-24-hours mode.
var ErrNoReferenceDate = errors.New("a reference date (YYYY-MM-DD) or the last-24-hours mode is required")

const dateLayout = "2006-01-02"

type Config struct {
	// Profile settings
	ProfilePath string
	Profile     Profile

	// Time settings
	UTCOffsetHours int    // fixed offset of the reference zone (-3 for Brasília)
	WindowClock    string // local clock time closing the window, "HH:MM"

	// Link settings
	ResolveLinks      bool
	ShortenLinks      bool
	ShortenerEndpoint string

	// Telegram settings
	TelegramToken  string
	TelegramChatID string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ProfilePath:       "configs/clipping.yaml",
		UTCOffsetHours:    -3,
		WindowClock:       "08:30",
		ShortenerEndpoint: "https://tinyurl.com/api-create.php",
		RequestTimeout:    5 * time.Second,
	}

	cfg.ProfilePath = getEnvOrDefault("CLIPPING_CONFIG", cfg.ProfilePath)
	cfg.UTCOffsetHours = getEnvIntOrDefault("UTC_OFFSET_HOURS", cfg.UTCOffsetHours)
	cfg.WindowClock = getEnvOrDefault("WINDOW_CLOCK", cfg.WindowClock)
	cfg.ShortenerEndpoint = getEnvOrDefault("SHORTENER_ENDPOINT", cfg.ShortenerEndpoint)

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if os.Getenv("RESOLVE_LINKS") == "true" {
		cfg.ResolveLinks = true
	}
	if os.Getenv("SHORTEN_LINKS") == "true" {
		cfg.ShortenLinks = true
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	profile, err := LoadProfile(cfg.ProfilePath)
	switch {
	case errors.Is(err, os.ErrNotExist) && os.Getenv("CLIPPING_CONFIG") == "":
		profile = DefaultProfile()
	case err != nil:
		return nil, fmt.Errorf("load profile %s: %w", cfg.ProfilePath, err)
	}
	cfg.Profile = profile
	if profile.Window.Clock != "" && os.Getenv("WINDOW_CLOCK") == "" {
		cfg.WindowClock = profile.Window.Clock
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("UTC_OFFSET_HOURS must be between -12 and 14, got %d", c.UTCOffsetHours)
	}
	if _, err := c.WindowEnd(); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.ShortenLinks && c.ShortenerEndpoint == "" {
		return fmt.Errorf("SHORTENER_ENDPOINT is required when SHORTEN_LINKS is set")
	}
	return c.Profile.Validate()
}

// Location is the fixed-offset reference zone.
func (c *Config) Location() *time.Location {
	return FixedZone(c.UTCOffsetHours)
}

// FixedZone names the zone after its offset, e.g. "UTC-3".
func FixedZone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// WindowEnd returns the window clock as an offset from local midnight.
func (c *Config) WindowEnd() (time.Duration, error) {
	return ParseClock(c.WindowClock)
}

// ParseClock parses "HH:MM" into a duration since midnight.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("window clock %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("window clock %q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("window clock %q has an invalid minute", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// ParseReferenceDate parses a YYYY-MM-DD date as midnight in loc.
func ParseReferenceDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoReferenceDate
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference date %q: %w", s, err)
	}
	return d, nil
}
