package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the sliding-window booking limiter.  Limit is the
// number of submissions allowed per identifier inside Window.  StorageKey is
// the fixed key under which the limiter persists its attempt map.
type RateLimitConfig struct {
	Limit      int
	Window     time.Duration
	StorageKey string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Defaults mirror the widget's shipped values: three bookings per hour.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Limit:      envInt("RATE_LIMIT_ATTEMPTS", 3),
		Window:     envDur("RATE_LIMIT_WINDOW", time.Hour),
		StorageKey: envStr("RATE_LIMIT_STORAGE_KEY", "fh-booking-attempts"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window < 0 {
		cfg.Window = 0
	}
	return cfg
}

// LoginLimitConfig controls the per-IP limiter guarding the magic-link
// endpoint.  It shares Redis with the booking limiter but uses its own
// prefix so keys never collide.
type LoginLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadLoginLimitConfig reads environment variables to build a
// LoginLimitConfig.  Defaults allow five link requests per IP per hour.
func LoadLoginLimitConfig() LoginLimitConfig {
	cfg := LoginLimitConfig{
		Enabled: envBool("LOGIN_LIMIT_ENABLED", true),
		Limit:   envInt("LOGIN_LIMIT_ATTEMPTS", 5),
		Window:  envDur("LOGIN_LIMIT_WINDOW", time.Hour),
		Prefix:  envStr("LOGIN_LIMIT_PREFIX", "fh-login"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Hour
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
