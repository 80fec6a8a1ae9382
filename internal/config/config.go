// internal/config/config.go
//
// Environment-driven configuration for the game server.
// `.env` files are loaded by main via godotenv before Load is called.
//
// Environment variables (defaults in parentheses):
//   PORT (5175), LOG_LEVEL (info), DB_PATH (./data/pillgame.db),
//   CATALOG_FILE (embedded catalog), JWT_SECRET (dev_secret_change_me),
//   SESSION_TTL (24h), SESSION_IDLE_TTL (2h), SESSION_CAPACITY (10000),
//   SWEEP_INTERVAL (10m), CLIENT_ORIGIN (http://localhost:5173),
//   RATE_LIMIT_RPS (10), RATE_LIMIT_BURST (100), NODE_ENV.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config holds every tunable of the server.
type Config struct {
	Port            string
	LogLevel        zerolog.Level
	DBPath          string
	CatalogFile     string
	JWTSecret       string
	SessionTTL      time.Duration // lifetime of a session token
	SessionIdleTTL  time.Duration // idle sessions older than this are swept
	SessionCapacity int
	SweepInterval   time.Duration
	ClientOrigin    string
	RateLimitRPS    float64
	RateLimitBurst  int64
	Production      bool
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	c := Config{
		Port:         Env("PORT", "5175"),
		DBPath:       Env("DB_PATH", "./data/pillgame.db"),
		CatalogFile:  os.Getenv("CATALOG_FILE"),
		JWTSecret:    Env("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin: Env("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
	}

	lvl, err := zerolog.ParseLevel(Env("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"SESSION_TTL", 24 * time.Hour, &c.SessionTTL},
		{"SESSION_IDLE_TTL", 2 * time.Hour, &c.SessionIdleTTL},
		{"SWEEP_INTERVAL", 10 * time.Minute, &c.SweepInterval},
	}
	for _, d := range durations {
		v, err := envDuration(d.key, d.def)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}

	if c.SessionCapacity, err = envInt("SESSION_CAPACITY", 10000); err != nil {
		return Config{}, err
	}
	burst, err := envInt("RATE_LIMIT_BURST", 100)
	if err != nil {
		return Config{}, err
	}
	c.RateLimitBurst = int64(burst)

	c.RateLimitRPS = 10
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		c.RateLimitRPS = f
	}

	if c.Production && c.JWTSecret == "dev_secret_change_me" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set when NODE_ENV=production")
	}
	return c, nil
}

// Env returns the value of k or def if unset/empty.
func Env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", k, v)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", k, v)
	}
	return d, nil
}
