// Package config loads and validates the houghd runtime configuration from
// the environment.
//
// All settings are read from HOUGHD_* environment variables, with an
// optional .env file loaded first. Missing settings fall back to defaults
// suitable for local use.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vinay1337/hough-server/internal/protocol"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultReadTimeout   = 30 * time.Second
	DefaultClientTimeout = 60 * time.Second
)

// Config is the validated runtime configuration.
type Config struct {
	// SocketPath is the Unix domain socket the server binds.
	SocketPath string

	// Workers bounds the number of ROIs processed concurrently per request.
	Workers int

	// ReadTimeout is the per-connection read deadline. A client that stays
	// silent longer than this is dropped.
	ReadTimeout time.Duration

	// ClientTimeout is the default dial+IO deadline used by the detect
	// client.
	ClientTimeout time.Duration

	// OpsAddr is the listen address for the operational HTTP server
	// (/healthz, /metrics). Empty disables it.
	OpsAddr string

	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string
}

// Load builds a Config from the environment.
//
// A .env file in the working directory is honored when present but is never
// required. Invalid values fail loading rather than being silently replaced.
func Load() (Config, error) {
	// Best-effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		SocketPath:    protocol.DefaultSocketPath,
		Workers:       runtime.NumCPU(),
		ReadTimeout:   DefaultReadTimeout,
		ClientTimeout: DefaultClientTimeout,
		LogLevel:      "info",
	}

	if v := os.Getenv("HOUGHD_SOCKET"); v != "" {
		cfg.SocketPath = v
	}
	if v := os.Getenv("HOUGHD_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("HOUGHD_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("HOUGHD_READ_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("HOUGHD_READ_TIMEOUT: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if v := os.Getenv("HOUGHD_CLIENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("HOUGHD_CLIENT_TIMEOUT: %w", err)
		}
		cfg.ClientTimeout = d
	}
	if v := os.Getenv("HOUGHD_OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := os.Getenv("HOUGHD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants the rest of the system relies on.
func (c Config) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket path must not be empty")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be > 0, got %s", c.ReadTimeout)
	}
	if c.ClientTimeout <= 0 {
		return fmt.Errorf("client timeout must be > 0, got %s", c.ClientTimeout)
	}
	return nil
}
