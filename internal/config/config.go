// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/gommon/bytes"
)

// Config holds the runtime settings of the HTTP service.
type Config struct {
	// Host is the interface to bind, 0.0.0.0 for all.
	Host string `validate:"required"`

	// Port is the TCP port to listen on.
	Port int `validate:"min=1,max=65535"`

	// MaxUpload limits request bodies, in echo's size notation ("32M").
	MaxUpload string `validate:"required"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`

	// LogLevel enables debug logging when set to "debug".
	LogLevel string `validate:"omitempty,oneof=debug info"`

	// SentryDSN turns on error reporting when non-empty.
	SentryDSN string `validate:"omitempty,url"`

	// Environment is reported to Sentry.
	Environment string
}

// Defaults returns the configuration used when no variables are set.
func Defaults() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         5000,
		MaxUpload:    "32M",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Environment:  "local",
	}
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Defaults()
	cfg.Host = GetEnv("HOST", cfg.Host)
	cfg.MaxUpload = GetEnv("DIAMOND_MAX_UPLOAD", cfg.MaxUpload)
	cfg.LogLevel = GetEnv("DIAMOND_LOG_LEVEL", cfg.LogLevel)
	cfg.SentryDSN = GetEnv("SENTRY_DSN", cfg.SentryDSN)
	cfg.Environment = GetEnv("ENV", cfg.Environment)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	var err error
	if cfg.ReadTimeout, err = durationEnv("DIAMOND_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = durationEnv("DIAMOND_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that MaxUpload parses as a size.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := bytes.Parse(c.MaxUpload); err != nil {
		return fmt.Errorf("invalid DIAMOND_MAX_UPLOAD %q: %w", c.MaxUpload, err)
	}
	return nil
}

// Addr returns the listen address as host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
