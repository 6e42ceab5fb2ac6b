// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "ROCKETDESK_CONFIG"

// Config is the client configuration.
type Config struct {
	// ServerURL is the base URL of the Rocket.Chat server
	// (e.g., "https://chat.example.com").
	ServerURL string `yaml:"server_url"`

	// TokenFile overrides the saved-token location. Empty means the
	// default <config-dir>/rocketdesk/.auth_token.
	TokenFile string `yaml:"token_file"`

	// RequestTimeout bounds each HTTP request. Default: 30s
	RequestTimeout string `yaml:"request_timeout"`

	// RefreshInterval is the poll period for "rocketdesk watch".
	// Default: 1m
	RefreshInterval string `yaml:"refresh_interval"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is "text", "json", or "auto" (text on a terminal, JSON
	// otherwise). Default: auto
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		RequestTimeout:  "30s",
		RefreshInterval: "1m",
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads the file named by ROCKETDESK_CONFIG, or returns Default
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path on top of Default, expands
// variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// RequestTimeoutDuration returns RequestTimeout parsed. Call Validate
// first; an unparseable value yields zero.
func (c *Config) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// RefreshIntervalDuration returns RefreshInterval parsed. Call Validate
// first; an unparseable value yields zero.
func (c *Config) RefreshIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerURL != "" {
		parsed, err := url.Parse(c.ServerURL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("server_url: %w", err))
		case parsed.Scheme != "http" && parsed.Scheme != "https":
			errs = append(errs, fmt.Errorf("server_url: scheme must be http or https, got %q", parsed.Scheme))
		case parsed.Host == "":
			errs = append(errs, fmt.Errorf("server_url: missing host"))
		}
	}

	if err := validatePositiveDuration("request_timeout", c.RequestTimeout); err != nil {
		errs = append(errs, err)
	}
	if err := validatePositiveDuration("refresh_interval", c.RefreshInterval); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: invalid level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: invalid format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func validatePositiveDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s: must be positive, got %s", field, value)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.TokenFile = expandVars(c.TokenFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, consulting vars before
// the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return parts[2]
	})
}
