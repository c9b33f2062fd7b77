// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

// Package config loads runtime configuration from defaults, an optional
// YAML file, environment variables, and command-line flags, in that
// order of increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// envPrefix is the prefix for environment overrides, e.g.
// TRIPDECK_DATABASE_URL maps to database_url.
const envPrefix = "TRIPDECK_"

// Config holds runtime settings for the TripDeck auth backend.
type Config struct {
	// ListenAddr is the bind address for the public HTTP API.
	ListenAddr string `koanf:"listen_addr"`

	// MetricsAddr is the bind address for metrics and health probes.
	// Empty disables the observability server.
	MetricsAddr string `koanf:"metrics_addr"`

	// DatabaseURL is the PostgreSQL connection string (pgx).
	DatabaseURL string `koanf:"database_url"`

	// TokenSecret signs bearer tokens (HMAC-SHA256). It has no default;
	// it must be supplied via file, environment, or flag.
	TokenSecret string `koanf:"token_secret"`

	// TokenValidity is how long issued tokens stay valid.
	TokenValidity time.Duration `koanf:"token_validity"`

	// LogFormat is "json" or "text".
	LogFormat string `koanf:"log_format"`

	// LogLevel is the minimum level to log: debug, info, warn or error.
	LogLevel string `koanf:"log_level"`
}

// defaults are the base layer of the configuration.
var defaults = map[string]any{
	"listen_addr":    ":8080",
	"metrics_addr":   "127.0.0.1:9100",
	"database_url":   "",
	"token_secret":   "",
	"token_validity": "24h",
	"log_format":     "json",
	"log_level":      "info",
}

// Load builds a Config from defaults, then an optional YAML file, then
// TRIPDECK_* environment variables, then the given flag set (highest
// precedence). path and flags may be empty/nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, oops.Code("CONFIG_DEFAULTS_FAILED").Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		// Flag names use dashes (listen-addr); config keys use
		// underscores (listen_addr).
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	return cfg, nil
}

// Validate checks that the configuration can run the serve command.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("listen_addr is required")
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database_url is required")
	}
	if c.TokenSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("token_secret is required; set TRIPDECK_TOKEN_SECRET or the token-secret flag")
	}
	if c.TokenValidity <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token_validity must be positive, got %s", c.TokenValidity)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}
