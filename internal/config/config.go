// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package config loads application configuration.
//
// Values are merged from three layers, later layers winning: built-in
// defaults, an optional YAML file, and command-line flags.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Defaults applied before any file or flag values.
const (
	DefaultListenAddr  = ":8000"
	DefaultMetricsAddr = ":9090"
	DefaultLogFormat   = "text"
	DefaultCookieName  = "quizforge_session"

	// DefaultPicturesDir empty means the XDG data directory is used.
	DefaultPicturesDir = ""
)

// Config holds all runtime settings.
type Config struct {
	ListenAddr       string `koanf:"listen_addr"`
	MetricsAddr      string `koanf:"metrics_addr"`
	DatabaseURL      string `koanf:"database_url"`
	LogFormat        string `koanf:"log_format"`
	RegistrationOpen bool   `koanf:"registration_open"`
	PicturesDir      string `koanf:"pictures_dir"`
	CookieName       string `koanf:"cookie_name"`
}

// Load builds a Config from defaults, the YAML file at path, and flags.
// An empty path skips the file layer; a nonexistent file at an explicit
// path is an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"listen_addr":       DefaultListenAddr,
		"metrics_addr":      DefaultMetricsAddr,
		"database_url":      "",
		"log_format":        DefaultLogFormat,
		"registration_open": true,
		"pictures_dir":      DefaultPicturesDir,
		"cookie_name":       DefaultCookieName,
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, oops.Code("CONFIG_DEFAULTS_FAILED").With("key", key).Wrap(err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, oops.Code("CONFIG_FILE_MISSING").With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ListenAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("listen_addr must not be empty")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return oops.Code("CONFIG_INVALID").Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.CookieName == "" {
		return oops.Code("CONFIG_INVALID").Errorf("cookie_name must not be empty")
	}
	return nil
}

// RegisterFlags declares the command-line flags Load understands. Flag
// names use dashes; posflag maps them onto the underscore config keys.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("listen_addr", DefaultListenAddr, "HTTP listen address")
	flags.String("metrics_addr", DefaultMetricsAddr, "Prometheus metrics listen address")
	flags.String("database_url", "", "PostgreSQL connection URL")
	flags.String("log_format", DefaultLogFormat, "log output format (text or json)")
	flags.Bool("registration_open", true, "allow new account registration")
	flags.String("pictures_dir", DefaultPicturesDir, "profile picture storage directory (default: XDG data dir)")
	flags.String("cookie_name", DefaultCookieName, "session cookie name")
}
