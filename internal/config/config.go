// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/mosdac-chat/internal/session"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	Server   ServerConfig     `toml:"server"`
	UI       UIConfig         `toml:"ui"`
	Features FeatureOverrides `toml:"features"`
	Suggest  SuggestConfig    `toml:"suggest"`
	Log      LogConfig        `toml:"log"`

	// path is the file the config was loaded from, if any.
	path string
}

// ServerConfig describes the chatbot service.
type ServerConfig struct {
	// BaseURL is the service root; endpoints live under /api.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each request.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains front-end settings.
type UIConfig struct {
	// Variant is the preset: "basic" or "full".
	Variant string `toml:"variant"`
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// WelcomeDialog shows the welcome dialog at start.
	WelcomeDialog bool `toml:"welcome_dialog"`
	// ExportDir is where mosdac_chat_history is written.
	ExportDir string `toml:"export_dir"`
	// ExportFormat is "txt", "json" or "md".
	ExportFormat string `toml:"export_format"`
	// ToastSecs is how long notifications stay visible.
	ToastSecs int `toml:"toast_secs"`
}

// FeatureOverrides switches single features on or off regardless of the
// variant. Unset keys keep the variant's value.
type FeatureOverrides struct {
	Progress     *bool `toml:"progress"`
	Export       *bool `toml:"export"`
	Feedback     *bool `toml:"feedback"`
	Autocomplete *bool `toml:"autocomplete"`
	ThemeToggle  *bool `toml:"theme_toggle"`
}

// SuggestConfig controls search suggestions.
type SuggestConfig struct {
	// Dynamic queries the service; false filters the static list only.
	Dynamic bool `toml:"dynamic"`
	// MinChars is the shortest input that triggers a lookup.
	MinChars int `toml:"min_chars"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `toml:"level"`
	// Path is the log file; "-" logs to stderr and "off" disables logging.
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			Variant:       string(session.VariantFull),
			Theme:         "auto",
			WelcomeDialog: true,
			ExportDir:     ".",
			ExportFormat:  "txt",
			ToastSecs:     3,
		},
		Suggest: SuggestConfig{
			Dynamic:  true,
			MinChars: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the mosdac configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mosdac"), nil
}

// ConfigPath returns the default TOML config path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config at path, or the default path when empty. A missing
// file is not an error. The .env file and environment overrides are applied
// before validation.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err == nil {
			path = p
		}
	}
	loadDotEnv()
	return LoadFromPath(path)
}

// LoadFromPath reads path (if it exists) over the defaults, applies
// environment overrides and validates. It does not read .env.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	c.Server.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Server.BaseURL), "/")
	c.UI.Variant = strings.ToLower(strings.TrimSpace(c.UI.Variant))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.UI.ExportFormat = strings.ToLower(strings.TrimSpace(c.UI.ExportFormat))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.UI.ExportDir == "" {
		c.UI.ExportDir = "."
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// ToastDuration returns how long notifications stay visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSecs) * time.Second
}

// Variant returns the parsed UI variant.
func (c *Config) Variant() session.Variant {
	v, err := session.ParseVariant(c.UI.Variant)
	if err != nil {
		return session.VariantFull
	}
	return v
}

// FeatureSet returns the variant preset with the [features] overrides applied.
func (c *Config) FeatureSet() session.Features {
	f := session.FeaturesFor(c.Variant())
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&f.Progress, c.Features.Progress)
	apply(&f.Export, c.Features.Export)
	apply(&f.Feedback, c.Features.Feedback)
	apply(&f.Autocomplete, c.Features.Autocomplete)
	apply(&f.ThemeToggle, c.Features.ThemeToggle)
	return f
}

// String renders the config as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return sb.String()
}
