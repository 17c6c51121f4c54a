// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBaseURL     = "MOSDAC_BASE_URL"
	EnvTimeoutSecs = "MOSDAC_TIMEOUT_SECS"
	EnvVariant     = "MOSDAC_VARIANT"
	EnvTheme       = "MOSDAC_THEME"
	EnvExportDir   = "MOSDAC_EXPORT_DIR"
	EnvExportFmt   = "MOSDAC_EXPORT_FORMAT"
	EnvLogLevel    = "MOSDAC_LOG_LEVEL"
	EnvLogPath     = "MOSDAC_LOG_PATH"
	EnvDynamic     = "MOSDAC_DYNAMIC_SUGGESTIONS"
)

// loadDotEnv reads .env from the working directory into the process
// environment. Variables already set are not replaced.
func loadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnvOverrides applies MOSDAC_* environment variables to the config.
func (c *Config) ApplyEnvOverrides() {
	c.Server.BaseURL = getEnvDefault(EnvBaseURL, c.Server.BaseURL)
	c.Server.TimeoutSecs = getEnvIntDefault(EnvTimeoutSecs, c.Server.TimeoutSecs)
	c.UI.Variant = getEnvDefault(EnvVariant, c.UI.Variant)
	c.UI.Theme = getEnvDefault(EnvTheme, c.UI.Theme)
	c.UI.ExportDir = getEnvDefault(EnvExportDir, c.UI.ExportDir)
	c.UI.ExportFormat = getEnvDefault(EnvExportFmt, c.UI.ExportFormat)
	c.Log.Level = getEnvDefault(EnvLogLevel, c.Log.Level)
	c.Log.Path = getEnvDefault(EnvLogPath, c.Log.Path)
	c.Suggest.Dynamic = getEnvBoolDefault(EnvDynamic, c.Suggest.Dynamic)
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
