// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jeranaias/mosdac-chat/internal/export"
	"github.com/jeranaias/mosdac-chat/internal/session"
)

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Host == "" {
		add("server.base_url", "invalid URL '%s'", c.Server.BaseURL)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("server.base_url", "scheme must be http or https, got '%s'", u.Scheme)
	}
	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 600 {
		add("server.timeout_secs", "must be between 1 and 600, got %d", c.Server.TimeoutSecs)
	}

	if _, err := session.ParseVariant(c.UI.Variant); err != nil {
		add("ui.variant", "invalid variant '%s', must be one of: basic, full", c.UI.Variant)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)
	}
	if _, err := export.ForFormat(c.UI.ExportFormat); err != nil {
		add("ui.export_format", "invalid format '%s', must be one of: txt, json, md", c.UI.ExportFormat)
	}
	if c.UI.ToastSecs < 1 || c.UI.ToastSecs > 60 {
		add("ui.toast_secs", "must be between 1 and 60, got %d", c.UI.ToastSecs)
	}

	if c.Suggest.MinChars < 1 || c.Suggest.MinChars > 20 {
		add("suggest.min_chars", "must be between 1 and 20, got %d", c.Suggest.MinChars)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
