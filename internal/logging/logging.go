// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the application's zap logger.
//
// The full-screen UI owns the terminal, so logs go to a file by default.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Special path values.
const (
	PathStderr = "-"
	PathOff    = "off"
)

// DefaultPath returns ~/.mosdac/mosdac.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mosdac", "mosdac.log"), nil
}

// New creates a JSON logger at level ("debug", "info", "warn", "error")
// writing to path. An empty path means DefaultPath.
func New(level, path string) (*zap.Logger, error) {
	path = strings.TrimSpace(path)
	if strings.EqualFold(path, PathOff) {
		return zap.NewNop(), nil
	}

	atom, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	output := "stderr"
	if path != PathStderr {
		if path == "" {
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		if err := prepareFile(path); err != nil {
			return nil, err
		}
		output = path
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.Sampling = nil
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.Int("pid", os.Getpid())), nil
}

// prepareFile creates the log file owner-only before zap opens it.
func prepareFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	return f.Close()
}
