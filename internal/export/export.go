// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jeranaias/mosdac-chat/internal/model"
	"github.com/jeranaias/mosdac-chat/internal/util"
)

// BaseFilename is the export file name without extension.
const BaseFilename = "mosdac_chat_history"

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts transcript messages to a file format.
type Exporter interface {
	// Export renders messages in display order.
	Export(messages []model.Message) ([]byte, error)

	// FileExtension returns the extension including the dot.
	FileExtension() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures where exports are written.
type Options struct {
	// OutputDir is the directory the file is written to.
	// Default: current working directory
	OutputDir string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// Filename returns the fixed file name used for exporter.
func Filename(exporter Exporter) string {
	return BaseFilename + exporter.FileExtension()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Write renders messages with exporter and writes them to w.
func Write(w io.Writer, messages []model.Message, exporter Exporter) error {
	content, err := exporter.Export(messages)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ToFile writes messages to <OutputDir>/mosdac_chat_history<ext>, replacing
// any earlier export. Returns the path written.
func ToFile(messages []model.Message, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	dir := strings.TrimSpace(opts.OutputDir)
	if dir == "" {
		dir = "."
	}

	content, err := exporter.Export(messages)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	outputPath := filepath.Join(dir, Filename(exporter))
	if err := util.WriteFileAtomic(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// ForFormat returns the exporter for a format name ("txt", "json", "md").
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "", "txt", "text":
		return NewTextExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "md", "markdown":
		return NewMarkdownExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want txt, json or md)", format)
	}
}
