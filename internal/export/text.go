// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/mosdac-chat/internal/model"
)

// TextExporter writes one "[timestamp] Role: text" line per message.
// Lines are joined with "\n" and there is no trailing newline. Line breaks
// inside a message are folded into spaces.
type TextExporter struct{}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export implements Exporter.
func (e *TextExporter) Export(messages []model.Message) ([]byte, error) {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = msg.Line()
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}
