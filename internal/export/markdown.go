// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/mosdac-chat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a heading per message followed by its text.
// Bot answers are often markdown already, so they are kept verbatim.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(messages []model.Message) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# MOSDAC Chat History\n")

	for _, msg := range messages {
		sb.WriteString("\n### ")
		sb.WriteString(msg.Role.DisplayName())
		sb.WriteString(" · ")
		sb.WriteString(msg.Clock())
		if msg.IsError {
			sb.WriteString(" (error)")
		}
		sb.WriteString("\n\n")

		text := strings.TrimSpace(msg.Text)
		if msg.Role == model.RoleUser {
			// Quote user input so it cannot inject headings.
			text = "> " + strings.ReplaceAll(text, "\n", "\n> ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
