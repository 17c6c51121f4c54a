// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/mosdac-chat/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the full message records, including error flags and
// untouched multi-line text.
type JSONExporter struct {
	now func() time.Time
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{now: time.Now}
}

type jsonDocument struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Messages   []model.Message `json:"messages"`
}

// Export implements Exporter.
func (e *JSONExporter) Export(messages []model.Message) ([]byte, error) {
	if messages == nil {
		messages = []model.Message{}
	}
	return json.MarshalIndent(jsonDocument{
		ExportedAt: e.now(),
		Count:      len(messages),
		Messages:   messages,
	}, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
