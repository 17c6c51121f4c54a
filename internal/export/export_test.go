// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mosdac-chat/internal/model"
)

var linePattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] (User|Bot): .*$`)

func sampleMessages() []model.Message {
	ts := time.Date(2025, 7, 15, 20, 0, 0, 0, time.Local)
	msgs := []model.Message{
		{Role: model.RoleBot, Text: "Welcome to the MOSDAC Chatbot!", Timestamp: ts},
		{Role: model.RoleUser, Text: "INSAT-3D", Timestamp: ts.Add(5 * time.Second)},
		{Role: model.RoleBot, Text: "It is a\nweather satellite.", Timestamp: ts.Add(7 * time.Second)},
		{Role: model.RoleBot, Text: "Error: Service unavailable.", Timestamp: ts.Add(9 * time.Second), IsError: true},
	}
	return msgs
}

// =============================================================================
// TEXT EXPORTER TESTS
// =============================================================================

func TestTextExporter_OneLinePerMessage(t *testing.T) {
	msgs := sampleMessages()

	out, err := NewTextExporter().Export(msgs)
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	require.Len(t, lines, len(msgs))
	for _, line := range lines {
		assert.Regexp(t, linePattern, line)
	}
	assert.Equal(t, "[20:00:05] User: INSAT-3D", lines[1])
	assert.Equal(t, "[20:00:07] Bot: It is a weather satellite.", lines[2])
	assert.False(t, strings.HasSuffix(string(out), "\n"))
}

func TestTextExporter_Empty(t *testing.T) {
	out, err := NewTextExporter().Export(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// =============================================================================
// FILE TESTS
// =============================================================================

func TestToFile_FixedNameAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{OutputDir: filepath.Join(dir, "exports")}

	path, err := ToFile(sampleMessages(), NewTextExporter(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "mosdac_chat_history.txt"), path)

	path2, err := ToFile(sampleMessages()[:1], NewTextExporter(), opts)
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[20:00:00] Bot: Welcome to the MOSDAC Chatbot!", string(data))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleMessages()[:2], NewTextExporter()))
	assert.Equal(t, 2, len(strings.Split(buf.String(), "\n")))
}

// =============================================================================
// OTHER FORMATS
// =============================================================================

func TestJSONExporter_KeepsFullText(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleMessages())
	require.NoError(t, err)

	var doc struct {
		Count    int             `json:"count"`
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, 4, doc.Count)
	assert.Equal(t, "It is a\nweather satellite.", doc.Messages[2].Text)
	assert.True(t, doc.Messages[3].IsError)
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter().Export(sampleMessages())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# MOSDAC Chat History"))
	assert.Contains(t, md, "### User · 20:00:05")
	assert.Contains(t, md, "> INSAT-3D")
	assert.Contains(t, md, "(error)")
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		ok     bool
	}{
		{"", ".txt", true},
		{"txt", ".txt", true},
		{"JSON", ".json", true},
		{".md", ".md", true},
		{"html", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			exp, err := ForFormat(tc.format)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ext, exp.FileExtension())
			assert.Equal(t, "mosdac_chat_history"+tc.ext, Filename(exp))
		})
	}
}
