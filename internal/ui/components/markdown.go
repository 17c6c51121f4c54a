// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// maxMarkdownCache bounds the rendered-text cache.
const maxMarkdownCache = 256

// Markdown renders bot replies through glamour. Output is cached per source
// text until the style or width changes. Not safe for concurrent use; the
// chat model owns it.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light", ...) wrapping at width.
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{style: style, width: width}
	m.reset()
	return m
}

// SetStyle switches the glamour style.
func (m *Markdown) SetStyle(style string) {
	if style == m.style {
		return
	}
	m.style = style
	m.reset()
}

// SetWidth changes the wrap width.
func (m *Markdown) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.reset()
}

// Style returns the current glamour style name.
func (m *Markdown) Style() string { return m.style }

func (m *Markdown) reset() {
	m.cache = make(map[string]string)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		// Plain text fallback.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render returns text as styled terminal output, or text unchanged when
// glamour cannot render it.
func (m *Markdown) Render(text string) string {
	if out, ok := m.cache[text]; ok {
		return out
	}
	out := text
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	if len(m.cache) >= maxMarkdownCache {
		m.cache = make(map[string]string)
	}
	m.cache[text] = out
	return out
}
