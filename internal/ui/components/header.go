// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the title bar.
type Header struct {
	Title   string
	Variant session.Variant
	BaseURL string
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a header for the MOSDAC chatbot.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:   "MOSDAC Chatbot",
		Variant: session.VariantFull,
		Width:   80,
		theme:   theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the title on the left and the backend on the right.
func (h *Header) View() string {
	t := h.theme
	left := t.HeaderTitle.Render(h.Title) + " " + t.HeaderSubtitle.Render(string(h.Variant))
	right := t.HeaderSubtitle.Render(Truncate(h.BaseURL, 40))

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return t.Header.Width(h.Width).Render(left)
	}
	return t.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// ShortcutsFor returns the hints that apply to the enabled features.
func ShortcutsFor(f session.Features, hasChips bool) []Shortcut {
	s := []Shortcut{{"enter", "send"}}
	if hasChips {
		s = append(s, Shortcut{"tab", "suggestions"})
	}
	if f.Autocomplete {
		s = append(s, Shortcut{"^F", "search"})
	}
	s = append(s, Shortcut{"^L", "clear"})
	if f.Export {
		s = append(s, Shortcut{"^E", "export"})
	}
	if f.Feedback {
		s = append(s, Shortcut{"F2", "feedback"})
	}
	if f.ThemeToggle {
		s = append(s, Shortcut{"^T", "theme"})
	}
	s = append(s, Shortcut{"F1", "help"}, Shortcut{"^C", "quit"})
	return s
}

// RenderStatusBar draws as many shortcuts as fit, with a message count on
// the right.
func RenderStatusBar(theme *styles.Theme, shortcuts []Shortcut, right string, width int) string {
	rightPart := theme.ShortcutDesc.Render(right)
	budget := width - lipgloss.Width(rightPart) - 4

	var b strings.Builder
	used := 0
	for _, s := range shortcuts {
		item := theme.ShortcutKey.Render(s.Key) + " " + theme.ShortcutDesc.Render(s.Desc)
		w := lipgloss.Width(item) + 2
		if width > 0 && used+w > budget {
			break
		}
		if used > 0 {
			b.WriteString("  ")
		}
		b.WriteString(item)
		used += w
	}

	left := b.String()
	gap := width - lipgloss.Width(left) - lipgloss.Width(rightPart) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + rightPart)
}
