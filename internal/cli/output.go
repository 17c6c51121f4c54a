// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Ocean).Bold(true)
	bannerStyle  = lipgloss.NewStyle().Foreground(styles.Ocean).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(styles.TextMuted)
	labelStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
	chipStyle    = lipgloss.NewStyle().Foreground(styles.Saffron)
	successStyle = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.Sky).Bold(true)
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Renderer turns bot replies into terminal output. A nil *Renderer prints
// text unchanged.
type Renderer struct {
	tr *glamour.TermRenderer
}

// NewRenderer creates a glamour renderer with the given standard style,
// wrapping at width. It returns nil when glamour cannot be set up.
func NewRenderer(style string, width int) *Renderer {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return &Renderer{tr: tr}
}

// Render returns the styled text, or text itself if rendering fails.
func (r *Renderer) Render(text string) string {
	if r == nil || r.tr == nil {
		return text
	}
	out, err := r.tr.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// PRINTERS
// =============================================================================

// printSuggestions lists suggestions numbered from 1.
func printSuggestions(w io.Writer, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, labelStyle.Render("Suggestions:"))
	for i, s := range items {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), chipStyle.Render(s))
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// CONSOLE NOTIFIER
// =============================================================================

// ConsoleNotifier prints notifications as marked lines. It is the REPL's
// session.Notifier.
type ConsoleNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

// NewConsoleNotifier writes to w. Quiet drops info and success lines.
func NewConsoleNotifier(w io.Writer, quiet bool) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, quiet: quiet}
}

// Notify implements session.Notifier.
func (n *ConsoleNotifier) Notify(level session.Level, text string) {
	var mark string
	switch level {
	case session.LevelSuccess:
		if n.quiet {
			return
		}
		mark = successStyle.Render(styles.StatusIndicators.Success)
	case session.LevelWarning:
		mark = warningStyle.Render(styles.StatusIndicators.Warning)
	case session.LevelError:
		mark = errorStyle.Render(styles.StatusIndicators.Error)
	default:
		if n.quiet {
			return
		}
		mark = infoStyle.Render(styles.StatusIndicators.Info)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", mark, text)
}
