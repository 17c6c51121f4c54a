// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// =============================================================================
// DIALOG STATE
// =============================================================================

// DialogState records which modal is open. It is the TUI's
// session.DialogHost. The feedback field lives in the chat model, so closing
// the feedback dialog bumps a reset counter the model compares against.
type DialogState struct {
	mu            sync.Mutex
	open          session.Dialog
	feedbackReset uint64
}

// NewDialogState creates a state with no dialog open.
func NewDialogState() *DialogState {
	return &DialogState{}
}

// Open implements session.DialogHost. Opening a dialog replaces any other.
func (d *DialogState) Open(dialog session.Dialog) {
	d.mu.Lock()
	d.open = dialog
	d.mu.Unlock()
}

// Close implements session.DialogHost.
func (d *DialogState) Close(dialog session.Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dialog == session.DialogFeedback {
		d.feedbackReset++
	}
	if d.open == dialog {
		d.open = ""
	}
}

// Current returns the open dialog, or "" when none is.
func (d *DialogState) Current() session.Dialog {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// IsOpen reports whether dialog is showing.
func (d *DialogState) IsOpen(dialog session.Dialog) bool {
	return d.Current() == dialog
}

// FeedbackResets counts how many times the feedback dialog was closed.
func (d *DialogState) FeedbackResets() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.feedbackReset
}

// =============================================================================
// RENDERING
// =============================================================================

func dialogWidth(width int) int {
	w := 64
	if width > 0 && width-6 < w {
		w = width - 6
	}
	if w < 24 {
		w = 24
	}
	return w
}

// RenderWelcomeDialog draws the welcome modal with the variant's greeting.
func RenderWelcomeDialog(theme *styles.Theme, text string, width int) string {
	w := dialogWidth(width)
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitle.Render("MOSDAC Chatbot"),
		theme.DialogBody.Width(w-6).Render(text),
		theme.DialogHint.Render("enter/esc close"),
	)
	return theme.Dialog.Width(w).Render(body)
}

// RenderFeedbackDialog draws the feedback modal around an already rendered
// text field.
func RenderFeedbackDialog(theme *styles.Theme, field string, submitting bool, width int) string {
	w := dialogWidth(width)
	hint := "ctrl+s submit  esc cancel"
	if submitting {
		hint = "sending..."
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitle.Render("Send feedback"),
		theme.DialogBody.Render("Tell us how the chatbot is doing."),
		"",
		field,
		theme.DialogHint.Render(hint),
	)
	return theme.Dialog.Width(w).Render(body)
}

// Center places a dialog in the middle of a width x height screen.
func Center(dialog string, width, height int) string {
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
