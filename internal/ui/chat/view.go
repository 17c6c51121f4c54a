// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/components"
)

// View renders the model. An open dialog takes over the screen.
func (m Model) View() string {
	switch m.dialogs.Current() {
	case session.DialogWelcome:
		return components.Center(
			components.RenderWelcomeDialog(m.theme, m.sess.Variant().Welcome(), m.width),
			m.width, m.height)
	case session.DialogFeedback:
		return components.Center(
			components.RenderFeedbackDialog(m.theme, m.feedback.View(), m.submitting, m.width),
			m.width, m.height)
	}
	return m.renderChat()
}

func (m Model) renderChat() string {
	parts := []string{
		m.header.View(),
		m.viewport.View(),
	}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	if m.loading {
		parts = append(parts, components.RenderLoading(
			m.theme, m.spinner.View(), m.progress, m.sess.Features().Progress, m.width))
	}
	if chips := m.chips.Render(m.theme, m.width); chips != "" {
		parts = append(parts, chips)
	}
	parts = append(parts, m.renderInput(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInput() string {
	if !m.searchOpen {
		return m.theme.InputContainer.Width(m.width).Render(m.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.dropdown.Render(m.theme, m.width),
		m.theme.InputContainer.Width(m.width).Render(m.search.View()),
	)
}

func (m Model) renderStatusBar() string {
	count := len(m.sess.Messages())
	right := fmt.Sprintf("%d messages", count)
	if count == 1 {
		right = "1 message"
	}
	if n := m.sess.InFlight(); n > 1 {
		right = fmt.Sprintf("%d pending  %s", n, right)
	}
	shortcuts := components.ShortcutsFor(m.sess.Features(), len(m.chips.Items()) > 0)
	return components.RenderStatusBar(m.theme, shortcuts, right, m.width)
}

func (m Model) renderToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	return strings.TrimRight(components.RenderToastStack(toasts, m.width, time.Now()), "\n")
}
