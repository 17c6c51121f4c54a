// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/model"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// RenderMessage draws one transcript entry: a "Role · clock" label above a
// bordered body. User messages are right aligned, bot replies run through md.
func RenderMessage(theme *styles.Theme, md *Markdown, msg model.Message, width int) string {
	bodyWidth := width * 3 / 4
	if bodyWidth < 20 {
		bodyWidth = 20
	}

	label := theme.RoleLabel.Render(msg.Role.DisplayName()) + " " + theme.Timestamp.Render("· "+msg.Clock())

	var body string
	switch {
	case msg.IsError:
		body = theme.ErrorBubble.Width(bodyWidth).Render(msg.Text)
	case msg.Role == model.RoleUser:
		body = theme.UserBubble.Width(bodyWidth).Render(msg.Text)
	default:
		text := msg.Text
		if md != nil {
			text = md.Render(text)
		}
		body = theme.BotBubble.Render(text)
	}

	block := lipgloss.JoinVertical(lipgloss.Left, label, body)
	if msg.Role == model.RoleUser && width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

// RenderTranscript draws every message separated by a blank line.
func RenderTranscript(theme *styles.Theme, md *Markdown, msgs []model.Message, width int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, RenderMessage(theme, md, m, width))
	}
	return strings.Join(parts, "\n\n")
}
