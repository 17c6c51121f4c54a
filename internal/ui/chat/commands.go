// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mosdac-chat/internal/session"
)

// SearchDebounce is the pause after the last keystroke before the search
// box queries the suggestion provider.
const SearchDebounce = 150 * time.Millisecond

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func sendCmd(ctx context.Context, sess *session.Session, query string) tea.Cmd {
	return func() tea.Msg {
		_, err := sess.Send(ctx, query)
		return sendDoneMsg{err: err}
	}
}

func selectSuggestionCmd(ctx context.Context, sess *session.Session, suggestion string) tea.Cmd {
	return func() tea.Msg {
		_, err := sess.SelectSuggestion(ctx, suggestion)
		return sendDoneMsg{err: err}
	}
}

func clearCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return clearDoneMsg{err: sess.Clear(ctx)}
	}
}

func exportCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		path, err := sess.ExportFile("")
		return exportDoneMsg{path: path, err: err}
	}
}

func feedbackCmd(ctx context.Context, sess *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		return feedbackDoneMsg{err: sess.SubmitFeedback(ctx, text)}
	}
}

// =============================================================================
// SEARCH COMMANDS
// =============================================================================

func searchDebounceCmd(seq int, query string) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

func searchCmd(ctx context.Context, sess *session.Session, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		return searchResultsMsg{seq: seq, items: sess.Suggest(ctx, query)}
	}
}
