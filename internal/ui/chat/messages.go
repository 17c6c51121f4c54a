// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mosdac-chat/internal/session"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionEventMsg carries a session event into the program.
type SessionEventMsg struct {
	Event session.Event
}

// Listener returns a session.Listener that forwards events to p. Session
// calls that emit must not run inside Update, since p.Send waits for the
// event loop.
func Listener(p *tea.Program) session.Listener {
	return func(e session.Event) {
		p.Send(SessionEventMsg{Event: e})
	}
}

// =============================================================================
// COMMAND RESULTS
// =============================================================================

// sendDoneMsg reports the end of a Send or SelectSuggestion call. The
// session has already notified the user about failures.
type sendDoneMsg struct {
	err error
}

type clearDoneMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type feedbackDoneMsg struct {
	err error
}

// =============================================================================
// SEARCH
// =============================================================================

// searchDebounceMsg fires after typing pauses in the search box.
type searchDebounceMsg struct {
	seq   int
	query string
}

// searchResultsMsg delivers autocomplete results for query seq.
type searchResultsMsg struct {
	seq   int
	items []string
}

// =============================================================================
// CONFIG
// =============================================================================

// ConfigReloadedMsg applies settings from a reloaded config file.
type ConfigReloadedMsg struct {
	Features      session.Features
	ExportDir     string
	ExportFormat  string
	ToastDuration time.Duration

	// Theme is "dark", "light" or "auto"; auto keeps the current look.
	Theme string
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}
