// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/suggest"
	"github.com/jeranaias/mosdac-chat/internal/ui/components"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncFeedbackField()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case SessionEventMsg:
		cmd = m.handleSessionEvent(msg.Event)

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
		} else {
			m.spinning = false
		}

	case components.ToastTickMsg:
		m.toasts.Tick()
		cmd = components.ToastTickCmd()

	case sendDoneMsg:
		m.logDone("send", msg.err)

	case clearDoneMsg:
		m.logDone("clear", msg.err)

	case exportDoneMsg:
		if msg.err == nil {
			m.logger.Debug("history exported", zap.String("path", msg.path))
		}

	case feedbackDoneMsg:
		m.submitting = false
		m.logDone("feedback", msg.err)
		m.syncFeedbackField()

	case searchDebounceMsg:
		if msg.seq == m.searchSeq && m.searchOpen {
			cmd = searchCmd(m.ctx, m.sess, msg.seq, msg.query)
		}

	case searchResultsMsg:
		if msg.seq == m.searchSeq {
			m.dropdown.SetItems(msg.items)
		}

	case ConfigReloadedMsg:
		m.sess.SetFeatures(msg.Features)
		m.sess.SetExportDir(msg.ExportDir)
		if err := m.sess.SetExportFormat(msg.ExportFormat); err != nil {
			m.logger.Warn("export format not applied", zap.Error(err))
		}
		m.toasts.SetDuration(msg.ToastDuration)
		if (msg.Theme == styles.ModeDark || msg.Theme == styles.ModeLight) && msg.Theme != m.theme.Mode() {
			m.toggleTheme()
		}
		m.toasts.Notify(session.LevelInfo, "Configuration reloaded")

	case ConfigErrorMsg:
		m.toasts.Notify(session.LevelError, "Config reload failed: "+msg.Err.Error())
	}

	m.layout()
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)

	inputWidth := msg.Width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.search.Width = inputWidth

	fbWidth := msg.Width - 16
	if fbWidth > 58 {
		fbWidth = 58
	}
	if fbWidth < 16 {
		fbWidth = 16
	}
	m.feedback.SetWidth(fbWidth)

	m.md.SetWidth(m.bodyWidth())
	m.layout()
	m.refreshTranscript()
}

func (m *Model) handleSessionEvent(e session.Event) tea.Cmd {
	switch e.Kind {
	case session.EventTranscript:
		m.syncTranscript()
	case session.EventSuggestions:
		m.chips.SetItems(m.sess.Suggestions())
	case session.EventLoading:
		m.loading = e.Loading
		m.progress = e.Progress
		if m.loading && !m.spinning {
			m.spinning = true
			return m.spinner.Tick
		}
	case session.EventProgress:
		m.progress = e.Progress
	case session.EventScrollToBottom:
		m.viewport.GotoBottom()
	}
	return nil
}

// syncFeedbackField empties the feedback field whenever the dialog host
// recorded a close since the last look.
func (m *Model) syncFeedbackField() {
	if n := m.dialogs.FeedbackResets(); n != m.feedbackResets {
		m.feedbackResets = n
		m.feedback.Reset()
		m.feedback.Blur()
		m.input.Focus()
	}
}

func (m *Model) logDone(action string, err error) {
	if err != nil {
		m.logger.Debug(action+" finished with error", zap.Error(err))
	}
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	switch m.dialogs.Current() {
	case session.DialogWelcome:
		return m.handleWelcomeKey(msg)
	case session.DialogFeedback:
		return m.handleFeedbackKey(msg)
	}

	if m.searchOpen {
		return m.handleSearchKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleWelcomeKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel, m.keys.Send, m.keys.Welcome) {
		m.dialogs.Close(session.DialogWelcome)
	}
	return nil
}

func (m *Model) handleFeedbackKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !m.submitting {
			m.sess.CloseFeedback()
			m.syncFeedbackField()
		}
		return nil
	case key.Matches(msg, m.keys.SubmitForm):
		if m.submitting {
			return nil
		}
		text := m.feedback.Value()
		if strings.TrimSpace(text) != "" {
			m.submitting = true
		}
		return feedbackCmd(m.ctx, m.sess, text)
	}
	if m.submitting {
		return nil
	}
	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	return cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel, m.keys.Search):
		m.closeSearch()
		return nil
	case key.Matches(msg, m.keys.Up):
		m.dropdown.Up()
		return nil
	case key.Matches(msg, m.keys.Down, m.keys.NextChip):
		m.dropdown.Down()
		return nil
	case key.Matches(msg, m.keys.Send):
		choice, ok := m.dropdown.Current()
		if !ok {
			choice = m.search.Value()
		}
		m.closeSearch()
		m.input.Reset()
		return sendCmd(m.ctx, m.sess, choice)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.searchSeq++
		return tea.Batch(cmd, searchDebounceCmd(m.searchSeq, after))
	}
	return cmd
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	features := m.sess.Features()

	switch {
	case key.Matches(msg, m.keys.Send):
		if chip, ok := m.chips.Current(); ok {
			m.chips.Blur()
			m.input.Reset()
			return selectSuggestionCmd(m.ctx, m.sess, chip)
		}
		query := m.input.Value()
		m.input.Reset()
		return sendCmd(m.ctx, m.sess, query)

	case key.Matches(msg, m.keys.NextChip):
		m.chips.Next()
		return nil

	case key.Matches(msg, m.keys.PrevChip):
		m.chips.Prev()
		return nil

	case key.Matches(msg, m.keys.Cancel):
		if m.chips.Selected() >= 0 {
			m.chips.Blur()
		} else {
			m.toasts.Dismiss()
		}
		return nil

	case key.Matches(msg, m.keys.Search):
		if features.Autocomplete {
			m.openSearch()
		}
		return nil

	case key.Matches(msg, m.keys.Clear):
		m.chips.Blur()
		return clearCmd(m.ctx, m.sess)

	case key.Matches(msg, m.keys.Export):
		if features.Export {
			return exportCmd(m.sess)
		}
		return nil

	case key.Matches(msg, m.keys.Theme):
		if features.ThemeToggle {
			m.toggleTheme()
		}
		return nil

	case key.Matches(msg, m.keys.Welcome):
		m.sess.ShowWelcome()
		return nil

	case key.Matches(msg, m.keys.Feedback):
		if m.sess.OpenFeedback() {
			m.input.Blur()
			return m.feedback.Focus()
		}
		return nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return nil
	}

	// Typing moves focus away from the chips.
	if msg.Type == tea.KeyRunes {
		m.chips.Blur()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// =============================================================================
// STATE CHANGES
// =============================================================================

func (m *Model) openSearch() {
	m.searchOpen = true
	m.searchSeq++
	m.search.Reset()
	m.dropdown.Reset()
	if p := m.sess.SuggestProvider(); p.Degraded() {
		m.dropdown.Note = suggest.DegradedMessage
		m.dropdown.SetItems(p.Static())
	}
	m.input.Blur()
	m.search.Focus()
}

func (m *Model) closeSearch() {
	m.searchOpen = false
	m.searchSeq++
	m.search.Blur()
	m.search.Reset()
	m.dropdown.Reset()
	m.input.Focus()
}

func (m *Model) toggleTheme() {
	m.theme.Toggle()
	m.md.SetStyle(m.theme.GlamourStyle())
	m.input.PromptStyle = m.theme.InputPrompt
	m.input.PlaceholderStyle = m.theme.Placeholder
	m.search.PromptStyle = m.theme.InputPrompt
	m.search.PlaceholderStyle = m.theme.Placeholder
	m.spinner.Style = m.theme.Spinner
	m.refreshTranscript()
}
