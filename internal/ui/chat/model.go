// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/components"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// Input limits.
const (
	MaxQueryLength    = 2000
	MaxFeedbackLength = 4000
)

// Deps are the shared pieces the model renders. Toasts and Dialogs must be
// the same values given to the session as its Notifier and DialogHost.
type Deps struct {
	Theme   *styles.Theme
	Toasts  *components.ToastManager
	Dialogs *components.DialogState
	Logger  *zap.Logger

	// BaseURL is shown in the header.
	BaseURL string

	// Context bounds every request the model starts.
	Context context.Context
}

// Model is the chat screen.
type Model struct {
	sess    *session.Session
	ctx     context.Context
	theme   *styles.Theme
	toasts  *components.ToastManager
	dialogs *components.DialogState
	logger  *zap.Logger
	keys    KeyMap

	// Rendering helpers. Pointers, so copies of Model share them.
	md       *components.Markdown
	header   *components.Header
	chips    *components.Chips
	dropdown *components.Dropdown

	// Dimensions
	width  int
	height int

	// Widgets
	viewport viewport.Model
	input    textinput.Model
	search   textinput.Model
	feedback textarea.Model
	spinner  spinner.Model

	// renderedVersion is the transcript version shown in the viewport.
	renderedVersion uint64

	// Loading state mirrored from session events
	loading  bool
	spinning bool
	progress int

	// Search box
	searchOpen bool
	searchSeq  int

	// Feedback dialog
	feedbackResets uint64
	submitting     bool
}

// New creates the chat model for sess.
func New(sess *session.Session, deps Deps) Model {
	if deps.Theme == nil {
		deps.Theme = styles.NewTheme(styles.ModeAuto)
	}
	if deps.Toasts == nil {
		deps.Toasts = components.NewToastManager(0)
	}
	if deps.Dialogs == nil {
		deps.Dialogs = components.NewDialogState()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about satellites, meteorology or oceanography..."
	ti.CharLimit = MaxQueryLength
	ti.PromptStyle = deps.Theme.InputPrompt
	ti.PlaceholderStyle = deps.Theme.Placeholder
	ti.Focus()

	si := textinput.New()
	si.Prompt = "search: "
	si.Placeholder = "Search suggestions..."
	si.CharLimit = 200
	si.PromptStyle = deps.Theme.InputPrompt
	si.PlaceholderStyle = deps.Theme.Placeholder

	fb := textarea.New()
	fb.Placeholder = "Your feedback..."
	fb.CharLimit = MaxFeedbackLength
	fb.ShowLineNumbers = false
	fb.SetWidth(50)
	fb.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Theme.Spinner

	header := components.NewHeader(deps.Theme)
	header.Variant = sess.Variant()
	header.BaseURL = deps.BaseURL

	vp := viewport.New(80, 20)

	m := Model{
		sess:     sess,
		ctx:      deps.Context,
		theme:    deps.Theme,
		toasts:   deps.Toasts,
		dialogs:  deps.Dialogs,
		logger:   deps.Logger,
		keys:     DefaultKeyMap(),
		md:       components.NewMarkdown(deps.Theme.GlamourStyle(), 72),
		header:   header,
		chips:    components.NewChips(),
		dropdown: components.NewDropdown(),
		width:    80,
		height:   24,
		viewport: vp,
		input:    ti,
		search:   si,
		feedback: fb,
		spinner:  sp,

		feedbackResets: deps.Dialogs.FeedbackResets(),
	}
	m.theme.SetSize(m.width, m.height)
	m.md.SetWidth(m.bodyWidth())
	m.chips.SetItems(sess.Suggestions())
	m.refreshTranscript()
	m.layout()
	return m
}

// Init starts the cursor blink and the toast ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, components.ToastTickCmd())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session the model renders.
func (m Model) Session() *session.Session { return m.sess }

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme { return m.theme }

// SearchOpen reports whether the search box is showing.
func (m Model) SearchOpen() bool { return m.searchOpen }

// Loading reports whether a request is in flight.
func (m Model) Loading() bool { return m.loading }

// Progress returns the last progress value received.
func (m Model) Progress() int { return m.progress }

// InputValue returns the text in the question field.
func (m Model) InputValue() string { return m.input.Value() }

// FeedbackValue returns the text in the feedback field.
func (m Model) FeedbackValue() string { return m.feedback.Value() }

// Chips returns the suggestion chip row.
func (m Model) Chips() *components.Chips { return m.chips }

// Dropdown returns the search results list.
func (m Model) Dropdown() *components.Dropdown { return m.dropdown }

// =============================================================================
// LAYOUT
// =============================================================================

// Fixed heights of the chrome around the transcript.
const (
	headerHeight    = 1
	statusBarHeight = 1
	inputHeight     = 2
)

// layout sizes the viewport to whatever the chrome leaves.
func (m *Model) layout() {
	reserved := headerHeight + statusBarHeight + inputHeight
	if m.loading {
		reserved++
	}
	if chips := m.chips.Render(m.theme, m.width); chips != "" {
		reserved += countLines(chips)
	}
	if m.searchOpen {
		reserved += countLines(m.dropdown.Render(m.theme, m.width))
	}
	if toasts := m.renderToasts(); toasts != "" {
		reserved += countLines(toasts)
	}

	h := m.height - reserved
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

// refreshTranscript re-renders the transcript into the viewport. It stays
// pinned to the bottom if it was there before.
func (m *Model) refreshTranscript() {
	atBottom := m.viewport.AtBottom()
	m.renderedVersion = m.sess.Transcript().Version()
	content := components.RenderTranscript(m.theme, m.md, m.sess.Messages(), m.theme.ContentWidth())
	m.viewport.SetContent(content)
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// syncTranscript re-renders only when the transcript changed since the last
// render. Size and theme changes call refreshTranscript directly.
func (m *Model) syncTranscript() {
	if m.sess.Transcript().Version() == m.renderedVersion {
		return
	}
	m.refreshTranscript()
}

// bodyWidth is the wrap width for rendered bot replies.
func (m *Model) bodyWidth() int {
	return m.theme.ContentWidth() - 4
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
