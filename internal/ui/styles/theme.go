// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER / STATUS BAR
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	RoleLabel   lipgloss.Style
	Timestamp   lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Placeholder    lipgloss.Style

	// ==========================================================================
	// SUGGESTIONS
	// ==========================================================================

	Chip             lipgloss.Style
	ChipSelected     lipgloss.Style
	Dropdown         lipgloss.Style
	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	DropdownNote     lipgloss.Style

	// ==========================================================================
	// LOADING
	// ==========================================================================

	Spinner       lipgloss.Style
	ThinkingText  lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style
	ProgressLabel lipgloss.Style

	// ==========================================================================
	// DIALOGS
	// ==========================================================================

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogBody  lipgloss.Style
	DialogHint  lipgloss.Style
}

// NewTheme creates a theme for the given mode. "dark" and "light" force the
// background; anything else asks the terminal.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.apply(isDark)
	return t
}

// Toggle flips between the light and dark palettes.
func (t *Theme) Toggle() {
	t.apply(!t.IsDark)
}

// Mode reports the effective mode, never ModeAuto.
func (t *Theme) Mode() string {
	if t.IsDark {
		return ModeDark
	}
	return ModeLight
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	return t.Mode()
}

// apply resolves AdaptiveColor against isDark for every renderer and rebuilds
// the styles.
func (t *Theme) apply(isDark bool) {
	t.IsDark = isDark
	lipgloss.SetHasDarkBackground(isDark)
	t.initStyles()
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth is the usable width for message bodies.
func (t *Theme) ContentWidth() int {
	w := t.Width - 8
	if w < 20 {
		return 20
	}
	return w
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ocean).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ocean)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Ocean).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1).
		MarginRight(4)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Ocean).
		Bold(true)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Suggestions
	t.Chip = lipgloss.NewStyle().
		Foreground(Saffron).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ChipSelected = t.Chip.
		BorderForeground(Saffron).
		Background(SelectionBg).
		Bold(true)

	t.Dropdown = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Ocean).
		Padding(0, 1)

	t.DropdownItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.DropdownSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.DropdownNote = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Ocean)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.ProgressFill = lipgloss.NewStyle().
		Foreground(Ocean)

	t.ProgressEmpty = lipgloss.NewStyle().
		Foreground(Overlay)

	t.ProgressLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Dialogs
	t.Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Ocean).
		Background(Surface).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ocean).
		MarginBottom(1)

	t.DialogBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.DialogHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		MarginTop(1)
}
