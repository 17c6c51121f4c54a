// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// =============================================================================
// TOAST
// =============================================================================

// DefaultToastDuration is how long a toast stays up when no duration is set.
const DefaultToastDuration = 3 * time.Second

// MaxToasts is the number of toasts visible at once.
const MaxToasts = 5

// ToastTickInterval is the refresh period for expiring toasts.
const ToastTickInterval = 100 * time.Millisecond

// Toast is a non-blocking notification.
type Toast struct {
	ID        int
	Message   string
	Level     session.Level
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the toast should be dismissed.
func (t *Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how much time is left before auto-dismiss.
func (t *Toast) TimeRemaining(now time.Time) time.Duration {
	remaining := t.Duration - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first. It is the TUI's
// session.Notifier.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	nextID    int
	maxToasts int
	duration  time.Duration
	now       func() time.Time
}

// NewToastManager creates a toast manager whose toasts last d. A zero d uses
// DefaultToastDuration; errors stay up twice as long.
func NewToastManager(d time.Duration) *ToastManager {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &ToastManager{
		nextID:    1,
		maxToasts: MaxToasts,
		duration:  d,
		now:       time.Now,
	}
}

// Notify implements session.Notifier.
func (m *ToastManager) Notify(level session.Level, text string) {
	m.Add(level, text)
}

// Add pushes a toast and returns its ID.
func (m *ToastManager) Add(level session.Level, text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.duration
	if level == session.LevelError {
		d *= 2
	}
	t := Toast{
		ID:        m.nextID,
		Message:   text,
		Level:     level,
		CreatedAt: m.now(),
		Duration:  d,
	}
	m.nextID++

	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return t.ID
}

// SetDuration changes the lifetime of toasts added from now on.
func (m *ToastManager) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// Dismiss removes the newest toast.
func (m *ToastManager) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// Tick drops expired toasts and returns the remaining ones.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Toasts returns a copy of the current toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// HasToasts returns true if there are any active toasts.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	m.toasts = nil
	m.mu.Unlock()
}

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

func levelLook(level session.Level) (lipgloss.AdaptiveColor, string) {
	switch level {
	case session.LevelError:
		return styles.Rose, styles.StatusIndicators.Error
	case session.LevelWarning:
		return styles.Amber, styles.StatusIndicators.Warning
	case session.LevelSuccess:
		return styles.Emerald, styles.StatusIndicators.Success
	default:
		return styles.Sky, styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast.
func RenderToast(t Toast, width int, now time.Time) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	color, icon := levelLook(t.Level)
	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	content := iconStyle.Render(icon+" ") + messageStyle.Render(wrapText(t.Message, maxWidth-10))

	if secs := int(t.TimeRemaining(now).Seconds()); secs > 0 {
		hint := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		content += "\n" + hint.Render("[esc] dismiss  "+strconv.Itoa(secs)+"s")
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders toasts stacked vertically, right aligned.
func RenderToastStack(toasts []Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, width, now))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return stack
}

// wrapText performs simple word wrapping.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var line strings.Builder
	for _, w := range words {
		switch {
		case line.Len() == 0:
			line.WriteString(w)
		case line.Len()+1+len(w) <= maxWidth:
			line.WriteString(" ")
			line.WriteString(w)
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(w)
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
