// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mosdac-chat/internal/session"
)

// fakeClock lets tests move the manager's notion of now.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestManager(d time.Duration) (*ToastManager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewToastManager(d)
	m.now = clock.now
	return m, clock
}

func TestToastManagerIsNotifier(t *testing.T) {
	var _ session.Notifier = NewToastManager(0)
}

func TestToastManagerNewestFirst(t *testing.T) {
	m, _ := newTestManager(time.Second)
	m.Notify(session.LevelInfo, "first")
	m.Notify(session.LevelSuccess, "second")

	toasts := m.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "second", toasts[0].Message)
	assert.Equal(t, session.LevelSuccess, toasts[0].Level)
	assert.Equal(t, "first", toasts[1].Message)
}

func TestToastManagerCapsVisibleToasts(t *testing.T) {
	m, _ := newTestManager(time.Second)
	for i := 0; i < MaxToasts+3; i++ {
		m.Notify(session.LevelInfo, "x")
	}
	assert.Len(t, m.Toasts(), MaxToasts)
}

func TestToastManagerExpiry(t *testing.T) {
	m, clock := newTestManager(3 * time.Second)
	m.Notify(session.LevelSuccess, "Response received!")
	m.Notify(session.LevelError, "Error: boom")

	clock.t = clock.t.Add(4 * time.Second)
	remaining := m.Tick()
	require.Len(t, remaining, 1, "errors last twice as long")
	assert.Equal(t, "Error: boom", remaining[0].Message)

	clock.t = clock.t.Add(3 * time.Second)
	assert.Empty(t, m.Tick())
	assert.False(t, m.HasToasts())
}

func TestToastManagerDismissAndClear(t *testing.T) {
	m, _ := newTestManager(time.Second)
	m.Notify(session.LevelInfo, "a")
	m.Notify(session.LevelInfo, "b")

	m.Dismiss()
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "a", toasts[0].Message)

	m.Clear()
	assert.False(t, m.HasToasts())
	m.Dismiss()
}

func TestToastManagerSetDuration(t *testing.T) {
	m, _ := newTestManager(time.Second)
	m.SetDuration(5 * time.Second)
	m.SetDuration(0)
	m.Notify(session.LevelWarning, "w")
	assert.Equal(t, 5*time.Second, m.Toasts()[0].Duration)
}

func TestRenderToastShowsMessageAndIcon(t *testing.T) {
	now := time.Now()
	toast := Toast{Message: "Chat history exported!", Level: session.LevelSuccess, CreatedAt: now, Duration: 3 * time.Second}
	out := RenderToast(toast, 80, now)
	assert.Contains(t, out, "Chat history exported!")
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "3s")
}

func TestRenderToastStackEmpty(t *testing.T) {
	assert.Empty(t, RenderToastStack(nil, 80, time.Now()))
}

func TestWrapText(t *testing.T) {
	out := wrapText("one two three four five", 9)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 9, line)
	}
	assert.Equal(t, "", wrapText("", 5))
}
