// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// =============================================================================
// NOTIFIER
// =============================================================================

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows transient messages to the user. Implementations must be
// safe to call from any goroutine.
type Notifier interface {
	Notify(level Level, text string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, text string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level Level, text string) {
	f(level, text)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}

// =============================================================================
// DIALOG HOST
// =============================================================================

// Dialog identifies a modal dialog.
type Dialog string

const (
	DialogWelcome  Dialog = "welcome"
	DialogFeedback Dialog = "feedback"
)

// DialogHost opens and closes modal dialogs. Closing the feedback dialog
// also resets its text field. Implementations must be safe to call from any
// goroutine.
type DialogHost interface {
	Open(d Dialog)
	Close(d Dialog)
}

type nopDialogs struct{}

func (nopDialogs) Open(Dialog)  {}
func (nopDialogs) Close(Dialog) {}
