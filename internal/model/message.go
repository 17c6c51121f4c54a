// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the clock format shown next to every message.
const TimestampLayout = "15:04:05"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the label used in exports and line mode.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleBot:
		return "Bot"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one transcript entry. Messages are not modified after they
// are appended to a Transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// IsError marks a bot message describing a failed request.
	IsError bool `json:"is_error,omitempty"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return NewMessage(RoleUser, text)
}

// NewBotMessage creates a normal bot message.
func NewBotMessage(text string) Message {
	return NewMessage(RoleBot, text)
}

// NewErrorMessage creates an error-styled bot message.
func NewErrorMessage(text string) Message {
	msg := NewMessage(RoleBot, text)
	msg.IsError = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Clock returns the formatted local timestamp.
func (m Message) Clock() string {
	return m.Timestamp.Local().Format(TimestampLayout)
}

// FlatText returns the trimmed text with every line break folded into a
// single space, so a message always occupies one line.
func (m Message) FlatText() string {
	text := strings.TrimSpace(m.Text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(nonEmpty(lines), " ")
}

// Line renders the message as "[timestamp] Role: text".
func (m Message) Line() string {
	return "[" + m.Clock() + "] " + m.Role.DisplayName() + ": " + m.FlatText()
}

// Preview returns a rune-safe truncated preview of the text. A maxLen of
// zero or less gives "".
func (m Message) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(m.FlatText())
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
