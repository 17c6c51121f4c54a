// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered list of messages shown in the chat window.
// It is safe for concurrent use; overlapping requests append from their
// own goroutines.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
	version  uint64
}

// NewTranscript creates a transcript holding a single bot welcome message.
func NewTranscript(welcome string) *Transcript {
	t := &Transcript{}
	t.Reset(welcome)
	return t
}

// Append adds msg to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	t.version++
}

// Reset discards every message and leaves exactly one welcome message.
func (t *Transcript) Reset(welcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = []Message{NewBotMessage(welcome)}
	t.version++
}

// Snapshot returns a copy of the messages in display order.
func (t *Transcript) Snapshot() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the most recent message, or false when empty.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Version increases on every mutation. Renderers compare it to skip
// rebuilding an unchanged view.
func (t *Transcript) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// =============================================================================
// SUGGESTION LIST
// =============================================================================

// SuggestionList holds the follow-up questions offered after an answer.
type SuggestionList struct {
	mu    sync.RWMutex
	items []string
}

// Replace swaps the whole list. Blank entries are dropped.
func (s *SuggestionList) Replace(items []string) {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	s.mu.Lock()
	s.items = cleaned
	s.mu.Unlock()
}

// Clear empties the list.
func (s *SuggestionList) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the current suggestions.
func (s *SuggestionList) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// At returns the suggestion at index i.
func (s *SuggestionList) At(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		return "", false
	}
	return s.items[i], true
}

// Len returns the number of suggestions.
func (s *SuggestionList) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
