// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// EventKind identifies what changed.
type EventKind int

const (
	EventTranscript EventKind = iota
	EventSuggestions
	EventLoading
	EventProgress
	EventScrollToBottom
)

func (k EventKind) String() string {
	switch k {
	case EventTranscript:
		return "transcript"
	case EventSuggestions:
		return "suggestions"
	case EventLoading:
		return "loading"
	case EventProgress:
		return "progress"
	case EventScrollToBottom:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event tells a front end to re-render. Loading and Progress carry the
// values current when the event was emitted.
type Event struct {
	Kind     EventKind
	Loading  bool
	Progress int
}

// Listener receives events. It is called from whichever goroutine made the
// change and must not call back into the Session synchronously.
type Listener func(Event)
