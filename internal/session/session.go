// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/export"
	"github.com/jeranaias/mosdac-chat/internal/model"
	"github.com/jeranaias/mosdac-chat/internal/suggest"
)

// Notification texts.
const (
	EmptyQueryText       = "Please enter a question."
	EmptyFeedbackText    = "Please enter feedback."
	ResponseReceivedText = "Response received!"
	ExportedText         = "Chat history exported!"
)

// DefaultExportFormat is the ExportFile format when none is configured.
const DefaultExportFormat = "txt"

var (
	// ErrEmptyQuery is returned by Send for a blank question.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyFeedback is returned by SubmitFeedback for blank feedback.
	ErrEmptyFeedback = errors.New("empty feedback")
)

// Backend is the service the session talks to. *api.Client satisfies it.
type Backend interface {
	Ask(ctx context.Context, query string) (*api.AskResponse, error)
	Clear(ctx context.Context) (*api.StatusResponse, error)
	Feedback(ctx context.Context, text string) (*api.StatusResponse, error)
}

// Options configures a Session. Zero values get sensible defaults.
type Options struct {
	Variant Variant

	// Features overrides the variant preset when non-nil.
	Features *Features

	Notifier Notifier
	Dialogs  DialogHost

	// StaticSuggestions disables dynamic search; the provider then
	// filters the static list.
	StaticSuggestions bool

	// SuggestMinChars is the dynamic lookup threshold.
	SuggestMinChars int

	// ExportDir is where ExportFile writes when given no directory.
	ExportDir string

	// ExportFormat is the ExportFile format: "txt" (default), "json" or "md".
	ExportFormat string

	// WelcomeDialog opens the welcome dialog from Start.
	WelcomeDialog bool

	// ProgressInterval overrides DefaultProgressInterval.
	ProgressInterval time.Duration

	Logger *zap.Logger
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the chat controller. All methods are safe for concurrent use.
type Session struct {
	backend     Backend
	transcript  *model.Transcript
	suggestions *model.SuggestionList
	provider    *suggest.Provider
	notifier    Notifier
	dialogs     DialogHost
	logger      *zap.Logger

	variant          Variant
	welcomeDialog    bool
	progressInterval time.Duration

	mu        sync.RWMutex
	features     Features
	exportDir    string
	exportFormat string
	listener  Listener

	// reqMu orders in-flight transitions with the progress animator.
	reqMu    sync.Mutex
	animator *progressAnimator
	inFlight atomic.Int32
	progress atomic.Int32
}

// New creates a session whose transcript holds the variant's welcome text.
func New(backend Backend, opts Options) *Session {
	if opts.Variant == "" {
		opts.Variant = VariantFull
	}
	s := &Session{
		backend:          backend,
		transcript:       model.NewTranscript(opts.Variant.Welcome()),
		suggestions:      &model.SuggestionList{},
		notifier:         opts.Notifier,
		dialogs:          opts.Dialogs,
		logger:           opts.Logger,
		variant:          opts.Variant,
		welcomeDialog:    opts.WelcomeDialog,
		progressInterval: opts.ProgressInterval,
		features:         FeaturesFor(opts.Variant),
		exportDir:        opts.ExportDir,
	}
	if opts.Features != nil {
		s.features = *opts.Features
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.dialogs == nil {
		s.dialogs = nopDialogs{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.progressInterval <= 0 {
		s.progressInterval = DefaultProgressInterval
	}
	if s.exportDir == "" {
		s.exportDir = "."
	}
	if err := s.SetExportFormat(opts.ExportFormat); err != nil {
		s.logger.Warn("unknown export format, using txt", zap.String("format", opts.ExportFormat))
		s.exportFormat = DefaultExportFormat
	}

	var source suggest.Source
	if !opts.StaticSuggestions && backend != nil {
		source = backend
	}
	s.provider = suggest.New(source, suggest.Options{
		MinChars: opts.SuggestMinChars,
		OnDegraded: func(msg string) {
			s.notify(LevelWarning, msg)
		},
		Logger: s.logger,
	})
	return s
}

// Start runs the load-time behavior: the welcome dialog (when enabled) and
// the suggestion provider's degraded-mode warning (when search is offered).
func (s *Session) Start() {
	if s.welcomeDialog {
		s.ShowWelcome()
	}
	if s.Features().Autocomplete {
		s.provider.Init()
	}
}

// =============================================================================
// STATE
// =============================================================================

// Transcript returns the live transcript.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []model.Message {
	return s.transcript.Snapshot()
}

// Suggestions returns the current follow-up suggestions.
func (s *Session) Suggestions() []string {
	return s.suggestions.Items()
}

// Variant returns the UI preset the session was created with.
func (s *Session) Variant() Variant {
	return s.variant
}

// Features returns the active feature set.
func (s *Session) Features() Features {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features
}

// SetFeatures replaces the feature set, e.g. after a config reload.
func (s *Session) SetFeatures(f Features) {
	s.mu.Lock()
	s.features = f
	s.mu.Unlock()
}

// ExportDir returns the default export directory.
func (s *Session) ExportDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportDir
}

// SetExportDir changes the default export directory.
func (s *Session) SetExportDir(dir string) {
	if dir == "" {
		dir = "."
	}
	s.mu.Lock()
	s.exportDir = dir
	s.mu.Unlock()
}

// ExportFormat returns the format ExportFile writes.
func (s *Session) ExportFormat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportFormat
}

// SetExportFormat changes the ExportFile format. Empty means txt. An unknown
// format is rejected and the current one kept.
func (s *Session) SetExportFormat(format string) error {
	if format == "" {
		format = DefaultExportFormat
	}
	if _, err := export.ForFormat(format); err != nil {
		return err
	}
	s.mu.Lock()
	s.exportFormat = format
	s.mu.Unlock()
	return nil
}

// Loading reports whether any request is in flight.
func (s *Session) Loading() bool {
	return s.inFlight.Load() > 0
}

// InFlight returns the number of requests in flight.
func (s *Session) InFlight() int {
	return int(s.inFlight.Load())
}

// Progress returns the progress bar value, 0 to 100.
func (s *Session) Progress() int {
	return int(s.progress.Load())
}

// SuggestProvider returns the search provider.
func (s *Session) SuggestProvider() *suggest.Provider {
	return s.provider
}

// SetListener installs the re-render listener. Pass nil to remove it.
func (s *Session) SetListener(l Listener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Session) emit(e Event) {
	s.mu.RLock()
	l := s.listener
	s.mu.RUnlock()
	if l != nil {
		l(e)
	}
}

func (s *Session) notify(level Level, text string) {
	s.notifier.Notify(level, text)
}

