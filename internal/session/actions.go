// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/export"
)

// =============================================================================
// CLEAR
// =============================================================================

// Clear asks the server to drop its history. On success the transcript is
// reset to the welcome message and suggestions are emptied. On failure the
// transcript is left untouched.
func (s *Session) Clear(ctx context.Context) error {
	resp, err := s.backend.Clear(ctx)
	if err != nil {
		s.reportFailure("clear", err)
		return err
	}

	s.transcript.Reset(s.variant.Welcome())
	s.suggestions.Clear()
	s.emit(Event{Kind: EventTranscript})
	s.emit(Event{Kind: EventSuggestions})
	s.notify(LevelSuccess, resp.Response)
	return nil
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes the transcript as plain text to w.
func (s *Session) Export(w io.Writer) error {
	return export.Write(w, s.transcript.Snapshot(), export.NewTextExporter())
}

// ExportFile writes mosdac_chat_history in the configured format into dir,
// or into the default export directory when dir is empty.
func (s *Session) ExportFile(dir string) (string, error) {
	exporter, err := export.ForFormat(s.ExportFormat())
	if err != nil {
		exporter = export.NewTextExporter()
	}
	return s.ExportFileAs(dir, exporter)
}

// ExportFileAs is ExportFile with an explicit format.
func (s *Session) ExportFileAs(dir string, exporter export.Exporter) (string, error) {
	if dir == "" {
		dir = s.ExportDir()
	}
	path, err := export.ToFile(s.transcript.Snapshot(), exporter, &export.Options{OutputDir: dir})
	if err != nil {
		s.logger.Warn("export failed", zap.Error(err))
		s.notify(LevelError, "Error: "+err.Error())
		return "", err
	}
	s.logger.Info("transcript exported", zap.String("path", path))
	s.notify(LevelSuccess, ExportedText)
	return path, nil
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback sends free-text feedback. The feedback dialog is closed
// only on success, so a failed submission can be retried.
func (s *Session) SubmitFeedback(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		s.notify(LevelWarning, EmptyFeedbackText)
		return ErrEmptyFeedback
	}

	resp, err := s.backend.Feedback(ctx, text)
	if err != nil {
		s.reportFailure("feedback", err)
		return err
	}

	s.notify(LevelSuccess, resp.Response)
	s.dialogs.Close(DialogFeedback)
	return nil
}

// =============================================================================
// DIALOGS
// =============================================================================

// ShowWelcome opens the welcome dialog.
func (s *Session) ShowWelcome() {
	s.dialogs.Open(DialogWelcome)
}

// OpenFeedback opens the feedback dialog. It reports false when the
// feedback feature is off.
func (s *Session) OpenFeedback() bool {
	if !s.Features().Feedback {
		return false
	}
	s.dialogs.Open(DialogFeedback)
	return true
}

// CloseFeedback dismisses the feedback dialog without submitting.
func (s *Session) CloseFeedback() {
	s.dialogs.Close(DialogFeedback)
}

// reportFailure notifies the user about a failed clear or feedback call.
// Server texts are shown as-is; transport failures get an "Error: " prefix.
func (s *Session) reportFailure(action string, err error) {
	if api.IsApplication(err) {
		text := api.ServerMessage(err)
		s.logger.Warn(action+" rejected", zap.String("response", text))
		s.notify(LevelError, text)
		return
	}
	s.logger.Warn(action+" failed", zap.Error(err))
	s.notify(LevelError, fmt.Sprintf("Error: %v", err))
}
