// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/model"
)

// QueryLogPreview caps how much of a question goes into debug logs.
const QueryLogPreview = 80

// Send submits a question and records the exchange.
//
// A blank query only raises a warning and returns ErrEmptyQuery. Otherwise
// the user message is appended at once and exactly one bot message follows
// when the request ends: the answer, or an error-styled message for an
// *api.ApplicationError or *api.TransportError (also returned). Follow-up
// suggestions are replaced only when the answer carries some.
func (s *Session) Send(ctx context.Context, query string) (*model.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.notify(LevelWarning, EmptyQueryText)
		return nil, ErrEmptyQuery
	}

	userMsg := model.NewUserMessage(query)
	s.transcript.Append(userMsg)
	s.emit(Event{Kind: EventTranscript})
	s.logger.Debug("question sent", zap.String("id", userMsg.ID), zap.String("query", userMsg.Preview(QueryLogPreview)))

	s.beginRequest()

	reply, err := s.ask(ctx, query)
	s.transcript.Append(reply)
	s.emit(Event{Kind: EventTranscript})

	s.endRequest()
	s.emit(Event{Kind: EventScrollToBottom})

	return &reply, err
}

// SelectSuggestion sends a chosen suggestion as if it had been typed.
func (s *Session) SelectSuggestion(ctx context.Context, suggestion string) (*model.Message, error) {
	return s.Send(ctx, suggestion)
}

// SelectSuggestionAt sends the i-th follow-up suggestion.
func (s *Session) SelectSuggestionAt(ctx context.Context, i int) (*model.Message, error) {
	item, ok := s.suggestions.At(i)
	if !ok {
		return nil, ErrEmptyQuery
	}
	return s.Send(ctx, item)
}

// Suggest returns search suggestions for a partial query.
func (s *Session) Suggest(ctx context.Context, partial string) []string {
	return s.provider.Suggest(ctx, partial)
}

// ask performs the request and builds the bot reply for every outcome.
func (s *Session) ask(ctx context.Context, query string) (model.Message, error) {
	resp, err := s.backend.Ask(ctx, query)
	switch {
	case err == nil:
		if len(resp.Suggestions) > 0 {
			s.suggestions.Replace(resp.Suggestions)
			s.emit(Event{Kind: EventSuggestions})
		}
		s.notify(LevelSuccess, ResponseReceivedText)
		return model.NewBotMessage(resp.Response), nil

	case api.IsApplication(err):
		text := api.ServerMessage(err)
		s.logger.Warn("ask rejected", zap.String("response", text))
		s.notify(LevelError, text)
		return model.NewErrorMessage("Error: " + text), err

	default:
		desc := err.Error()
		s.logger.Warn("ask failed", zap.Error(err))
		s.notify(LevelError, "Error: "+desc)
		return model.NewErrorMessage("Error: " + desc), err
	}
}
