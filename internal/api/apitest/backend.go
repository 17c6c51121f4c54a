// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apitest provides an in-process fake of the chatbot service.
//
// Backend serves the three endpoints with scriptable handlers and records
// every request. It mirrors the real server's envelope conventions,
// including JSON error bodies on 4xx and 5xx responses.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jeranaias/mosdac-chat/internal/api"
)

// Canned server texts.
const (
	ClearedText        = "Chat history cleared successfully."
	ClearFailedText    = "Failed to clear chat history."
	FeedbackOKText     = "Feedback submitted successfully!"
	FeedbackFailedText = "Failed to submit feedback."
	EmptyQueryText     = "Please enter a question."
	EmptyFeedbackText  = "Please enter feedback."
	InvalidFormatText  = "Invalid request format."
	UnavailableText    = "Service unavailable. Please try again later."
	InternalErrorText  = "Sorry, something went wrong. Please try again."
)

// =============================================================================
// REPLY
// =============================================================================

// Reply is what a handler sends back.
type Reply struct {
	Code  int
	Body  any    // encoded as JSON when Raw is empty
	Raw   string // sent verbatim, for malformed responses
	Delay time.Duration
}

// AskOK returns a successful ask envelope.
func AskOK(response string, suggestions ...string) Reply {
	return Reply{Code: http.StatusOK, Body: api.AskResponse{
		Status:      api.StatusSuccess,
		Response:    response,
		Suggestions: suggestions,
	}}
}

// AskError returns an ask envelope with status "error".
func AskError(code int, response string) Reply {
	return Reply{Code: code, Body: api.AskResponse{
		Status:      api.StatusError,
		Response:    response,
		Suggestions: []string{},
	}}
}

// StatusOK returns a successful clear/feedback envelope.
func StatusOK(response string) Reply {
	return Reply{Code: http.StatusOK, Body: api.StatusResponse{Status: api.StatusSuccess, Response: response}}
}

// StatusError returns a clear/feedback envelope with status "error".
func StatusError(code int, response string) Reply {
	return Reply{Code: code, Body: api.StatusResponse{Status: api.StatusError, Response: response}}
}

// Malformed returns a non-JSON body.
func Malformed(code int, raw string) Reply {
	return Reply{Code: code, Raw: raw}
}

// After returns r delayed by d.
func (r Reply) After(d time.Duration) Reply {
	r.Delay = d
	return r
}

// =============================================================================
// BACKEND
// =============================================================================

// Backend is a scriptable fake service. Handler funcs may be swapped at any
// time; the zero value is not usable, call NewBackend.
type Backend struct {
	mu       sync.Mutex
	ask      func(query string) Reply
	clear    func() Reply
	feedback func(text string) Reply

	calls     map[string]int
	queries   []string
	feedbacks []string
}

// NewBackend creates a backend with the real server's default behavior:
// canned answers, validation of empty input, successful clear and feedback.
func NewBackend() *Backend {
	return &Backend{
		ask:      CannedAnswer,
		clear:    func() Reply { return StatusOK(ClearedText) },
		feedback: func(string) Reply { return StatusOK(FeedbackOKText) },
		calls:    make(map[string]int),
	}
}

// OnAsk replaces the ask handler.
func (b *Backend) OnAsk(fn func(query string) Reply) *Backend {
	b.mu.Lock()
	b.ask = fn
	b.mu.Unlock()
	return b
}

// OnClear replaces the clear handler.
func (b *Backend) OnClear(fn func() Reply) *Backend {
	b.mu.Lock()
	b.clear = fn
	b.mu.Unlock()
	return b
}

// OnFeedback replaces the feedback handler.
func (b *Backend) OnFeedback(fn func(text string) Reply) *Backend {
	b.mu.Lock()
	b.feedback = fn
	b.mu.Unlock()
	return b
}

// Calls returns how many requests reached path.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// Queries returns every query received by /api/ask, in arrival order.
func (b *Backend) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

// Feedbacks returns every feedback text received.
func (b *Backend) Feedbacks() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.feedbacks...)
}

// RegisterRoutes mounts the endpoints on r.
func (b *Backend) RegisterRoutes(r chi.Router) {
	r.Post(api.PathAsk, b.handleAsk)
	r.Post(api.PathClear, b.handleClear)
	r.Post(api.PathFeedback, b.handleFeedback)
}

// Router returns a chi router serving the backend.
func (b *Backend) Router() *chi.Mux {
	r := chi.NewRouter()
	b.RegisterRoutes(r)
	return r
}

// NewServer starts an httptest server for b and closes it when t finishes.
func NewServer(t testing.TB, b *Backend) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return srv
}

// =============================================================================
// HANDLERS
// =============================================================================

func (b *Backend) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req api.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		b.record(api.PathAsk)
		write(w, r, AskError(http.StatusBadRequest, InvalidFormatText))
		return
	}

	b.mu.Lock()
	b.calls[api.PathAsk]++
	b.queries = append(b.queries, req.Query)
	handler := b.ask
	b.mu.Unlock()

	write(w, r, handler(req.Query))
}

func (b *Backend) handleClear(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[api.PathClear]++
	handler := b.clear
	b.mu.Unlock()

	write(w, r, handler())
}

func (b *Backend) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req api.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		b.record(api.PathFeedback)
		write(w, r, StatusError(http.StatusBadRequest, InvalidFormatText))
		return
	}

	text := strings.TrimSpace(req.Feedback)
	b.mu.Lock()
	b.calls[api.PathFeedback]++
	b.feedbacks = append(b.feedbacks, req.Feedback)
	handler := b.feedback
	b.mu.Unlock()

	if text == "" {
		write(w, r, StatusError(http.StatusBadRequest, EmptyFeedbackText))
		return
	}
	write(w, r, handler(req.Feedback))
}

func (b *Backend) record(path string) {
	b.mu.Lock()
	b.calls[path]++
	b.mu.Unlock()
}

func write(w http.ResponseWriter, r *http.Request, reply Reply) {
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	code := reply.Code
	if code == 0 {
		code = http.StatusOK
	}

	if reply.Raw != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(reply.Raw))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(reply.Body)
}
