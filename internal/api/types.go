// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// Endpoint paths relative to the base URL.
const (
	PathAsk      = "/api/ask"
	PathClear    = "/api/clear"
	PathFeedback = "/api/feedback"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// AskResponse is the envelope returned by /api/ask.
type AskResponse struct {
	Status      string   `json:"status"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// OK reports whether the server accepted the question.
func (r *AskResponse) OK() bool {
	return r.Status == StatusSuccess
}

// StatusResponse is the envelope returned by /api/clear and /api/feedback.
type StatusResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// OK reports whether the request succeeded.
func (r *StatusResponse) OK() bool {
	return r.Status == StatusSuccess
}
