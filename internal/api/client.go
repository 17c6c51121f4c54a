// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the development server listens.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds every request. Answers can take a while to
	// generate, so this is generous.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the largest response body the client will read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	userAgent = "mosdac-chat/1.0"
)

// sharedTransport pools connections across every Client.
var sharedTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Client talks to the chatbot service. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger sets the logger used for request tracing.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Ask submits a question. On an application error the decoded envelope is
// returned together with the *ApplicationError.
func (c *Client) Ask(ctx context.Context, query string) (*AskResponse, error) {
	var resp AskResponse
	httpStatus, err := c.post(ctx, PathAsk, AskRequest{Query: query}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return &resp, &ApplicationError{
			Endpoint:   PathAsk,
			HTTPStatus: httpStatus,
			Status:     resp.Status,
			Message:    resp.Response,
		}
	}
	return &resp, nil
}

// Clear asks the server to reset its conversation history.
func (c *Client) Clear(ctx context.Context) (*StatusResponse, error) {
	return c.status(ctx, PathClear, nil)
}

// Feedback submits free-text feedback.
func (c *Client) Feedback(ctx context.Context, text string) (*StatusResponse, error) {
	return c.status(ctx, PathFeedback, FeedbackRequest{Feedback: text})
}

func (c *Client) status(ctx context.Context, path string, body any) (*StatusResponse, error) {
	var resp StatusResponse
	httpStatus, err := c.post(ctx, path, body, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return &resp, &ApplicationError{
			Endpoint:   path,
			HTTPStatus: httpStatus,
			Status:     resp.Status,
			Message:    resp.Response,
		}
	}
	return &resp, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// post sends body (nil for none) as JSON and decodes the reply into out.
// The HTTP status is returned but never treated as an error by itself.
func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, &TransportError{Endpoint: path, Op: "encode", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return 0, &TransportError{Endpoint: path, Op: "request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("endpoint", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return 0, &TransportError{Endpoint: path, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("endpoint", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return resp.StatusCode, &TransportError{Endpoint: path, Op: "read", Err: err}
	}
	if len(data) > MaxResponseSize {
		return resp.StatusCode, &TransportError{
			Endpoint: path,
			Op:       "read",
			Err:      fmt.Errorf("response exceeds %d bytes", MaxResponseSize),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &TransportError{
			Endpoint: path,
			Op:       "decode",
			Err:      fmt.Errorf("HTTP %d: %w", resp.StatusCode, err),
		}
	}
	return resp.StatusCode, nil
}
