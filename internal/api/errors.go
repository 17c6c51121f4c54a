// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ApplicationError is returned when the server replied with a well-formed
// envelope whose status is not "success".
type ApplicationError struct {
	Endpoint   string
	HTTPStatus int
	Status     string
	Message    string
}

// Error implements the error interface.
func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed (HTTP %d, status %q)", e.Endpoint, e.HTTPStatus, e.Status)
	}
	return e.Message
}

// TransportError is returned when no usable envelope could be obtained.
type TransportError struct {
	Endpoint string
	Op       string // "request", "read", "decode"
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsApplication reports whether err wraps an *ApplicationError.
func IsApplication(err error) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr)
}

// IsTransport reports whether err wraps a *TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// ServerMessage returns the text the user should see for err: the server
// text for application errors, the error string otherwise.
func ServerMessage(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
