// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the MOSDAC chatbot service.
//
// The service exposes three JSON endpoints:
//
//	POST /api/ask       {"query": "..."}    -> {"status", "response", "suggestions"}
//	POST /api/clear     (no body)           -> {"status", "response"}
//	POST /api/feedback  {"feedback": "..."} -> {"status", "response"}
//
// Failures come back in two kinds. An *ApplicationError means the server
// answered with a status other than "success"; its Message is the server
// text. A *TransportError means no usable envelope arrived (network failure,
// unreadable body, invalid JSON). The server sends JSON envelopes with 4xx
// and 5xx codes too, so the body is decoded whatever the HTTP status.
package api
