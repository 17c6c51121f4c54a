// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// The transcript is held explicitly in memory and every front end renders
// a snapshot of it. Nothing here is persisted across runs.
//
// # Key Types
//
//   - Message: a single timestamped user or bot entry
//   - Transcript: the ordered, append-only list of messages
//   - SuggestionList: follow-up questions offered after an answer
//   - Role: message role enumeration (user, bot)
//
// # Usage
//
//	t := model.NewTranscript("Welcome to the MOSDAC Chatbot!")
//	t.Append(model.NewUserMessage("INSAT-3D"))
//	for _, msg := range t.Snapshot() {
//	    fmt.Println(msg.Line())
//	}
package model
