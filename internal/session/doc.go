// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session is the chat controller shared by every front end.
//
// A Session owns the transcript and the suggestion list, talks to the
// service through a Backend, and reports to the user through two injected
// capabilities: a Notifier for transient toasts and a DialogHost for the
// welcome and feedback dialogs. Front ends observe state changes through a
// Listener and re-render from snapshots.
//
// # Key Types
//
//   - Session: Send, Clear, Export and SubmitFeedback
//   - Features: which optional controls a UI variant offers
//   - Event: re-render notifications (transcript, suggestions, loading, progress)
//
// # Usage
//
//	sess := session.New(api.NewClient(url), session.Options{
//	    Variant:  session.VariantFull,
//	    Notifier: toasts,
//	    Dialogs:  overlays,
//	})
//	sess.SetListener(func(e session.Event) { program.Send(e) })
//	go sess.Send(ctx, "What is INSAT-3D?")
//
// # Concurrency
//
// Session methods block on the network and are meant to be called from
// their own goroutine. Sends are not serialized: two questions may be in
// flight at once, each appending its own user/bot pair. Loading stays on
// until the last one finishes.
package session
