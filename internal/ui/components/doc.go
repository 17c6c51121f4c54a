// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the building blocks of the chat TUI.

# Capabilities

ToastManager (toast.go) implements session.Notifier and DialogState
(dialog.go) implements session.DialogHost. Both are mutex guarded because the
session calls them from the goroutines that run its requests; the chat model
reads them back in View.

# Display

  - Header / StatusBar (header.go) - title, variant badge, shortcut hints
  - RenderMessage (message.go) - transcript entries, bot text through glamour
  - Chips / Dropdown (suggestions.go) - suggestion chips and search results
  - RenderProgress (progress.go) - determinate progress line
*/
package components
