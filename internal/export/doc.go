// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the chat transcript to a file.
//
// The primary format is plain text, one message per line:
//
//	[20:00:05] User: INSAT-3D
//	[20:00:07] Bot: INSAT-3D is an advanced meteorological satellite...
//
// saved as mosdac_chat_history.txt. JSON and Markdown exporters are also
// available for the CLI; they keep multi-line message text intact.
package export
