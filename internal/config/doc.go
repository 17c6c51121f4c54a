// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads mosdac-chat settings.
//
// Sources, later ones winning:
//
//   - built-in defaults
//   - ~/.mosdac/config.toml (or the file given with --config)
//   - a .env file in the working directory
//   - MOSDAC_* environment variables
//
// Example config.toml:
//
//	[server]
//	base_url = "http://localhost:5000"
//	timeout_secs = 60
//
//	[ui]
//	variant = "full"     # basic | full
//	theme = "auto"       # auto | dark | light
//	welcome_dialog = true
//	export_dir = "."
//	toast_secs = 3
//
//	[features]           # optional per-feature overrides
//	progress = false
//
//	[suggest]
//	dynamic = true
//	min_chars = 2
//
//	[log]
//	level = "info"
//	path = ""            # default ~/.mosdac/mosdac.log, "-" for stderr, "off"
package config
