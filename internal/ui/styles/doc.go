// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles holds the palette and lipgloss styles of the chat TUI.

All colors are lipgloss.AdaptiveColor values. Theme.Toggle switches the
resolved background globally with lipgloss.SetHasDarkBackground and rebuilds
every style, so a single Theme pointer shared by the components is enough:

	theme := styles.NewTheme(styles.ModeAuto)
	theme.Toggle()
	fmt.Println(theme.Mode()) // "light" on a dark terminal
*/
package styles
