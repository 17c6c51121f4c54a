// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// RenderLoading draws the loading line: spinner frame, label and, when
// showBar is set, the determinate bar with its percentage.
func RenderLoading(theme *styles.Theme, spinnerFrame string, percent int, showBar bool, width int) string {
	line := theme.Spinner.Render(spinnerFrame) + " " + theme.ThinkingText.Render("Waiting for MOSDAC...")
	if !showBar {
		return line
	}
	barWidth := width - 40
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}
	return line + "  " + RenderProgress(theme, percent, barWidth)
}

// RenderProgress draws "[####------]  40%".
func RenderProgress(theme *styles.Theme, percent, width int) string {
	bar := styles.RenderProgressBar(width, float64(percent))
	filled := 0
	for filled < len(bar) && bar[filled] != styles.ProgressEmpty[0] {
		filled++
	}
	return "[" + theme.ProgressFill.Render(bar[:filled]) + theme.ProgressEmpty.Render(bar[filled:]) + "] " +
		theme.ProgressLabel.Render(fmt.Sprintf("%3d%%", percent))
}
