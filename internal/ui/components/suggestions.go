// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

// MaxChipWidth is the widest a chip label may render.
const MaxChipWidth = 32

// MaxDropdownRows bounds the search result list.
const MaxDropdownRows = 8

// Truncate shortens s to at most width cells, marking the cut with "...".
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// =============================================================================
// SELECTABLE LIST
// =============================================================================

// picker is a list with an optional highlighted entry. Index -1 means none.
type picker struct {
	items    []string
	selected int
}

func (p *picker) set(items []string) {
	p.items = append([]string(nil), items...)
	p.selected = -1
}

func (p *picker) next() {
	if len(p.items) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.items)
}

func (p *picker) prev() {
	if len(p.items) == 0 {
		return
	}
	if p.selected <= 0 {
		p.selected = len(p.items) - 1
		return
	}
	p.selected--
}

func (p *picker) current() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.items) {
		return "", false
	}
	return p.items[p.selected], true
}

// =============================================================================
// CHIPS
// =============================================================================

// Chips shows the suggestions returned with the last answer.
type Chips struct {
	picker
}

// NewChips creates an empty chip row.
func NewChips() *Chips {
	return &Chips{picker{selected: -1}}
}

// SetItems replaces the chips and drops the highlight. Identical lists keep
// the highlight.
func (c *Chips) SetItems(items []string) {
	if slices.Equal(c.items, items) {
		return
	}
	c.set(items)
}

// Items returns the chip labels.
func (c *Chips) Items() []string { return c.items }

// Next highlights the following chip, wrapping around.
func (c *Chips) Next() { c.next() }

// Prev highlights the previous chip, wrapping around.
func (c *Chips) Prev() { c.prev() }

// Blur removes the highlight.
func (c *Chips) Blur() { c.selected = -1 }

// Selected returns the index of the highlighted chip, or -1.
func (c *Chips) Selected() int { return c.selected }

// Current returns the highlighted chip.
func (c *Chips) Current() (string, bool) { return c.current() }

// Render lays the chips out left to right, wrapping onto new rows at width.
func (c *Chips) Render(theme *styles.Theme, width int) string {
	if len(c.items) == 0 {
		return ""
	}
	var rows []string
	var row []string
	rowWidth := 0
	for i, item := range c.items {
		style := theme.Chip
		if i == c.selected {
			style = theme.ChipSelected
		}
		chip := style.Render(Truncate(item, MaxChipWidth))
		w := lipgloss.Width(chip)
		if width > 0 && rowWidth > 0 && rowWidth+w+1 > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		if rowWidth > 0 {
			row = append(row, " ")
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// =============================================================================
// DROPDOWN
// =============================================================================

// Dropdown lists autocomplete results under the search box.
type Dropdown struct {
	picker
	// Note is shown under the results, e.g. when search is degraded.
	Note string
}

// NewDropdown creates an empty dropdown.
func NewDropdown() *Dropdown {
	return &Dropdown{picker: picker{selected: -1}}
}

// SetItems replaces the results, keeping at most MaxDropdownRows, and
// highlights the first one.
func (d *Dropdown) SetItems(items []string) {
	if len(items) > MaxDropdownRows {
		items = items[:MaxDropdownRows]
	}
	d.set(items)
	if len(d.items) > 0 {
		d.selected = 0
	}
}

// Items returns the listed results.
func (d *Dropdown) Items() []string { return d.items }

// Down moves the highlight down.
func (d *Dropdown) Down() { d.next() }

// Up moves the highlight up.
func (d *Dropdown) Up() { d.prev() }

// Current returns the highlighted result.
func (d *Dropdown) Current() (string, bool) { return d.current() }

// Reset empties the dropdown.
func (d *Dropdown) Reset() {
	d.set(nil)
	d.Note = ""
}

// Render draws the result list in a bordered box.
func (d *Dropdown) Render(theme *styles.Theme, width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	lines := make([]string, 0, len(d.items)+1)
	for i, item := range d.items {
		label := Truncate(item, inner-2)
		if i == d.selected {
			lines = append(lines, theme.DropdownSelected.Render("> "+label))
		} else {
			lines = append(lines, theme.DropdownItem.Render("  "+label))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, theme.DropdownNote.Render("no matches"))
	}
	if d.Note != "" {
		lines = append(lines, theme.DropdownNote.Render(Truncate(d.Note, inner)))
	}
	return theme.Dropdown.Render(strings.Join(lines, "\n"))
}
