package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/due/internal/table"
)

// Screen rows of the table chrome
const (
	headerRowY    = 0
	filterRowY    = 1
	separatorRowY = 2
	bodyStartY    = 3
	footerLines   = 2
)

const columnGap = 1

// fixed widths; the name column takes the remaining space
var columnWidths = map[table.ColumnKey]int{
	table.ColCourse:    16,
	table.ColDueAt:     22,
	table.ColLocked:    12,
	table.ColSubmitted: 10,
	table.ColHide:      3,
}

const minNameWidth = 12

// columnSpan is the horizontal extent of one column on screen
type columnSpan struct {
	Key   table.ColumnKey
	X     int
	Width int
}

// layoutColumns assigns screen columns to the table columns for a terminal
// of the given width.
func layoutColumns(columns []table.Column, width int) []columnSpan {
	fixed := 0
	for _, c := range columns {
		fixed += columnWidths[c.Key]
	}
	fixed += columnGap * (len(columns) - 1)

	nameWidth := width - fixed
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	spans := make([]columnSpan, 0, len(columns))
	x := 0
	for _, c := range columns {
		w, ok := columnWidths[c.Key]
		if !ok {
			w = nameWidth
		}
		spans = append(spans, columnSpan{Key: c.Key, X: x, Width: w})
		x += w + columnGap
	}
	return spans
}

// columnAt returns the column under screen x
func columnAt(spans []columnSpan, x int) (table.ColumnKey, bool) {
	for _, s := range spans {
		if x >= s.X && x < s.X+s.Width {
			return s.Key, true
		}
	}
	return "", false
}

// fit truncates s to width display cells and pads it with spaces
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// joinCells lays out pre-fitted cells with the column gap
func joinCells(cells []string) string {
	return strings.Join(cells, strings.Repeat(" ", columnGap))
}
