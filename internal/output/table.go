package output

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/marcus/due/internal/table"
)

// Sort direction arrows shown next to the active header
const (
	ArrowAsc  = "▲"
	ArrowDesc = "▼"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	highlightStyle = cellStyle.Foreground(lipgloss.Color("196")).Bold(true)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HeaderLabel returns the column title with the sort arrow when it is the
// active sort column
func HeaderLabel(col table.Column, s table.SortState) string {
	if col.Key != s.Column {
		return col.Header
	}
	if s.Desc {
		return col.Header + " " + ArrowDesc
	}
	return col.Header + " " + ArrowAsc
}

// TableOptions control RenderTable
type TableOptions struct {
	// HiddenIDs marks rows that are shown despite being hidden
	HiddenIDs map[int]bool
}

// RenderTable renders a view as a bordered table with an id column in place
// of the hide action. Rows due within the highlight window are drawn in red.
func RenderTable(v table.View, opts TableOptions) string {
	if v.Placeholder {
		return subtleStyle.Render(table.NoMatchingRows)
	}

	var cols []table.Column
	for _, c := range v.Columns {
		if c.Widget == table.WidgetReset {
			continue
		}
		cols = append(cols, c)
	}

	headers := []string{"ID"}
	for _, c := range cols {
		headers = append(headers, HeaderLabel(c, v.Sort))
	}

	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		id := strconv.Itoa(r.Assignment.ID)
		if opts.HiddenIDs[r.Assignment.ID] {
			id += " " + table.GlyphHide
		}
		row := []string{id}
		for _, c := range cols {
			row = append(row, r.Cells[table.ColumnIndex(c.Key)])
		}
		rows = append(rows, row)
	}

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(v.Rows) && v.Rows[row].NearDeadline {
				return highlightStyle
			}
			return cellStyle
		})

	return t.String()
}

// Summary returns the footer line under a table
func Summary(v table.View) string {
	s := fmt.Sprintf("%d shown", len(v.Rows))
	if v.Hidden > 0 {
		s += fmt.Sprintf(", %d hidden", v.Hidden)
	}
	return subtleStyle.Render(s)
}
