package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/due/internal/output"
	"github.com/marcus/due/internal/table"
)

const defaultWidth = 100

// View implements tea.Model
func (m Model) View() string {
	if m.Width == 0 {
		m.Width = defaultWidth
	}

	switch {
	case m.FormOpen && m.Form != nil:
		return m.renderModal("フィルタ", m.Form.Form.View(), "enter:next  ctrl+s:apply  esc:cancel")
	case m.HelpOpen:
		return m.renderModal("Help", m.Help.View(), "↑↓:scroll  ?/esc:close")
	case m.InfoOpen:
		return m.renderModal("課題", m.Info.View(), m.Keymap.ModalFooterHelp())
	}

	v := m.ctl.Render()
	spans := layoutColumns(v.Columns, m.Width)

	var sb strings.Builder
	sb.WriteString(m.renderHeaderRow(v, spans))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilterRow(v, spans))
	sb.WriteString("\n")
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", m.Width)))
	sb.WriteString("\n")

	body := m.renderBody(v, spans)
	sb.WriteString(body)

	// Pad so the footer sits at the bottom
	used := strings.Count(body, "\n")
	for i := used; i < m.bodyHeight(); i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderFooter(v))
	return sb.String()
}

func (m Model) renderHeaderRow(v table.View, spans []columnSpan) string {
	cells := make([]string, len(spans))
	for i, col := range v.Columns {
		label := fit(output.HeaderLabel(col, v.Sort), spans[i].Width)
		if col.Key == v.Sort.Column {
			cells[i] = activeHeaderStyle.Render(label)
		} else {
			cells[i] = headerStyle.Render(label)
		}
	}
	return joinCells(cells)
}

func (m Model) renderFilterRow(v table.View, spans []columnSpan) string {
	cells := make([]string, len(spans))
	for i, col := range v.Columns {
		w := spans[i].Width
		switch {
		case col.Widget == table.WidgetReset:
			cells[i] = resetButtonStyle.Render(fit(table.GlyphReset, w))
		case !col.Filterable():
			cells[i] = fit("", w)
		default:
			val, ok := v.Filters[col.Key]
			text := fit(filterSummary(col, val), w)
			if ok {
				cells[i] = filterCellStyle.Render(text)
			} else {
				cells[i] = noFilterStyle.Render(text)
			}
		}
	}
	return joinCells(cells)
}

func (m Model) renderBody(v table.View, spans []columnSpan) string {
	if v.Placeholder {
		return placeholderStyle.Render(table.NoMatchingRows) + "\n"
	}

	var sb strings.Builder
	end := m.Offset + m.bodyHeight()
	if end > len(v.Rows) {
		end = len(v.Rows)
	}
	for i := m.Offset; i < end; i++ {
		sb.WriteString(m.renderRow(v.Rows[i], v.Columns, spans, i == m.Cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderRow(r table.RowView, columns []table.Column, spans []columnSpan, selected bool) string {
	cells := make([]string, len(spans))
	for i, col := range columns {
		text := fit(r.Cells[i], spans[i].Width)
		if selected {
			cells[i] = text
			continue
		}
		cells[i] = cellStyle(col.Key, r).Render(text)
	}
	line := joinCells(cells)
	if selected {
		style := selectedRowStyle.Width(m.Width)
		if r.NearDeadline {
			style = style.Foreground(errorColor).Bold(true)
		}
		return style.Render(line)
	}
	return line
}

// cellStyle picks the style for one body cell
func cellStyle(key table.ColumnKey, r table.RowView) lipgloss.Style {
	if r.NearDeadline && key != table.ColHide {
		return nearDeadlineStyle
	}
	a := r.Assignment
	switch key {
	case table.ColCourse:
		return courseStyle
	case table.ColLocked:
		if a.IsLocked {
			return lockedStyle
		}
		return unlockedStyle
	case table.ColSubmitted:
		if a.IsSubmitted {
			return submittedStyle
		}
		return unsubmittedStyle
	case table.ColHide:
		return hideButtonStyle
	}
	return lipgloss.NewStyle()
}

func (m Model) renderFooter(v table.View) string {
	var status string
	switch {
	case m.SearchMode:
		status = searchStyle.Render("/ ") + m.SearchInput.View()
	case m.StatusMessage != "" && m.StatusIsError:
		status = statusErrorStyle.Render(m.StatusMessage)
	case m.StatusMessage != "":
		status = statusOKStyle.Render(m.StatusMessage)
	default:
		status = helpStyle.Render(m.countsLine(v))
	}
	return status + "\n" + helpStyle.Render(fit(m.Keymap.FooterHelp(), m.Width))
}

func (m Model) countsLine(v table.View) string {
	s := fmt.Sprintf("%d件", len(v.Rows))
	if v.Hidden > 0 {
		s += fmt.Sprintf(" (非表示 %d件)", v.Hidden)
	}
	if total := len(m.ctl.Rows()); total != v.Matched {
		s += fmt.Sprintf(" / 全%d件", total)
	}
	return s + "  · " + m.LastRefresh.Format("15:04")
}

// renderModal centers a bordered box over the screen
func (m Model) renderModal(title, content, footer string) string {
	w, _ := m.modalSize()
	box := modalStyle.Width(w - 2).Render(
		modalTitleStyle.Render(title) + "\n" + content + "\n" + helpStyle.Render(footer),
	)
	height := m.Height
	if height == 0 {
		height = lipgloss.Height(box)
	}
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, box)
}
