package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/due/internal/table"
)

const wheelDelta = 3

// handleMouse maps clicks on the table to controller events: titles sort,
// the filter row edits filters (or clears the hidden set under ⟳), and body
// cells click through to their row unless the cell handles the click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		delta := wheelDelta
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -wheelDelta
		}
		switch {
		case m.HelpOpen:
			if delta > 0 {
				m.Help.ScrollDown(delta)
			} else {
				m.Help.ScrollUp(-delta)
			}
		case m.InfoOpen:
			if delta > 0 {
				m.Info.ScrollDown(delta)
			} else {
				m.Info.ScrollUp(-delta)
			}
		default:
			m.moveCursor(delta)
		}
		return m, nil
	}

	// Ignore other mouse events when modals/overlays are open
	if m.HelpOpen || m.InfoOpen || m.FormOpen {
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	spans := layoutColumns(m.ctl.Columns(), m.Width)
	key, ok := columnAt(spans, msg.X)
	if !ok {
		return m, nil
	}

	switch {
	case msg.Y == headerRowY:
		return m.reportErr(m.ctl.Dispatch(table.Event{Kind: table.HeaderClick, Column: key}))

	case msg.Y == filterRowY:
		col, _ := table.ColumnByKey(key)
		if col.Widget == table.WidgetReset && m.waitForHidden() {
			return m, nil
		}
		if err := m.ctl.Dispatch(table.Event{Kind: table.FilterSlotClick, Column: key}); err != nil {
			return m.reportErr(err)
		}
		if col.Widget == table.WidgetReset {
			m.restoreCursor()
			return m.setStatus("Showing hidden assignments", false)
		}
		if col.Filterable() {
			return m.openFilterForm()
		}
		return m, nil

	case msg.Y >= bodyStartY && msg.Y < bodyStartY+m.bodyHeight():
		idx := m.Offset + msg.Y - bodyStartY
		rows := m.visibleRows()
		if idx >= len(rows) {
			return m, nil
		}
		m.Cursor = idx
		m.SelectedID = rows[idx].Assignment.ID
		if key == table.ColHide && m.waitForHidden() {
			return m, nil
		}
		return m.reportErr(m.ctl.Dispatch(table.Event{
			Kind:   table.CellClick,
			Column: key,
			RowID:  rows[idx].Assignment.ID,
		}))
	}

	return m, nil
}
