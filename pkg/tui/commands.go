package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/due/internal/table"
	"github.com/marcus/due/pkg/tui/keymap"
)

// currentContext returns the keymap context for the active UI state
func (m Model) currentContext() keymap.Context {
	switch {
	case m.HelpOpen:
		return keymap.ContextHelp
	case m.FormOpen:
		return keymap.ContextForm
	case m.InfoOpen:
		return keymap.ContextModal
	case m.SearchMode:
		return keymap.ContextSearch
	}
	return keymap.ContextMain
}

// handleFormUpdate forwards messages to the huh form, intercepting our own
// submit and cancel keys first
func (m Model) handleFormUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlS:
			return m.executeCommand(keymap.CmdFormSubmit)
		case tea.KeyEsc:
			return m.executeCommand(keymap.CmdFormCancel)
		case tea.KeyCtrlC:
			return m.executeCommand(keymap.CmdQuit)
		}
	}

	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = sizeMsg.Width
		m.Height = sizeMsg.Height
		m.resizeModals()
	}

	form, cmd := m.Form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form.Form = f
	}

	// Enter on the last field completes the form
	if m.Form.Form.State == huh.StateCompleted {
		return m.executeCommand(keymap.CmdFormSubmit)
	}

	return m, cmd
}

// handleKey processes key input using the centralized keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	// Search mode: forward most keys to textinput for cursor support
	if ctx == keymap.ContextSearch {
		// Printable keys are always text, even when bound globally
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			if cmd, found := m.Keymap.Lookup(msg, ctx); found {
				return m.executeCommand(cmd)
			}
		}

		var inputCmd tea.Cmd
		m.SearchInput, inputCmd = m.SearchInput.Update(msg)
		m.applyNameFilter(m.SearchInput.Value())
		return m, inputCmd
	}

	cmd, found := m.Keymap.Lookup(msg, ctx)
	if !found {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand executes a keymap command and returns the updated model and any tea.Cmd
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	// Global commands
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.HelpOpen = !m.HelpOpen
		if m.HelpOpen {
			m.resizeModals()
			m.Help.SetContent(m.Keymap.GenerateHelp())
			m.Help.GotoTop()
		}
		return m, nil

	case keymap.CmdRefresh:
		return m, m.fetchData()

	// Cursor movement
	case keymap.CmdCursorDown, keymap.CmdScrollDown:
		switch {
		case m.HelpOpen:
			m.Help.ScrollDown(1)
		case m.InfoOpen:
			m.Info.ScrollDown(1)
		default:
			m.moveCursor(1)
		}
		return m, nil

	case keymap.CmdCursorUp, keymap.CmdScrollUp:
		switch {
		case m.HelpOpen:
			m.Help.ScrollUp(1)
		case m.InfoOpen:
			m.Info.ScrollUp(1)
		default:
			m.moveCursor(-1)
		}
		return m, nil

	case keymap.CmdHalfPageDown:
		m.moveCursor(m.bodyHeight() / 2)
		return m, nil

	case keymap.CmdHalfPageUp:
		m.moveCursor(-m.bodyHeight() / 2)
		return m, nil

	case keymap.CmdCursorTop:
		m.setCursor(0)
		return m, nil

	case keymap.CmdCursorBottom:
		m.setCursor(len(m.visibleRows()) - 1)
		return m, nil

	case keymap.CmdClose:
		m.InfoOpen = false
		return m, nil

	// Row actions
	case keymap.CmdOpenAssignment:
		return m.rowEvent(table.RowClick, "")

	case keymap.CmdOpenCourse:
		return m.rowEvent(table.CellClick, table.ColCourse)

	case keymap.CmdHideRow:
		if m.waitForHidden() {
			return m, nil
		}
		model, c := m.rowEvent(table.CellClick, table.ColHide)
		if mm, ok := model.(Model); ok && mm.InfoOpen {
			mm.InfoOpen = false
			return mm, c
		}
		return model, c

	case keymap.CmdResetHidden:
		if m.waitForHidden() {
			return m, nil
		}
		err := m.ctl.Dispatch(table.Event{Kind: table.FilterSlotClick, Column: table.ColHide})
		if err != nil {
			return m.reportErr(err)
		}
		m.restoreCursor()
		return m.setStatus("Showing hidden assignments", false)

	case keymap.CmdCopyURL:
		return m.copySelectedURL()

	case keymap.CmdOpenInfo:
		return m.openInfo()

	// Sorting
	case keymap.CmdSortColumn1, keymap.CmdSortColumn2, keymap.CmdSortColumn3,
		keymap.CmdSortColumn4, keymap.CmdSortColumn5:
		n := int(cmd[len(cmd)-1] - '1')
		cols := m.ctl.Columns()
		if n < 0 || n >= len(cols) {
			return m, nil
		}
		return m.reportErr(m.ctl.Dispatch(table.Event{Kind: table.HeaderClick, Column: cols[n].Key}))

	case keymap.CmdCycleSortKey:
		return m.reportErr(m.ctl.SetSort(table.SortState{Column: nextSortColumn(m.ctl.Columns(), m.ctl.Sort().Column)}))

	// Filtering
	case keymap.CmdOpenFilterForm:
		return m.openFilterForm()

	case keymap.CmdResetFilters:
		m.ctl.ResetState()
		m.SearchInput.SetValue("")
		m.restoreCursor()
		return m, nil

	case keymap.CmdSearch:
		m.SearchMode = true
		m.searchPrev, _ = m.ctl.Filter(table.ColName)
		if m.searchPrev != nil {
			m.SearchInput.SetValue(m.searchPrev.String())
		}
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()

	case keymap.CmdSearchConfirm:
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, nil

	case keymap.CmdSearchCancel:
		m.SearchMode = false
		m.SearchInput.Blur()
		prev := ""
		if m.searchPrev != nil {
			prev = m.searchPrev.String()
		}
		m.SearchInput.SetValue(prev)
		m.applyNameFilter(prev)
		return m, nil

	case keymap.CmdSearchClear:
		m.SearchInput.SetValue("")
		m.applyNameFilter("")
		return m, nil

	// Form commands
	case keymap.CmdFormSubmit:
		if m.Form == nil {
			m.FormOpen = false
			return m, nil
		}
		err := m.Form.Apply(m.ctl)
		if err != nil {
			// Leave the form open so the input can be fixed
			return m.setStatus("Error: "+err.Error(), true)
		}
		m.FormOpen = false
		if v, ok := m.ctl.Filter(table.ColName); ok {
			m.SearchInput.SetValue(v.String())
		} else {
			m.SearchInput.SetValue("")
		}
		m.Form = nil
		m.restoreCursor()
		return m, nil

	case keymap.CmdFormCancel:
		m.FormOpen = false
		m.Form = nil
		return m, nil
	}

	return m, nil
}

// rowEvent dispatches a row or cell event for the selected row
func (m Model) rowEvent(kind table.EventKind, col table.ColumnKey) (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if m.InfoOpen {
		row, ok = m.ctl.Find(m.InfoID)
	}
	if !ok {
		return m, nil
	}
	return m.reportErr(m.ctl.Dispatch(table.Event{Kind: kind, Column: col, RowID: row.ID}))
}

// applyNameFilter sets the name filter from the quick filter text
func (m *Model) applyNameFilter(text string) {
	// The name column always takes text, so this only fails if the
	// registry loses ColName
	if err := m.ctl.Dispatch(table.Event{Kind: table.FilterChange, Column: table.ColName, Value: table.Text(text)}); err != nil {
		slog.Error("tui: name filter", "err", err)
	}
	m.restoreCursor()
}

func (m Model) openFilterForm() (tea.Model, tea.Cmd) {
	m.Form = NewFilterForm(m.ctl, m.clock.Now())
	m.FormOpen = true
	m.SearchMode = false
	m.SearchInput.Blur()
	return m, m.Form.Form.Init()
}

func (m Model) copySelectedURL() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if m.InfoOpen {
		row, ok = m.ctl.Find(m.InfoID)
	}
	if !ok {
		return m, nil
	}
	url, err := m.ctl.AssignmentURL(row)
	if err == nil {
		err = m.copier.Open(url)
	}
	if err != nil {
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus("Copied "+url, false)
}

// nextSortColumn returns the sortable column after current, wrapping
func nextSortColumn(cols []table.Column, current table.ColumnKey) table.ColumnKey {
	start := 0
	for i, c := range cols {
		if c.Key == current {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(cols); i++ {
		c := cols[(start+i)%len(cols)]
		if c.Sortable() {
			return c.Key
		}
	}
	return current
}

// filterSummary is the compact text shown in a column's filter slot
func filterSummary(col table.Column, v table.FilterValue) string {
	if v == nil || v.Empty() {
		return "-"
	}
	switch val := v.(type) {
	case table.Text:
		return `"` + string(val) + `"`
	case table.Flag:
		if col.Options != nil {
			for _, o := range col.Options(nil) {
				if o.Value == v {
					return o.Label
				}
			}
		}
	case table.Between:
		return strings.TrimSpace(val.String())
	}
	return v.String()
}
