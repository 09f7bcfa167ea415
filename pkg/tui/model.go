// Package tui is the interactive assignment table: a Bubble Tea front end
// that turns key presses and mouse clicks into table controller events.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/navigate"
	"github.com/marcus/due/internal/table"
	"github.com/marcus/due/pkg/tui/keymap"
)

const statusTimeout = 3 * time.Second

// Options configures a Model
type Options struct {
	Rows    []models.Assignment
	Storage hidden.Storage
	BaseURL string

	// Reload re-reads the collection; nil disables reloading
	Reload func() ([]models.Assignment, error)

	// Opener opens locations; nil uses the system browser
	Opener navigate.Opener
	// Copier receives copied URLs; nil uses the system clipboard
	Copier navigate.Opener

	CaseSensitiveName bool
	Clock             table.Clock
	Keymap            *keymap.Registry
}

// Model is the main Bubble Tea model for the assignment table
type Model struct {
	ctl     *table.Controller
	storage hidden.Storage
	reload  func() ([]models.Assignment, error)
	copier  navigate.Opener
	clock   table.Clock

	// Window dimensions
	Width  int
	Height int

	// Hide and reset wait until Init's read of the stored set lands, so a
	// write cannot replace ids that were not loaded yet
	hiddenReady bool

	// Table state
	Cursor     int
	Offset     int
	SelectedID int // preserved across re-renders and reloads

	// Name quick filter
	SearchMode  bool
	SearchInput textinput.Model
	searchPrev  table.FilterValue

	// Modals
	HelpOpen bool
	Help     viewport.Model

	InfoOpen bool
	InfoID   int
	Info     viewport.Model

	FormOpen bool
	Form     *FilterForm

	// Keymap registry for keyboard shortcuts
	Keymap *keymap.Registry

	// Status message (temporary feedback, e.g., "Copied to clipboard")
	StatusMessage string
	StatusIsError bool

	LastRefresh time.Time
}

// NewModel creates the table model. The hidden set is read in the
// background by Init, so the first frames may show rows that are hidden.
func NewModel(opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = table.SystemClock
	}
	storage := opts.Storage
	if storage == nil {
		storage = hidden.NewMemoryStorage()
	}
	opener := opts.Opener
	if opener == nil {
		opener = navigate.Browser{}
	}
	copier := opts.Copier
	if copier == nil {
		copier = navigate.Clipboard{}
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}

	ctl := table.NewController(opts.Rows,
		table.WithClock(clock),
		table.WithStore(hidden.NewStore(storage)),
		table.WithNavigator(opener, opts.BaseURL),
		table.WithCaseSensitiveName(opts.CaseSensitiveName),
	)

	searchInput := textinput.New()
	searchInput.Placeholder = "課題名"
	searchInput.Prompt = ""
	searchInput.Width = 40
	searchInput.CharLimit = 200

	return Model{
		ctl:         ctl,
		storage:     storage,
		reload:      opts.Reload,
		copier:      copier,
		clock:       clock,
		SearchInput: searchInput,
		Keymap:      km,
		LastRefresh: clock.Now(),
	}
}

// Controller exposes the table controller
func (m Model) Controller() *table.Controller {
	return m.ctl
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.loadHidden()
}

func (m Model) loadHidden() tea.Cmd {
	storage := m.storage
	return func() tea.Msg {
		return HiddenLoadedMsg{IDs: hidden.Read(storage)}
	}
}

// waitForHidden reports the pending load and returns true while the
// stored hidden set has not been read
func (m *Model) waitForHidden() bool {
	if m.hiddenReady {
		return false
	}
	m.StatusMessage = "Loading hidden assignments..."
	m.StatusIsError = false
	return true
}

func (m Model) fetchData() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		rows, err := reload()
		return DataLoadedMsg{Rows: rows, Err: err}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Form mode: forward all messages to huh form first
	if m.FormOpen && m.Form != nil && m.Form.Form != nil {
		return m.handleFormUpdate(msg)
	}

	// Search mode: forward non-key messages to textinput (cursor blink, etc.)
	if m.SearchMode {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var inputCmd tea.Cmd
			m.SearchInput, inputCmd = m.SearchInput.Update(msg)
			if inputCmd != nil {
				return m, inputCmd
			}
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resizeModals()
		m.ensureCursorVisible()
		if m.InfoOpen {
			return m, m.renderInfoAsync(m.InfoID)
		}
		return m, nil

	case HiddenLoadedMsg:
		m.ctl.RestoreHidden(msg.IDs)
		m.hiddenReady = true
		m.restoreCursor()
		return m, nil

	case DataLoadedMsg:
		if msg.Err != nil {
			slog.Debug("tui: reload", "err", msg.Err)
			return m.setStatus("Reload failed: "+msg.Err.Error(), true)
		}
		m.ctl.SetRows(msg.Rows)
		m.LastRefresh = m.clock.Now()
		m.restoreCursor()
		return m.setStatus("Reloaded", false)

	case MarkdownRenderedMsg:
		if m.InfoOpen && msg.ID == m.InfoID {
			m.Info.SetContent(msg.Rendered)
		}
		return m, nil

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil
	}

	return m, nil
}

// setStatus shows a footer message that clears itself
func (m Model) setStatus(text string, isError bool) (Model, tea.Cmd) {
	m.StatusMessage = text
	m.StatusIsError = isError
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

// reportErr shows err in the footer, or does nothing for nil
func (m Model) reportErr(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		m.restoreCursor()
		return m, nil
	}
	slog.Debug("tui: action", "err", err)
	return m.setStatus("Error: "+err.Error(), true)
}

// visibleRows renders the controller and returns the body rows
func (m Model) visibleRows() []table.RowView {
	return m.ctl.Render().Rows
}

// selectedRow returns the row under the cursor
func (m Model) selectedRow() (models.Assignment, bool) {
	rows := m.visibleRows()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return models.Assignment{}, false
	}
	return rows[m.Cursor].Assignment, true
}

// bodyHeight is the number of body rows that fit on screen
func (m Model) bodyHeight() int {
	h := m.Height - bodyStartY - footerLines
	if h < 1 {
		return 1
	}
	return h
}

// moveCursor moves the cursor by delta rows, clamped
func (m *Model) moveCursor(delta int) {
	m.setCursor(m.Cursor + delta)
}

func (m *Model) setCursor(i int) {
	rows := m.visibleRows()
	if i >= len(rows) {
		i = len(rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.Cursor = i
	if i < len(rows) {
		m.SelectedID = rows[i].Assignment.ID
	}
	m.ensureCursorVisible()
}

// restoreCursor keeps the selection on the same assignment after the
// visible rows change, falling back to the same position.
func (m *Model) restoreCursor() {
	for i, r := range m.visibleRows() {
		if r.Assignment.ID == m.SelectedID {
			m.Cursor = i
			m.ensureCursorVisible()
			return
		}
	}
	m.setCursor(m.Cursor)
}

// ensureCursorVisible adjusts Offset to keep the cursor in view
func (m *Model) ensureCursorVisible() {
	h := m.bodyHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+h {
		m.Offset = m.Cursor - h + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}
