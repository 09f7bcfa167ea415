package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/due/internal/output"
)

// modalSize returns the outer modal dimensions: 80% of the terminal,
// clamped to sensible bounds.
func (m Model) modalSize() (int, int) {
	w := m.Width * 80 / 100
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	h := m.Height * 80 / 100
	if h > 40 {
		h = 40
	}
	if h < 10 {
		h = 10
	}
	return w, h
}

// modalContentSize subtracts border, padding, title and footer
func (m Model) modalContentSize() (int, int) {
	w, h := m.modalSize()
	return w - 4, h - 4
}

func (m *Model) resizeModals() {
	w, h := m.modalContentSize()
	if m.Help.Width == 0 && m.Help.Height == 0 {
		m.Help = viewport.New(w, h)
	}
	if m.Info.Width == 0 && m.Info.Height == 0 {
		m.Info = viewport.New(w, h)
	}
	m.Help.Width, m.Help.Height = w, h
	m.Info.Width, m.Info.Height = w, h
}

// openInfo shows the selected assignment's details. The plain markdown is
// shown until the glamour rendering arrives.
func (m Model) openInfo() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	m.resizeModals()
	m.InfoOpen = true
	m.InfoID = row.ID
	m.Info.SetContent(m.infoMarkdown(row.ID))
	m.Info.GotoTop()
	return m, m.renderInfoAsync(row.ID)
}

func (m Model) infoCard(id int) (output.Card, bool) {
	row, ok := m.ctl.Find(id)
	if !ok {
		return output.Card{}, false
	}
	url, _ := m.ctl.AssignmentURL(row)
	return output.Card{Assignment: row, Now: m.clock.Now(), URL: url, Hidden: m.ctl.Hidden().Contains(id)}, true
}

func (m Model) infoMarkdown(id int) string {
	card, ok := m.infoCard(id)
	if !ok {
		return ""
	}
	return card.Markdown()
}

// renderInfoAsync renders the info card off the UI loop
func (m Model) renderInfoAsync(id int) tea.Cmd {
	card, ok := m.infoCard(id)
	if !ok {
		return nil
	}
	width, _ := m.modalContentSize()
	return func() tea.Msg {
		rendered, err := card.Render(width)
		if err != nil {
			slog.Debug("tui: render markdown", "err", err)
			return nil
		}
		return MarkdownRenderedMsg{ID: id, Rendered: rendered}
	}
}
