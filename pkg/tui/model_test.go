package tui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/navigate"
	"github.com/marcus/due/internal/table"
)

const testBase = "https://lms.example.ac.jp"

var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

type harness struct {
	m      Model
	mem    *hidden.MemoryStorage
	opened *navigate.Recorder
	copied *navigate.Recorder
}

func testRows() []models.Assignment {
	return []models.Assignment{
		{ID: 1, CourseID: 10, CourseName: "線形代数", Name: "Report", DueAt: testNow.Add(48 * time.Hour)},
		{ID: 2, CourseID: 20, CourseName: "確率統計", Name: "Quiz", DueAt: testNow.Add(2 * time.Hour)},
		{ID: 3, CourseID: 30, CourseName: "英語", Name: "Essay", DueAt: testNow.Add(5 * 24 * time.Hour)},
	}
}

// newHarness returns a sized model whose stored hidden set has been read
func newHarness(t *testing.T, rows []models.Assignment) *harness {
	t.Helper()
	h := newPendingHarness(t, rows)
	h.send(h.m.Init()())
	return h
}

// newPendingHarness returns a sized model before Init's hidden-set read lands
func newPendingHarness(t *testing.T, rows []models.Assignment) *harness {
	t.Helper()
	h := &harness{
		mem:    hidden.NewMemoryStorage(),
		opened: &navigate.Recorder{},
		copied: &navigate.Recorder{},
	}
	h.m = NewModel(Options{
		Rows:    rows,
		Storage: h.mem,
		BaseURL: testBase,
		Opener:  h.opened,
		Copier:  h.copied,
		Clock:   table.FixedClock(testNow),
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) click(x, y int) tea.Cmd {
	return h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) visibleIDs() []int {
	var ids []int
	for _, r := range h.m.visibleRows() {
		ids = append(ids, r.Assignment.ID)
	}
	return ids
}

func TestInit_LoadsHiddenSetAsync(t *testing.T) {
	h := newPendingHarness(t, testRows())
	h.mem.Save(hidden.Key, "[1]")

	if got := h.visibleIDs(); !slices.Equal(got, []int{2, 1, 3}) {
		t.Fatalf("before load: %v, want [2 1 3]", got)
	}

	msg := h.m.Init()()
	loaded, ok := msg.(HiddenLoadedMsg)
	if !ok {
		t.Fatalf("Init produced %T, want HiddenLoadedMsg", msg)
	}
	h.send(loaded)

	if got := h.visibleIDs(); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("after load: %v, want [2 3]", got)
	}
}

func TestHiddenActions_WaitForStoredSet(t *testing.T) {
	h := newPendingHarness(t, testRows())
	h.mem.Save(hidden.Key, "[1]")
	load := h.m.Init()

	// Hide by key and by clicking the hide cell of the first row, then reset
	h.key("x")
	h.click(118, bodyStartY)
	h.key("R")
	if raw, _, _ := h.mem.Load(hidden.Key); raw != "[1]" {
		t.Fatalf("stored %q before load, want [1] untouched", raw)
	}
	if !strings.Contains(h.m.StatusMessage, "Loading hidden") {
		t.Errorf("status = %q, want loading notice", h.m.StatusMessage)
	}

	h.send(load())
	h.key("x") // first row is now id 2
	if raw, _, _ := h.mem.Load(hidden.Key); raw != "[1,2]" {
		t.Errorf("stored %q after load, want [1,2]", raw)
	}
}

func TestKeys_CursorAndOpen(t *testing.T) {
	h := newHarness(t, testRows())

	h.key("j")
	if h.m.Cursor != 1 || h.m.SelectedID != 1 {
		t.Fatalf("cursor = %d selected = %d, want 1/1", h.m.Cursor, h.m.SelectedID)
	}
	h.key("j")
	h.key("j")
	if h.m.Cursor != 2 {
		t.Errorf("cursor = %d, want clamped at 2", h.m.Cursor)
	}

	h.key("k")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if want := testBase + "/courses/10/assignments/1"; h.opened.Last() != want {
		t.Errorf("opened %q, want %q", h.opened.Last(), want)
	}

	h.key("c")
	if want := testBase + "/courses/10"; h.opened.Last() != want {
		t.Errorf("opened %q, want %q", h.opened.Last(), want)
	}
}

func TestKeys_HideAndReset(t *testing.T) {
	h := newHarness(t, testRows())

	h.key("x") // hides id 2, the first row
	if got := h.visibleIDs(); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("after hide: %v, want [1 3]", got)
	}
	if raw, ok, _ := h.mem.Load(hidden.Key); !ok || raw != "[2]" {
		t.Errorf("stored %q (%v), want [2]", raw, ok)
	}
	if len(h.opened.Opened) != 0 {
		t.Errorf("hide navigated to %v", h.opened.Opened)
	}

	h.key("R")
	if got := h.visibleIDs(); !slices.Equal(got, []int{2, 1, 3}) {
		t.Errorf("after reset: %v, want [2 1 3]", got)
	}
	if _, ok, _ := h.mem.Load(hidden.Key); ok {
		t.Error("reset left the storage entry behind")
	}
}

func TestKeys_Sort(t *testing.T) {
	h := newHarness(t, testRows())

	h.key("3") // due date is already active, so the direction flips
	if got := h.visibleIDs(); !slices.Equal(got, []int{3, 1, 2}) {
		t.Errorf("due desc: %v, want [3 1 2]", got)
	}

	h.key("2") // name ascending
	if got := h.visibleIDs(); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("name asc: %v, want [3 2 1]", got)
	}

	h.key("s")
	if s := h.m.Controller().Sort(); s.Column != table.ColDueAt || s.Desc {
		t.Errorf("after cycle: %+v, want due ascending", s)
	}
}

func TestKeys_NameQuickFilter(t *testing.T) {
	h := newHarness(t, testRows())

	h.key("/")
	if !h.m.SearchMode {
		t.Fatal("search mode not entered")
	}
	for _, r := range "ESS" {
		h.key(string(r))
	}
	if got := h.visibleIDs(); !slices.Equal(got, []int{3}) {
		t.Errorf("filtered: %v, want [3]", got)
	}

	// Globally bound keys are text while typing
	h.key("q")
	h.key("?")
	if h.m.HelpOpen || h.m.SearchInput.Value() != "ESSq?" {
		t.Fatalf("search input = %q, help = %v", h.m.SearchInput.Value(), h.m.HelpOpen)
	}
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.m.SearchMode {
		t.Error("enter should leave search mode")
	}
	if v, ok := h.m.Controller().Filter(table.ColName); !ok || v != table.Text("ESS") {
		t.Errorf("name filter = %v, %v", v, ok)
	}

	// Cancel restores the previous value
	h.key("/")
	h.key("x")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if v, _ := h.m.Controller().Filter(table.ColName); v != table.Text("ESS") {
		t.Errorf("after cancel: %v, want ESS", v)
	}

	// esc in the table clears it
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := h.m.Controller().Filter(table.ColName); ok {
		t.Error("esc did not clear the name filter")
	}
}

func TestKeys_CopyURL(t *testing.T) {
	h := newHarness(t, testRows())
	h.key("y")
	if want := testBase + "/courses/20/assignments/2"; h.copied.Last() != want {
		t.Errorf("copied %q, want %q", h.copied.Last(), want)
	}
	if len(h.opened.Opened) != 0 {
		t.Error("copy should not open a browser")
	}
	if !strings.Contains(h.m.StatusMessage, "Copied") {
		t.Errorf("status = %q", h.m.StatusMessage)
	}
}

func TestKeys_InfoModal(t *testing.T) {
	h := newHarness(t, testRows())
	h.key("i")
	if !h.m.InfoOpen || h.m.InfoID != 2 {
		t.Fatalf("info open = %v id = %d", h.m.InfoOpen, h.m.InfoID)
	}
	if !strings.Contains(h.m.View(), "Quiz") {
		t.Error("info modal does not show the assignment")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if want := testBase + "/courses/20/assignments/2"; h.opened.Last() != want {
		t.Errorf("opened %q, want %q", h.opened.Last(), want)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.InfoOpen {
		t.Error("esc did not close the modal")
	}
}

func TestKeys_Help(t *testing.T) {
	h := newHarness(t, testRows())
	h.key("?")
	if !h.m.HelpOpen {
		t.Fatal("help not open")
	}
	if !strings.Contains(h.m.View(), "Key Bindings") {
		t.Error("help text missing")
	}
	h.key("?")
	if h.m.HelpOpen {
		t.Error("help not closed")
	}
}

// Column spans at width 120: course 0-15, name 17-68, due 70-91,
// lock 93-104, submission 106-115, hide 117-119.

func TestMouse_HeaderClickSorts(t *testing.T) {
	h := newHarness(t, testRows())
	h.click(1, headerRowY)
	if s := h.m.Controller().Sort(); s != (table.SortState{Column: table.ColCourse}) {
		t.Errorf("sort = %+v, want course ascending", s)
	}
	h.click(118, headerRowY)
	if s := h.m.Controller().Sort(); s.Column != table.ColCourse {
		t.Errorf("hide header changed sort to %+v", s)
	}
}

func TestMouse_CourseCellOpensCourseOnly(t *testing.T) {
	h := newHarness(t, testRows())
	h.click(1, bodyStartY)
	if len(h.opened.Opened) != 1 || h.opened.Opened[0] != testBase+"/courses/20" {
		t.Errorf("opened %v, want only the course page", h.opened.Opened)
	}
}

func TestMouse_RowClickOpensAssignment(t *testing.T) {
	h := newHarness(t, testRows())
	h.click(20, bodyStartY+1)
	if want := testBase + "/courses/10/assignments/1"; h.opened.Last() != want {
		t.Errorf("opened %q, want %q", h.opened.Last(), want)
	}
	if h.m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", h.m.Cursor)
	}
}

func TestMouse_HideCellAndResetSlot(t *testing.T) {
	h := newHarness(t, testRows())
	h.click(118, bodyStartY+1)
	if got := h.visibleIDs(); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("after hide click: %v, want [2 3]", got)
	}
	if len(h.opened.Opened) != 0 {
		t.Errorf("hide click navigated to %v", h.opened.Opened)
	}

	h.click(118, filterRowY)
	if got := h.visibleIDs(); !slices.Equal(got, []int{2, 1, 3}) {
		t.Errorf("after reset click: %v, want [2 1 3]", got)
	}
}

func TestMouse_FilterRowOpensForm(t *testing.T) {
	h := newHarness(t, testRows())
	h.click(1, filterRowY)
	if !h.m.FormOpen || h.m.Form == nil {
		t.Fatal("filter form not opened")
	}
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.FormOpen {
		t.Error("esc did not close the form")
	}
}

func TestView_TableAndPlaceholder(t *testing.T) {
	h := newHarness(t, testRows())
	out := h.m.View()
	for _, want := range []string{"科目", "期限 ▲", table.GlyphReset, "Quiz", table.LabelUnlocked, table.GlyphHide} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	empty := newHarness(t, nil)
	if !strings.Contains(empty.m.View(), table.NoMatchingRows) {
		t.Error("placeholder missing for empty collection")
	}
}

func TestReload(t *testing.T) {
	calls := 0
	m := NewModel(Options{
		Rows:  testRows(),
		Clock: table.FixedClock(testNow),
		Reload: func() ([]models.Assignment, error) {
			calls++
			return testRows()[:1], nil
		},
		Opener: &navigate.Recorder{},
	})
	h := &harness{m: m}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 30})

	cmd := h.key("r")
	if cmd == nil {
		t.Fatal("reload produced no command")
	}
	h.send(cmd())
	if calls != 1 {
		t.Errorf("reload called %d times", calls)
	}
	if got := h.visibleIDs(); !slices.Equal(got, []int{1}) {
		t.Errorf("after reload: %v, want [1]", got)
	}
}

func TestNextSortColumn(t *testing.T) {
	cols := table.Columns()
	tests := []struct {
		current, want table.ColumnKey
	}{
		{table.ColCourse, table.ColName},
		{table.ColDueAt, table.ColLocked},
		{table.ColSubmitted, table.ColCourse},
	}
	for _, tt := range tests {
		if got := nextSortColumn(cols, tt.current); got != tt.want {
			t.Errorf("nextSortColumn(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestFilterSummary(t *testing.T) {
	locked, _ := table.ColumnByKey(table.ColLocked)
	name, _ := table.ColumnByKey(table.ColName)
	course, _ := table.ColumnByKey(table.ColCourse)

	tests := []struct {
		col  table.Column
		v    table.FilterValue
		want string
	}{
		{locked, table.Flag(false), table.LabelUnlocked},
		{locked, table.Flag(true), table.LabelLocked},
		{name, table.Text("rep"), `"rep"`},
		{name, nil, "-"},
		{course, table.Choice("英語"), "英語"},
	}
	for _, tt := range tests {
		if got := filterSummary(tt.col, tt.v); got != tt.want {
			t.Errorf("filterSummary(%s, %v) = %q, want %q", tt.col.Key, tt.v, got, tt.want)
		}
	}
}
