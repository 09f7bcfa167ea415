package table

import (
	"slices"
	"testing"
	"time"

	"github.com/marcus/due/internal/models"
)

// Fixed reference time: Wednesday, 2026-02-18 12:00:00 UTC
var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func ids(rows []models.Assignment) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func sampleRows() []models.Assignment {
	return []models.Assignment{
		{ID: 1, CourseID: 10, CourseName: "線形代数", Name: "Report 1", DueAt: testNow.Add(48 * time.Hour)},
		{ID: 2, CourseID: 20, CourseName: "確率統計", Name: "Quiz A", DueAt: testNow.Add(2 * time.Hour)},
		{ID: 3, CourseID: 10, CourseName: "線形代数", Name: "report 2", DueAt: testNow.Add(-24 * time.Hour)},
		{ID: 4, CourseID: 30, CourseName: "英語", Name: "Essay", DueAt: models.NoDeadline, IsLocked: true},
		{ID: 5, CourseID: 20, CourseName: "確率統計", Name: "Homework", DueAt: testNow.Add(72 * time.Hour), IsSubmitted: true},
	}
}

func TestColumns_DisplayOrder(t *testing.T) {
	want := []ColumnKey{ColCourse, ColName, ColDueAt, ColLocked, ColSubmitted, ColHide}
	cols := Columns()
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i, c := range cols {
		if c.Key != want[i] {
			t.Errorf("column %d = %q, want %q", i, c.Key, want[i])
		}
	}
}

func TestColumns_RegistryIsNotMutable(t *testing.T) {
	cols := Columns()
	cols[0].Header = "changed"
	if c, _ := ColumnByKey(ColCourse); c.Header == "changed" {
		t.Error("mutating Columns() result changed the registry")
	}
}

func TestColumns_Capabilities(t *testing.T) {
	tests := []struct {
		key        ColumnKey
		filterable bool
		sortable   bool
		widget     WidgetKind
	}{
		{ColCourse, true, true, WidgetSelect},
		{ColName, true, true, WidgetText},
		{ColDueAt, true, true, WidgetDateRange},
		{ColLocked, true, true, WidgetSelect},
		{ColSubmitted, true, true, WidgetSelect},
		{ColHide, false, false, WidgetReset},
	}
	for _, tt := range tests {
		c, ok := ColumnByKey(tt.key)
		if !ok {
			t.Fatalf("ColumnByKey(%q) not found", tt.key)
		}
		if c.Filterable() != tt.filterable {
			t.Errorf("%q Filterable() = %v, want %v", tt.key, c.Filterable(), tt.filterable)
		}
		if c.Sortable() != tt.sortable {
			t.Errorf("%q Sortable() = %v, want %v", tt.key, c.Sortable(), tt.sortable)
		}
		if c.Widget != tt.widget {
			t.Errorf("%q Widget = %v, want %v", tt.key, c.Widget, tt.widget)
		}
	}
}

func TestCells(t *testing.T) {
	a := models.Assignment{
		CourseName:  "英語",
		Name:        "Essay",
		DueAt:       time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
		IsLocked:    true,
		IsSubmitted: false,
	}
	want := []string{"英語", "Essay", "2026-03-02 (月) 09:05", LabelLocked, LabelUnsubmitted, GlyphHide}
	for i, c := range Columns() {
		if got := c.Cell(a); got != want[i] {
			t.Errorf("cell %q = %q, want %q", c.Key, got, want[i])
		}
	}
}

func TestDueCell_NoDeadlineIsEmpty(t *testing.T) {
	c, _ := ColumnByKey(ColDueAt)
	a := models.Assignment{DueAt: models.NoDeadline, IsLocked: true, IsSubmitted: true}
	if got := c.Cell(a); got != "" {
		t.Errorf("due cell for sentinel = %q, want empty", got)
	}
	// Same instant in another zone is still the sentinel
	a.DueAt = models.NoDeadline.In(time.FixedZone("JST", 9*60*60))
	if got := c.Cell(a); got != "" {
		t.Errorf("due cell for sentinel in JST = %q, want empty", got)
	}
}

func TestCourseOptions_DistinctSorted(t *testing.T) {
	c, _ := ColumnByKey(ColCourse)
	opts := c.Options(sampleRows())
	var labels []string
	for _, o := range opts {
		labels = append(labels, o.Label)
		if o.Value != Choice(o.Label) {
			t.Errorf("option %q value = %v", o.Label, o.Value)
		}
	}
	want := []string{"確率統計", "線形代数", "英語"}
	slices.Sort(want)
	if !slices.Equal(labels, want) {
		t.Errorf("course options = %v, want %v", labels, want)
	}
}

func TestBetween_OpenInterval(t *testing.T) {
	d := testNow
	tests := []struct {
		name string
		rng  Between
		want bool
	}{
		{"no bounds", Between{}, true},
		{"from before", Between{From: d.Add(-time.Minute)}, true},
		{"from equal excludes", Between{From: d}, false},
		{"from after", Between{From: d.Add(time.Minute)}, false},
		{"to after", Between{To: d.Add(time.Minute)}, true},
		{"to equal excludes", Between{To: d}, false},
		{"to before", Between{To: d.Add(-time.Minute)}, false},
		{"inside", Between{From: d.Add(-time.Hour), To: d.Add(time.Hour)}, true},
		{"inverted", Between{From: d.Add(time.Hour), To: d.Add(-time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.Contains(d); got != tt.want {
				t.Errorf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilters_Conjunctive(t *testing.T) {
	rows := sampleRows()
	cols := Columns()

	// Each predicate on its own
	single := map[ColumnKey]FilterValue{
		ColCourse:    Choice("線形代数"),
		ColName:      Text("report"),
		ColLocked:    Flag(false),
		ColSubmitted: Flag(false),
		ColDueAt:     Between{From: testNow},
	}
	passes := map[ColumnKey]map[int]bool{}
	for key, v := range single {
		passes[key] = map[int]bool{}
		for _, r := range ApplyFilters(cols, rows, FilterState{key: v}, MatchOptions{}) {
			passes[key][r.ID] = true
		}
	}

	// All together: a row is present iff it passes each one independently
	state := FilterState{}
	for k, v := range single {
		state.Set(k, v)
	}
	got := map[int]bool{}
	for _, r := range ApplyFilters(cols, rows, state, MatchOptions{}) {
		got[r.ID] = true
	}
	for _, r := range rows {
		want := true
		for key := range single {
			want = want && passes[key][r.ID]
		}
		if got[r.ID] != want {
			t.Errorf("row %d: in result = %v, want %v", r.ID, got[r.ID], want)
		}
	}
}

func TestApplyFilters_EmptyStateKeepsOrder(t *testing.T) {
	rows := sampleRows()
	got := ApplyFilters(Columns(), rows, FilterState{}, MatchOptions{})
	if !slices.Equal(ids(got), ids(rows)) {
		t.Errorf("got %v, want %v", ids(got), ids(rows))
	}
}

func TestApplyFilters_NameCaseSensitivity(t *testing.T) {
	rows := sampleRows()
	state := FilterState{ColName: Text("Report")}

	insensitive := ApplyFilters(Columns(), rows, state, MatchOptions{})
	if got := ids(insensitive); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("case-insensitive = %v, want [1 3]", got)
	}

	sensitive := ApplyFilters(Columns(), rows, state, MatchOptions{CaseSensitive: true})
	if got := ids(sensitive); !slices.Equal(got, []int{1}) {
		t.Errorf("case-sensitive = %v, want [1]", got)
	}
}

func TestFilterState_SetEmptyRemoves(t *testing.T) {
	s := FilterState{ColName: Text("x"), ColDueAt: Between{From: testNow}}
	s.Set(ColName, Text(""))
	s.Set(ColDueAt, Between{})
	if len(s) != 0 {
		t.Errorf("expected empty state, got %v", s)
	}
	s.Set(ColLocked, Flag(false))
	if _, ok := s[ColLocked]; !ok {
		t.Error("Flag(false) is a real constraint and must be kept")
	}
}

func TestCheckFilter(t *testing.T) {
	tests := []struct {
		key     ColumnKey
		v       FilterValue
		wantErr bool
	}{
		{ColCourse, Choice("x"), false},
		{ColCourse, Text("x"), true},
		{ColName, Text("x"), false},
		{ColName, Flag(true), true},
		{ColDueAt, Between{}, false},
		{ColLocked, Flag(true), false},
		{ColSubmitted, Choice("true"), true},
		{ColHide, Flag(true), true},
		{"bogus", Text("x"), true},
		{ColName, nil, false},
	}
	for _, tt := range tests {
		err := CheckFilter(tt.key, tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckFilter(%q, %#v) err = %v, wantErr %v", tt.key, tt.v, err, tt.wantErr)
		}
	}
}

func TestSortRows_Chronological(t *testing.T) {
	rows := sampleRows()
	asc := SortRows(Columns(), rows, SortState{Column: ColDueAt})
	if got, want := ids(asc), []int{3, 2, 1, 5, 4}; !slices.Equal(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}
	desc := SortRows(Columns(), rows, SortState{Column: ColDueAt, Desc: true})
	if got, want := ids(desc), []int{4, 5, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestSortRows_NaturalAndStable(t *testing.T) {
	rows := sampleRows()

	byLock := SortRows(Columns(), rows, SortState{Column: ColLocked})
	if got, want := ids(byLock), []int{1, 2, 3, 5, 4}; !slices.Equal(got, want) {
		t.Errorf("by lock = %v, want %v (false first, stable)", got, want)
	}

	byName := SortRows(Columns(), rows, SortState{Column: ColName})
	if got, want := ids(byName), []int{4, 5, 2, 1, 3}; !slices.Equal(got, want) {
		t.Errorf("by name = %v, want %v", got, want)
	}
}

func TestSortRows_Idempotent(t *testing.T) {
	for _, s := range []SortState{
		{Column: ColDueAt}, {Column: ColCourse}, {Column: ColSubmitted, Desc: true},
	} {
		once := SortRows(Columns(), sampleRows(), s)
		twice := SortRows(Columns(), once, s)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("%+v: resorting changed order %v -> %v", s, ids(once), ids(twice))
		}
	}
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	before := ids(rows)
	SortRows(Columns(), rows, SortState{Column: ColName, Desc: true})
	if !slices.Equal(ids(rows), before) {
		t.Error("SortRows reordered its input")
	}
}

func TestSortState_Toggle(t *testing.T) {
	s := DefaultSort()
	s = s.Toggle(ColName)
	if s != (SortState{Column: ColName}) {
		t.Errorf("new column = %+v, want ascending name", s)
	}
	s = s.Toggle(ColName)
	if s != (SortState{Column: ColName, Desc: true}) {
		t.Errorf("second click = %+v, want descending name", s)
	}
	s = s.Toggle(ColName)
	if s != (SortState{Column: ColName}) {
		t.Errorf("third click = %+v, want ascending name", s)
	}
	s = s.Toggle(ColDueAt)
	if s != (SortState{Column: ColDueAt}) {
		t.Errorf("switching column = %+v, want ascending dueAt", s)
	}
}

func TestNearDeadline(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"in 23h59m", testNow.Add(23*time.Hour + 59*time.Minute), true},
		{"in 1 minute", testNow.Add(time.Minute), true},
		{"exactly now", testNow, false},
		{"exactly 24h", testNow.Add(24 * time.Hour), false},
		{"in 25h", testNow.Add(25 * time.Hour), false},
		{"1h ago", testNow.Add(-time.Hour), false},
		{"no deadline", models.NoDeadline, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearDeadline(tt.due, testNow); got != tt.want {
				t.Errorf("NearDeadline = %v, want %v", got, tt.want)
			}
		})
	}
}
