package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/due/internal/table"
)

func TestLayoutColumns(t *testing.T) {
	spans := layoutColumns(table.Columns(), 120)
	want := []columnSpan{
		{table.ColCourse, 0, 16},
		{table.ColName, 17, 52},
		{table.ColDueAt, 70, 22},
		{table.ColLocked, 93, 12},
		{table.ColSubmitted, 106, 10},
		{table.ColHide, 117, 3},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}

	narrow := layoutColumns(table.Columns(), 40)
	if narrow[1].Width != minNameWidth {
		t.Errorf("narrow name width = %d, want %d", narrow[1].Width, minNameWidth)
	}
}

func TestColumnAt(t *testing.T) {
	spans := layoutColumns(table.Columns(), 120)
	tests := []struct {
		x    int
		want table.ColumnKey
		ok   bool
	}{
		{0, table.ColCourse, true},
		{15, table.ColCourse, true},
		{16, "", false}, // gap
		{17, table.ColName, true},
		{119, table.ColHide, true},
		{120, "", false},
	}
	for _, tt := range tests {
		got, ok := columnAt(spans, tt.x)
		if got != tt.want || ok != tt.ok {
			t.Errorf("columnAt(%d) = %q, %v; want %q, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"abc", 5},
		{"abcdefgh", 5},
		{"線形代数レポート", 6},
		{"", 3},
	}
	for _, tt := range tests {
		got := fit(tt.in, tt.width)
		if w := lipgloss.Width(got); w != tt.width {
			t.Errorf("fit(%q, %d) width = %d (%q)", tt.in, tt.width, w, got)
		}
	}
	if fit("abc", 0) != "" {
		t.Error("zero width should give empty string")
	}
}
