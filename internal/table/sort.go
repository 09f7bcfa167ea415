package table

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/marcus/due/internal/models"
)

// SortState is the single active sort key. There is always exactly one.
type SortState struct {
	Column ColumnKey
	Desc   bool
}

// DefaultSort orders by due date, earliest first
func DefaultSort() SortState {
	return SortState{Column: ColDueAt}
}

// Toggle returns the state after a header click on key: the direction
// flips when key is already active, otherwise key becomes the ascending
// sort key.
func (s SortState) Toggle(key ColumnKey) SortState {
	if s.Column == key {
		return SortState{Column: key, Desc: !s.Desc}
	}
	return SortState{Column: key}
}

// SortRows returns a stably ordered copy of rows. An unknown or unsortable
// sort column leaves the order unchanged.
func SortRows(columns []Column, rows []models.Assignment, state SortState) []models.Assignment {
	out := slices.Clone(rows)

	idx := slices.IndexFunc(columns, func(c Column) bool { return c.Key == state.Column })
	if idx < 0 || !columns[idx].Sortable() {
		return out
	}
	col := columns[idx]

	compare := compareNatural
	if col.Sort == SortChronological {
		compare = compareChronological
	}

	slices.SortStableFunc(out, func(a, b models.Assignment) int {
		c := compare(col.Value(a), col.Value(b))
		if state.Desc {
			return -c
		}
		return c
	})
	return out
}

func compareChronological(a, b any) int {
	ta, _ := a.(time.Time)
	tb, _ := b.(time.Time)
	return ta.Compare(tb)
}

// compareNatural orders values of the same dynamic type: strings
// lexically, false before true, numbers and times by value. Mismatched
// types compare equal.
func compareNatural(a, b any) int {
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return strings.Compare(va, vb)
		}
	case bool:
		if vb, ok := b.(bool); ok {
			return compareBool(va, vb)
		}
	case int:
		if vb, ok := b.(int); ok {
			return cmp.Compare(va, vb)
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
