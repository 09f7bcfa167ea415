package table

import (
	"slices"

	"github.com/marcus/due/internal/format"
	"github.com/marcus/due/internal/models"
)

// ColumnKey identifies a column
type ColumnKey string

const (
	ColCourse    ColumnKey = "courseName"
	ColName      ColumnKey = "name"
	ColDueAt     ColumnKey = "dueAt"
	ColLocked    ColumnKey = "isLocked"
	ColSubmitted ColumnKey = "isSubmitted"
	ColHide      ColumnKey = "hideButton"
)

// FilterKind selects the predicate a column's filter value is tested with
type FilterKind int

const (
	FilterNone     FilterKind = iota
	FilterEquals              // accessor value == filter value
	FilterIncludes            // accessor string contains filter text
	FilterBetween             // from < accessor time < to, either bound optional
)

// WidgetKind tells the front end which control reports a column's filter
// value
type WidgetKind int

const (
	WidgetNone      WidgetKind = iota
	WidgetSelect               // pick one of Options
	WidgetText                 // free text
	WidgetDateRange            // optional from/to pair
	WidgetReset                // not a filter: clears the hidden set
)

// SortMode selects the comparator for a column
type SortMode int

const (
	SortNone          SortMode = iota // header click is ignored
	SortNatural                       // string lexical, false < true
	SortChronological                 // by time value
)

// Fixed display labels
const (
	LabelLocked      = "ロック"
	LabelUnlocked    = "アンロック"
	LabelSubmitted   = "提出済"
	LabelUnsubmitted = "未提出"
	GlyphHide        = "✕"
	GlyphReset       = "⟳"
	NoMatchingRows   = "該当する課題はありません"
)

// SelectOption is one choice of a select widget
type SelectOption struct {
	Label string
	Value FilterValue
}

// Column is a static column definition. Accessor is nil for columns that
// carry no data value.
type Column struct {
	Key      ColumnKey
	Header   string
	Accessor func(models.Assignment) any
	Filter   FilterKind
	Widget   WidgetKind
	Sort     SortMode
	Cell     func(models.Assignment) string
	Options  func(rows []models.Assignment) []SelectOption
}

// Filterable reports whether the column accepts a filter value
func (c Column) Filterable() bool {
	return c.Filter != FilterNone && c.Accessor != nil
}

// Sortable reports whether a header click changes the sort key
func (c Column) Sortable() bool {
	return c.Sort != SortNone && c.Accessor != nil
}

// Value returns the accessor value for row, or nil
func (c Column) Value(row models.Assignment) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

var registry = []Column{
	{
		Key:      ColCourse,
		Header:   "科目",
		Accessor: func(a models.Assignment) any { return a.CourseName },
		Filter:   FilterEquals,
		Widget:   WidgetSelect,
		Sort:     SortNatural,
		Cell:     func(a models.Assignment) string { return a.CourseName },
		Options:  courseOptions,
	},
	{
		Key:      ColName,
		Header:   "課題",
		Accessor: func(a models.Assignment) any { return a.Name },
		Filter:   FilterIncludes,
		Widget:   WidgetText,
		Sort:     SortNatural,
		Cell:     func(a models.Assignment) string { return a.Name },
	},
	{
		Key:      ColDueAt,
		Header:   "期限",
		Accessor: func(a models.Assignment) any { return a.DueAt },
		Filter:   FilterBetween,
		Widget:   WidgetDateRange,
		Sort:     SortChronological,
		Cell:     dueCell,
	},
	{
		Key:      ColLocked,
		Header:   "ロック状況",
		Accessor: func(a models.Assignment) any { return a.IsLocked },
		Filter:   FilterEquals,
		Widget:   WidgetSelect,
		Sort:     SortNatural,
		Cell:     func(a models.Assignment) string { return flagLabel(a.IsLocked, LabelLocked, LabelUnlocked) },
		Options:  fixedOptions(LabelLocked, LabelUnlocked),
	},
	{
		Key:      ColSubmitted,
		Header:   "提出状況",
		Accessor: func(a models.Assignment) any { return a.IsSubmitted },
		Filter:   FilterEquals,
		Widget:   WidgetSelect,
		Sort:     SortNatural,
		Cell:     func(a models.Assignment) string { return flagLabel(a.IsSubmitted, LabelSubmitted, LabelUnsubmitted) },
		Options:  fixedOptions(LabelSubmitted, LabelUnsubmitted),
	},
	{
		Key:    ColHide,
		Widget: WidgetReset,
		Cell:   func(models.Assignment) string { return GlyphHide },
	},
}

// Columns returns the column registry in display order
func Columns() []Column {
	return slices.Clone(registry)
}

// ColumnByKey looks up a column in the registry
func ColumnByKey(key ColumnKey) (Column, bool) {
	for _, c := range registry {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnIndex returns the display index of key, or -1
func ColumnIndex(key ColumnKey) int {
	return slices.IndexFunc(registry, func(c Column) bool { return c.Key == key })
}

func dueCell(a models.Assignment) string {
	if !a.HasDeadline() {
		return ""
	}
	return format.DateTime(a.DueAt)
}

func flagLabel(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

// courseOptions generates one option per distinct course name, sorted.
func courseOptions(rows []models.Assignment) []SelectOption {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range rows {
		if _, ok := seen[r.CourseName]; ok {
			continue
		}
		seen[r.CourseName] = struct{}{}
		names = append(names, r.CourseName)
	}
	slices.Sort(names)

	opts := make([]SelectOption, 0, len(names))
	for _, n := range names {
		opts = append(opts, SelectOption{Label: n, Value: Choice(n)})
	}
	return opts
}

func fixedOptions(yes, no string) func([]models.Assignment) []SelectOption {
	return func([]models.Assignment) []SelectOption {
		return []SelectOption{
			{Label: yes, Value: Flag(true)},
			{Label: no, Value: Flag(false)},
		}
	}
}
