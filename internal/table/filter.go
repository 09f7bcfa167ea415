package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/due/internal/dateparse"
	"github.com/marcus/due/internal/format"
	"github.com/marcus/due/internal/models"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotFilterable = errors.New("column is not filterable")
	ErrFilterShape   = errors.New("filter value does not match column")
)

// FilterValue is the value a filter widget reports for its column.
// Variants: Choice, Text, Flag, Between.
type FilterValue interface {
	// Empty reports whether the value imposes no constraint
	Empty() bool
	String() string
}

// Choice is an equality filter on a string value, picked from options
type Choice string

func (c Choice) Empty() bool    { return c == "" }
func (c Choice) String() string { return string(c) }

// Text is a substring filter
type Text string

func (t Text) Empty() bool    { return t == "" }
func (t Text) String() string { return string(t) }

// Flag is an equality filter on a boolean value
type Flag bool

func (f Flag) Empty() bool    { return false }
func (f Flag) String() string { return strconv.FormatBool(bool(f)) }

// Between is an open interval filter on a time value. A zero bound is
// absent.
type Between struct {
	From time.Time
	To   time.Time
}

func (b Between) Empty() bool { return b.From.IsZero() && b.To.IsZero() }

func (b Between) String() string {
	from, to := "", ""
	if !b.From.IsZero() {
		from = format.Date(b.From)
	}
	if !b.To.IsZero() {
		to = format.Date(b.To)
	}
	return from + " 〜 " + to
}

// Contains reports whether from < t < to, ignoring absent bounds.
func (b Between) Contains(t time.Time) bool {
	return (b.From.IsZero() || b.From.Before(t)) &&
		(b.To.IsZero() || b.To.After(t))
}

// FilterState maps column keys to their active filter values
type FilterState map[ColumnKey]FilterValue

// DefaultFilters returns the startup filters: unsubmitted, unlocked, and
// due from today's midnight onwards.
func DefaultFilters(now time.Time) FilterState {
	return FilterState{
		ColSubmitted: Flag(false),
		ColLocked:    Flag(false),
		ColDueAt:     Between{From: dateparse.StartOfDay(now)},
	}
}

// Set stores v for key, or removes the entry when v is nil or empty.
func (s FilterState) Set(key ColumnKey, v FilterValue) {
	if v == nil || v.Empty() {
		delete(s, key)
		return
	}
	s[key] = v
}

// Clone returns a copy of s
func (s FilterState) Clone() FilterState {
	out := make(FilterState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MatchOptions tune predicate behavior
type MatchOptions struct {
	CaseSensitive bool // substring filters
}

type predicate func(value any, fv FilterValue, opts MatchOptions) bool

var predicates = map[FilterKind]predicate{
	FilterEquals:   equalsPredicate,
	FilterIncludes: includesPredicate,
	FilterBetween:  betweenPredicate,
}

func equalsPredicate(value any, fv FilterValue, _ MatchOptions) bool {
	switch want := fv.(type) {
	case Choice:
		got, ok := value.(string)
		return ok && got == string(want)
	case Flag:
		got, ok := value.(bool)
		return ok && got == bool(want)
	}
	return false
}

func includesPredicate(value any, fv FilterValue, opts MatchOptions) bool {
	got, ok := value.(string)
	want, isText := fv.(Text)
	if !ok || !isText {
		return false
	}
	if opts.CaseSensitive {
		return strings.Contains(got, string(want))
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(string(want)))
}

func betweenPredicate(value any, fv FilterValue, _ MatchOptions) bool {
	got, ok := value.(time.Time)
	rng, isRange := fv.(Between)
	return ok && isRange && rng.Contains(got)
}

// CheckFilter validates that v has the shape column key expects.
func CheckFilter(key ColumnKey, v FilterValue) error {
	col, ok := ColumnByKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !col.Filterable() {
		return fmt.Errorf("%w: %q", ErrNotFilterable, key)
	}
	if v == nil {
		return nil
	}

	var valid bool
	switch col.Filter {
	case FilterEquals:
		switch col.Value(models.Assignment{}).(type) {
		case string:
			_, valid = v.(Choice)
		case bool:
			_, valid = v.(Flag)
		}
	case FilterIncludes:
		_, valid = v.(Text)
	case FilterBetween:
		_, valid = v.(Between)
	}
	if !valid {
		return fmt.Errorf("%w: %q got %T", ErrFilterShape, key, v)
	}
	return nil
}

// ApplyFilters returns the rows satisfying every non-empty filter in state,
// in input order. Keys that are not filterable columns impose no
// constraint.
func ApplyFilters(columns []Column, rows []models.Assignment, state FilterState, opts MatchOptions) []models.Assignment {
	type active struct {
		col  Column
		val  FilterValue
		pred predicate
	}
	var filters []active
	for _, col := range columns {
		v, ok := state[col.Key]
		if !ok || v == nil || v.Empty() || !col.Filterable() {
			continue
		}
		filters = append(filters, active{col: col, val: v, pred: predicates[col.Filter]})
	}

	out := make([]models.Assignment, 0, len(rows))
next:
	for _, row := range rows {
		for _, f := range filters {
			if !f.pred(f.col.Value(row), f.val, opts) {
				continue next
			}
		}
		out = append(out, row)
	}
	return out
}
