package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/marcus/due/internal/dateparse"
	"github.com/marcus/due/internal/table"
)

// anyOption is the select value meaning "no filter"
const anyOption = ""

// FilterForm holds the filter form modal. Field values are bound as
// strings and converted to filter values on Apply.
type FilterForm struct {
	Form *huh.Form
	now  time.Time

	Course    string
	Name      string
	From      string
	To        string
	Locked    string // "", "true", "false"
	Submitted string
}

// NewFilterForm creates a form pre-filled from the current filter state
func NewFilterForm(ctl *table.Controller, now time.Time) *FilterForm {
	f := &FilterForm{now: now}

	if v, ok := ctl.Filter(table.ColCourse); ok {
		f.Course = v.String()
	}
	if v, ok := ctl.Filter(table.ColName); ok {
		f.Name = v.String()
	}
	if v, ok := ctl.Filter(table.ColDueAt); ok {
		if b, ok := v.(table.Between); ok {
			f.From = dateparse.FormatInput(b.From)
			f.To = dateparse.FormatInput(b.To)
		}
	}
	if v, ok := ctl.Filter(table.ColLocked); ok {
		f.Locked = v.String()
	}
	if v, ok := ctl.Filter(table.ColSubmitted); ok {
		f.Submitted = v.String()
	}

	f.buildForm(ctl)
	return f
}

func (f *FilterForm) buildForm(ctl *table.Controller) {
	courseOptions := []huh.Option[string]{huh.NewOption("すべて", anyOption)}
	for _, o := range ctl.Options(table.ColCourse) {
		courseOptions = append(courseOptions, huh.NewOption(o.Label, o.Value.String()))
	}

	flagOptions := func(key table.ColumnKey) []huh.Option[string] {
		opts := []huh.Option[string]{huh.NewOption("すべて", anyOption)}
		for _, o := range ctl.Options(key) {
			opts = append(opts, huh.NewOption(o.Label, o.Value.String()))
		}
		return opts
	}

	validDate := func(s string) error {
		_, err := dateparse.ParseTimeFrom(s, f.now)
		return err
	}

	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(header(table.ColCourse)).
				Options(courseOptions...).
				Value(&f.Course),
			huh.NewInput().
				Title(header(table.ColName)).
				Placeholder("部分一致").
				Value(&f.Name),
			huh.NewInput().
				Title(header(table.ColDueAt)+" (from)").
				Placeholder("2026-04-01, today, -7d").
				Value(&f.From).
				Validate(validDate),
			huh.NewInput().
				Title(header(table.ColDueAt)+" (to)").
				Placeholder("2026-04-30, +2w, next-month").
				Value(&f.To).
				Validate(validDate),
			huh.NewSelect[string]().
				Title(header(table.ColLocked)).
				Options(flagOptions(table.ColLocked)...).
				Value(&f.Locked),
			huh.NewSelect[string]().
				Title(header(table.ColSubmitted)).
				Options(flagOptions(table.ColSubmitted)...).
				Value(&f.Submitted),
		),
	).WithShowHelp(false)
}

func header(key table.ColumnKey) string {
	col, _ := table.ColumnByKey(key)
	return col.Header
}

// Values converts the bound fields to filter values. A nil value clears the
// column's filter.
func (f *FilterForm) Values() (map[table.ColumnKey]table.FilterValue, error) {
	out := map[table.ColumnKey]table.FilterValue{
		table.ColCourse: nil,
		table.ColName:   nil,
		table.ColDueAt:  nil,
	}
	if f.Course != anyOption {
		out[table.ColCourse] = table.Choice(f.Course)
	}
	if f.Name != "" {
		out[table.ColName] = table.Text(f.Name)
	}

	from, err := dateparse.ParseTimeFrom(f.From, f.now)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := dateparse.ParseTimeFrom(f.To, f.now)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if rng := (table.Between{From: from, To: to}); !rng.Empty() {
		out[table.ColDueAt] = rng
	}

	for key, raw := range map[table.ColumnKey]string{
		table.ColLocked:    f.Locked,
		table.ColSubmitted: f.Submitted,
	} {
		out[key] = nil
		if raw == anyOption {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = table.Flag(b)
	}
	return out, nil
}

// Apply dispatches one filter change per column to ctl
func (f *FilterForm) Apply(ctl *table.Controller) error {
	values, err := f.Values()
	if err != nil {
		return err
	}
	for _, col := range ctl.Columns() {
		v, ok := values[col.Key]
		if !ok {
			continue
		}
		if err := ctl.Dispatch(table.Event{Kind: table.FilterChange, Column: col.Key, Value: v}); err != nil {
			return err
		}
	}
	return nil
}
