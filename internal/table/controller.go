// Package table is the state engine behind the assignment table: the column
// registry, cascading filters, single-key sorting, the near-deadline
// highlight and the persisted hidden set, composed by a Controller that
// reacts to user interaction events.
package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/navigate"
)

var (
	ErrUnknownRow   = errors.New("unknown assignment")
	ErrNoNavigator  = errors.New("no navigator configured")
	ErrUnknownEvent = errors.New("unknown event kind")
)

// RowView is one rendered body row
type RowView struct {
	Assignment   models.Assignment
	Cells        []string // one per column, display order
	NearDeadline bool
}

// View is the result of a render pass
type View struct {
	Columns []Column
	Rows    []RowView
	// Matched counts rows passing the filters, before hidden rows are
	// removed.
	Matched int
	// Hidden counts matched rows removed because they are in the hidden
	// set.
	Hidden int
	// Placeholder is set when no row passes the filters. Rows hidden by
	// the user do not trigger it.
	Placeholder bool
	Sort        SortState
	Filters     FilterState
}

// Controller owns the filter, sort and hidden state for one table and
// dispatches interaction events to them. It is not safe for concurrent use;
// events are expected to arrive one at a time from a single UI loop.
type Controller struct {
	columns []Column
	rows    []models.Assignment
	filters FilterState
	sort    SortState
	match   MatchOptions

	hidden  *hidden.Store
	nav     navigate.Opener
	baseURL string
	clock   Clock

	handlers     map[EventKind]eventHandler
	cellHandlers map[ColumnKey]cellHandler
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the time source
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithStore sets the hidden-row store
func WithStore(s *hidden.Store) Option {
	return func(ctl *Controller) { ctl.hidden = s }
}

// WithNavigator sets how locations are opened and the base URL they are
// built from
func WithNavigator(nav navigate.Opener, baseURL string) Option {
	return func(ctl *Controller) {
		ctl.nav = nav
		ctl.baseURL = baseURL
	}
}

// WithCaseSensitiveName makes the name filter case-sensitive
func WithCaseSensitiveName(v bool) Option {
	return func(ctl *Controller) { ctl.match.CaseSensitive = v }
}

// NewController creates a controller over rows with default filter and sort
// state. The hidden set starts empty until Mount or LoadHidden runs.
func NewController(rows []models.Assignment, opts ...Option) *Controller {
	c := &Controller{
		columns: Columns(),
		rows:    rows,
		clock:   SystemClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hidden == nil {
		c.hidden = hidden.NewStore(hidden.NewMemoryStorage())
	}
	c.ResetState()
	c.registerHandlers()
	return c
}

// Mount establishes the default filter and sort state and loads the hidden
// set.
func (c *Controller) Mount() {
	c.ResetState()
	c.hidden.Load()
}

// ResetState restores the default filter and sort state
func (c *Controller) ResetState() {
	c.filters = DefaultFilters(c.clock.Now())
	c.sort = DefaultSort()
}

// RestoreHidden installs a hidden set read elsewhere, e.g. by an async
// loader.
func (c *Controller) RestoreHidden(ids []int) {
	c.hidden.Restore(ids)
}

// SetRows replaces the source collection
func (c *Controller) SetRows(rows []models.Assignment) {
	c.rows = rows
}

// Rows returns the source collection
func (c *Controller) Rows() []models.Assignment {
	return c.rows
}

// Columns returns the controller's columns in display order
func (c *Controller) Columns() []Column {
	return c.columns
}

// Filters returns a copy of the current filter state
func (c *Controller) Filters() FilterState {
	return c.filters.Clone()
}

// Filter returns the value set for key, if any
func (c *Controller) Filter(key ColumnKey) (FilterValue, bool) {
	v, ok := c.filters[key]
	return v, ok
}

// ClearFilters removes every filter, including the defaults
func (c *Controller) ClearFilters() {
	c.filters = FilterState{}
}

// Sort returns the current sort state
func (c *Controller) Sort() SortState {
	return c.sort
}

// SetSort replaces the sort state. Unknown or unsortable columns are
// rejected so the table always has a valid sort key.
func (c *Controller) SetSort(s SortState) error {
	col, ok := ColumnByKey(s.Column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, s.Column)
	}
	if !col.Sortable() {
		return fmt.Errorf("column %q is not sortable", s.Column)
	}
	c.sort = s
	return nil
}

// Hidden returns the hidden-row store
func (c *Controller) Hidden() *hidden.Store {
	return c.hidden
}

// Options returns the select choices for key, generated from the full
// collection.
func (c *Controller) Options(key ColumnKey) []SelectOption {
	col, ok := ColumnByKey(key)
	if !ok || col.Options == nil {
		return nil
	}
	return col.Options(c.rows)
}

// Find returns the assignment with id from the source collection
func (c *Controller) Find(id int) (models.Assignment, bool) {
	i := slices.IndexFunc(c.rows, func(a models.Assignment) bool { return a.ID == id })
	if i < 0 {
		return models.Assignment{}, false
	}
	return c.rows[i], true
}

// Filtered returns the rows passing the current filters, sorted. Hidden
// rows are included.
func (c *Controller) Filtered() []models.Assignment {
	filtered := ApplyFilters(c.columns, c.rows, c.filters, c.match)
	return SortRows(c.columns, filtered, c.sort)
}

// Render computes filtered, sorted, hidden-excluded rows with their cells
// and highlight flags.
func (c *Controller) Render() View {
	now := c.clock.Now()
	sorted := c.Filtered()

	v := View{
		Columns:     c.columns,
		Matched:     len(sorted),
		Placeholder: len(sorted) == 0,
		Sort:        c.sort,
		Filters:     c.filters.Clone(),
	}
	for _, a := range sorted {
		if c.hidden.Contains(a.ID) {
			v.Hidden++
			continue
		}
		cells := make([]string, len(c.columns))
		for i, col := range c.columns {
			if col.Cell != nil {
				cells[i] = col.Cell(a)
			}
		}
		v.Rows = append(v.Rows, RowView{
			Assignment:   a,
			Cells:        cells,
			NearDeadline: NearDeadline(a.DueAt, now),
		})
	}
	return v
}

// AssignmentURL returns the detail location for a
func (c *Controller) AssignmentURL(a models.Assignment) (string, error) {
	return navigate.AssignmentURL(c.baseURL, a.CourseID, a.ID)
}

// CourseURL returns the course location for a
func (c *Controller) CourseURL(a models.Assignment) (string, error) {
	return navigate.CourseURL(c.baseURL, a.CourseID)
}

func (c *Controller) open(url string, err error) error {
	if c.nav == nil {
		return ErrNoNavigator
	}
	if err != nil {
		return err
	}
	return c.nav.Open(url)
}
