package table

import (
	"fmt"

	"github.com/marcus/due/internal/models"
)

// EventKind identifies a user interaction
type EventKind int

const (
	// HeaderClick on a title cell toggles sorting by that column
	HeaderClick EventKind = iota
	// FilterChange carries a new filter value reported by a column widget
	FilterChange
	// FilterSlotClick is a click on a column's filter cell; on the
	// Hide-Action column it clears the hidden set
	FilterSlotClick
	// RowClick opens the assignment
	RowClick
	// CellClick is a click on one cell of a row. Course and Hide-Action
	// cells handle it themselves; other cells fall through to RowClick.
	CellClick
)

func (k EventKind) String() string {
	switch k {
	case HeaderClick:
		return "header-click"
	case FilterChange:
		return "filter-change"
	case FilterSlotClick:
		return "filter-slot-click"
	case RowClick:
		return "row-click"
	case CellClick:
		return "cell-click"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one user interaction. Column is set for header, filter and cell
// events, RowID for row and cell events, Value for FilterChange.
type Event struct {
	Kind   EventKind
	Column ColumnKey
	RowID  int
	Value  FilterValue
}

type eventHandler func(c *Controller, ev Event) error

// cellHandler reports whether the click was consumed. A consumed click does
// not propagate to the row.
type cellHandler func(c *Controller, row models.Assignment) (stop bool, err error)

func (c *Controller) registerHandlers() {
	c.handlers = map[EventKind]eventHandler{
		HeaderClick:     (*Controller).onHeaderClick,
		FilterChange:    (*Controller).onFilterChange,
		FilterSlotClick: (*Controller).onFilterSlotClick,
		RowClick:        (*Controller).onRowClick,
		CellClick:       (*Controller).onCellClick,
	}
	c.cellHandlers = map[ColumnKey]cellHandler{
		ColCourse: (*Controller).onCourseCell,
		ColHide:   (*Controller).onHideCell,
	}
}

// Dispatch routes ev to its handler
func (c *Controller) Dispatch(ev Event) error {
	h, ok := c.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEvent, ev.Kind)
	}
	return h(c, ev)
}

func (c *Controller) onHeaderClick(ev Event) error {
	col, ok := ColumnByKey(ev.Column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, ev.Column)
	}
	if !col.Sortable() {
		return nil
	}
	c.sort = c.sort.Toggle(ev.Column)
	return nil
}

func (c *Controller) onFilterChange(ev Event) error {
	if err := CheckFilter(ev.Column, ev.Value); err != nil {
		return err
	}
	c.filters.Set(ev.Column, ev.Value)
	return nil
}

func (c *Controller) onFilterSlotClick(ev Event) error {
	col, ok := ColumnByKey(ev.Column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, ev.Column)
	}
	if col.Widget != WidgetReset {
		return nil
	}
	return c.hidden.ResetAll()
}

func (c *Controller) onRowClick(ev Event) error {
	row, ok := c.Find(ev.RowID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRow, ev.RowID)
	}
	return c.open(c.AssignmentURL(row))
}

func (c *Controller) onCellClick(ev Event) error {
	row, ok := c.Find(ev.RowID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRow, ev.RowID)
	}
	if h, ok := c.cellHandlers[ev.Column]; ok {
		stop, err := h(c, row)
		if err != nil || stop {
			return err
		}
	}
	return c.onRowClick(ev)
}

func (c *Controller) onCourseCell(row models.Assignment) (bool, error) {
	return true, c.open(c.CourseURL(row))
}

func (c *Controller) onHideCell(row models.Assignment) (bool, error) {
	return true, c.hidden.Hide(row.ID)
}
