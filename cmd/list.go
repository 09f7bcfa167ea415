package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/due/internal/dateparse"
	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/output"
	"github.com/marcus/due/internal/source"
	"github.com/marcus/due/internal/suggest"
	"github.com/marcus/due/internal/table"
)

// triState is a pflag.Value for boolean filters that can also be "any"
type triState struct {
	given bool
	value *bool
}

func (t *triState) String() string {
	switch {
	case !t.given:
		return ""
	case t.value == nil:
		return "any"
	case *t.value:
		return "yes"
	}
	return "no"
}

func (t *triState) Set(s string) error {
	switch strings.ToLower(s) {
	case "any", "all", "":
		t.value = nil
	case "yes", "y", "true":
		v := true
		t.value = &v
	case "no", "n", "false":
		v := false
		t.value = &v
	default:
		return fmt.Errorf("invalid value %q (use any, yes, or no)", s)
	}
	t.given = true
	return nil
}

func (t *triState) Type() string { return "any|yes|no" }

var _ pflag.Value = (*triState)(nil)

// filter returns the filter value, nil meaning "any"
func (t *triState) filter() table.FilterValue {
	if t.value == nil {
		return nil
	}
	return table.Flag(*t.value)
}

// sortNames maps --sort arguments to columns
var sortNames = map[string]table.ColumnKey{
	"course":    table.ColCourse,
	"name":      table.ColName,
	"due":       table.ColDueAt,
	"locked":    table.ColLocked,
	"submitted": table.ColSubmitted,
}

func sortColumn(name string) (table.ColumnKey, error) {
	if key, ok := sortNames[strings.ToLower(name)]; ok {
		return key, nil
	}
	if col, ok := table.ColumnByKey(table.ColumnKey(name)); ok && col.Sortable() {
		return col.Key, nil
	}
	err := fmt.Errorf("%w: %q (use course, name, due, locked, or submitted)", table.ErrUnknownColumn, name)
	if hint := suggest.Hint(name, slices.Sorted(maps.Keys(sortNames))); hint != "" {
		err = fmt.Errorf("%w; %s", err, hint)
	}
	return "", err
}

// courseHint suggests course names when course matches none of them
func courseHint(ctl *table.Controller, course string) string {
	var names []string
	for _, o := range ctl.Options(table.ColCourse) {
		if o.Value.String() == course {
			return ""
		}
		names = append(names, o.Label)
	}
	return suggest.Hint(course, names)
}

type listOptions struct {
	course    string
	name      string
	from      string
	to        string
	locked    triState
	submitted triState
	all       bool
	sortBy    string
	desc      bool
}

// configure applies the options over the controller's default state
func (o *listOptions) configure(ctl *table.Controller, now time.Time) error {
	if o.all {
		ctl.ClearFilters()
	}

	var events []table.Event
	if o.course != "" {
		events = append(events, table.Event{Kind: table.FilterChange, Column: table.ColCourse, Value: table.Choice(o.course)})
	}
	if o.name != "" {
		events = append(events, table.Event{Kind: table.FilterChange, Column: table.ColName, Value: table.Text(o.name)})
	}
	if o.from != "" || o.to != "" {
		from, err := dateparse.ParseTimeFrom(o.from, now)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := dateparse.ParseTimeFrom(o.to, now)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		events = append(events, table.Event{Kind: table.FilterChange, Column: table.ColDueAt, Value: table.Between{From: from, To: to}})
	}
	if o.locked.given {
		events = append(events, table.Event{Kind: table.FilterChange, Column: table.ColLocked, Value: o.locked.filter()})
	}
	if o.submitted.given {
		events = append(events, table.Event{Kind: table.FilterChange, Column: table.ColSubmitted, Value: o.submitted.filter()})
	}
	for _, ev := range events {
		if err := ctl.Dispatch(ev); err != nil {
			return err
		}
	}

	switch {
	case o.sortBy != "":
		key, err := sortColumn(o.sortBy)
		if err != nil {
			return err
		}
		return ctl.SetSort(table.SortState{Column: key, Desc: o.desc})
	case o.desc:
		return ctl.SetSort(table.SortState{Column: ctl.Sort().Column, Desc: true})
	}
	return nil
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the assignment table",
	Long: `Print the assignment table without the interactive UI.

By default only unsubmitted, unlocked assignments due today or later are
shown, sorted by due date. Flags adjust the filters on top of these defaults;
--all starts from no filters instead.

--from and --to replace the default date range together and both bounds are
exclusive. A bound left out is open, so --to alone also lists past-due work.`,
	Example: `  due list
  due list --course 線形代数 --from today --to +7d
  due list --all --submitted yes --sort course
  due list --json > snapshot.json`,
	GroupID: "table",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer e.Close()

		rows, err := e.loadRows()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		store := e.store()
		showHidden, _ := cmd.Flags().GetBool("show-hidden")
		tableStore := store
		var tableOpts output.TableOptions
		if showHidden {
			// Render against an empty set and mark hidden rows instead
			tableStore = hidden.NewStore(hidden.NewMemoryStorage())
			tableOpts.HiddenIDs = make(map[int]bool, store.Len())
			for _, id := range store.IDs() {
				tableOpts.HiddenIDs[id] = true
			}
		}

		ctl := e.controller(rows, tableStore, nil)
		if err := listOpts.configure(ctl, clock.Now()); err != nil {
			output.Error("%v", err)
			return err
		}
		if listOpts.course != "" {
			if hint := courseHint(ctl, listOpts.course); hint != "" {
				output.Warning("no course named %q; %s", listOpts.course, hint)
			}
		}
		v := ctl.Render()

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return source.Write(os.Stdout, assignmentsOf(v.Rows))
		}

		fmt.Println(output.RenderTable(v, tableOpts))
		fmt.Println(output.Summary(v))
		return nil
	},
}

func assignmentsOf(rows []table.RowView) []models.Assignment {
	out := make([]models.Assignment, len(rows))
	for i, r := range rows {
		out[i] = r.Assignment
	}
	return out
}

func init() {
	rootCmd.AddCommand(listCmd)

	f := listCmd.Flags()
	f.StringVar(&listOpts.course, "course", "", "only this course")
	f.StringVarP(&listOpts.name, "name", "n", "", "assignment name contains")
	f.StringVar(&listOpts.from, "from", "", "due after, exclusive (2026-03-01, today, +7d, monday)")
	f.StringVar(&listOpts.to, "to", "", "due before, exclusive")
	f.Var(&listOpts.locked, "locked", "lock filter: any, yes, no (default no)")
	f.Var(&listOpts.submitted, "submitted", "submission filter: any, yes, no (default no)")
	f.BoolVarP(&listOpts.all, "all", "a", false, "start from no filters instead of the defaults")
	f.StringVarP(&listOpts.sortBy, "sort", "s", "", "sort column: course, name, due, locked, submitted")
	f.BoolVar(&listOpts.desc, "desc", false, "sort descending")
	f.Bool("json", false, "print the rows as JSON")
	f.Bool("show-hidden", false, "include hidden rows, marked with ✕")
}
