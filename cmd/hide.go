package cmd

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/output"
)

var hideCmd = &cobra.Command{
	Use:     "hide <id>...",
	Short:   "Hide assignments from the table",
	GroupID: "hidden",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		e, err := openEnv()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer e.Close()

		rows := optionalRows(e)
		store := e.store()
		for _, id := range ids {
			if store.Contains(id) {
				output.Info("%s already hidden", describeID(rows, id))
				continue
			}
			if err := store.Hide(id); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("hid %s", describeID(rows, id))
		}
		return nil
	},
}

var unhideCmd = &cobra.Command{
	Use:     "unhide [<id>...]",
	Short:   "Show hidden assignments again",
	GroupID: "hidden",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			err := fmt.Errorf("give assignment ids or --all")
			output.Error("%v", err)
			return err
		}

		ids, err := parseIDs(args)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		e, err := openEnv()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer e.Close()

		store := e.store()
		if all {
			n := store.Len()
			if err := store.ResetAll(); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("showing all assignments (%d unhidden)", n)
			return nil
		}

		rows := optionalRows(e)
		for _, id := range ids {
			if !store.Contains(id) {
				output.Warning("%s is not hidden", describeID(rows, id))
				continue
			}
			if err := store.Unhide(id); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("unhid %s", describeID(rows, id))
		}
		return nil
	},
}

var hiddenCmd = &cobra.Command{
	Use:     "hidden",
	Short:   "List hidden assignments",
	GroupID: "hidden",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer e.Close()

		ids := hidden.Read(e.storage)
		slices.Sort(ids)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			if ids == nil {
				ids = []int{}
			}
			return output.JSON(ids)
		}

		if len(ids) == 0 {
			fmt.Println("No hidden assignments")
			return nil
		}

		rows := optionalRows(e)
		fmt.Println(output.SectionHeader(fmt.Sprintf("HIDDEN (%d)", len(ids))))
		for _, id := range ids {
			if a, ok := findRow(rows, id); ok {
				fmt.Println("  " + output.FormatAssignmentShort(a))
			} else {
				fmt.Printf("  #%d (not in the assignment file)\n", id)
			}
		}
		return nil
	},
}

// optionalRows loads the collection for display, or nil when it cannot be
// read. Hiding works on ids alone.
func optionalRows(e *env) []models.Assignment {
	rows, err := e.loadRows()
	if err != nil {
		slog.Debug("assignments unavailable", "err", err)
		return nil
	}
	return rows
}

func describeID(rows []models.Assignment, id int) string {
	if a, ok := findRow(rows, id); ok {
		return output.AssignmentOneLiner(a)
	}
	return fmt.Sprintf("#%d", id)
}

func init() {
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
	rootCmd.AddCommand(hiddenCmd)

	unhideCmd.Flags().Bool("all", false, "unhide everything")
	hiddenCmd.Flags().Bool("json", false, "print the ids as JSON")
}
