package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/due/internal/navigate"
	"github.com/marcus/due/internal/output"
	"github.com/marcus/due/internal/table"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open an assignment in the browser",
	Long: `Open an assignment's page in the browser.

With --course the course page is opened instead. With --copy the URL is
copied to the clipboard, and with --print it is only printed.`,
	GroupID: "table",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			err = fmt.Errorf("invalid assignment id %q", args[0])
			output.Error("%v", err)
			return err
		}

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

		course, _ := cmd.Flags().GetBool("course")
		copyURL, _ := cmd.Flags().GetBool("copy")
		printOnly, _ := cmd.Flags().GetBool("print")

		rec := &navigate.Recorder{}
		var opener navigate.Opener = navigate.Browser{}
		switch {
		case printOnly:
			opener = rec
		case copyURL:
			opener = navigate.OpenerFunc(func(url string) error {
				rec.Open(url)
				return navigate.Clipboard{}.Open(url)
			})
		}

		ctl := e.controller(rows, e.store(), opener)
		ev := table.Event{Kind: table.RowClick, RowID: id}
		if course {
			ev = table.Event{Kind: table.CellClick, Column: table.ColCourse, RowID: id}
		}
		if err := ctl.Dispatch(ev); err != nil {
			output.Error("%v", err)
			return err
		}

		switch {
		case printOnly:
			fmt.Println(rec.Last())
		case copyURL:
			output.Success("copied %s", rec.Last())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().BoolP("course", "c", false, "open the course page")
	openCmd.Flags().BoolP("copy", "y", false, "copy the URL instead of opening it")
	openCmd.Flags().BoolP("print", "p", false, "print the URL instead of opening it")
}
