package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/due/internal/navigate"
	"github.com/marcus/due/internal/output"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"info"},
	Short:   "Show assignment details",
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
		a, ok := findRow(rows, id)
		if !ok {
			err := fmt.Errorf("assignment %d not found", id)
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(a)
		}

		// A missing base URL only drops the link
		url, _ := navigate.AssignmentURL(e.cfg.BaseURL, a.CourseID, a.ID)
		card := output.Card{Assignment: a, Now: clock.Now(), URL: url, Hidden: e.store().Contains(id)}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Print(card.Markdown())
			return nil
		}

		rendered, err := card.Render(output.TerminalWidth(80))
		if err != nil {
			slog.Debug("show: render card", "err", err)
			fmt.Print(card.Markdown())
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("raw", false, "print markdown without rendering")
	showCmd.Flags().Bool("json", false, "print the assignment as JSON")
}
