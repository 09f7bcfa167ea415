package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/due/internal/output"
	"github.com/marcus/due/internal/workdir"
	"github.com/marcus/due/pkg/tui"
	"github.com/marcus/due/pkg/tui/keymap"
)

const tuiLogFile = "due.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive assignment table",
	Long: `Open the interactive assignment table.

Mouse:
  Click a title        Sort by that column (again to reverse)
  Click a filter slot  Edit filters (⟳ shows hidden rows again)
  Click a row          Open the assignment
  Click the course     Open the course
  Click ✕              Hide the row

Press ? inside the table for all key bindings.`,
	GroupID: "table",
	RunE:    runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer e.Close()

	rows, err := e.loadRows()
	if err != nil {
		output.Error("%v", err)
		output.Info("set the assignment file with --data or 'due config set data_file <path>'")
		return err
	}

	logFile, err := openTUILog(e.baseDir)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer logFile.Close()
	if err := setupLogging(logFile, logLevel, logFormat); err != nil {
		return err
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if kc, err := keymap.LoadConfig(keymap.ConfigPath(e.baseDir)); err != nil {
		output.Warning("ignoring keymap config: %v", err)
	} else {
		keymap.ApplyConfig(km, kc)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	reload := e.loadRows
	if e.dataPath() == "-" {
		// stdin carried the data and can only be read once
		reload = nil
		opts = append(opts, tea.WithInputTTY())
	}

	model := tui.NewModel(tui.Options{
		Rows:              rows,
		Storage:           e.storage,
		BaseURL:           e.cfg.BaseURL,
		Reload:            reload,
		CaseSensitiveName: e.cfg.CaseSensitiveName,
		Clock:             clock,
		Keymap:            km,
	})

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running table: %w", err)
	}
	return nil
}

// openTUILog opens the log file the table writes to while it owns the
// terminal
func openTUILog(baseDir string) (*os.File, error) {
	dir := filepath.Join(baseDir, workdir.StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, tuiLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
