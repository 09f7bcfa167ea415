package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/marcus/due/internal/config"
	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/navigate"
	"github.com/marcus/due/internal/source"
	"github.com/marcus/due/internal/table"
)

// clock is the time source for commands; tests replace it
var clock table.Clock = table.SystemClock

// env is the resolved state a command works against
type env struct {
	baseDir string
	cfg     *models.Config
	storage hidden.Storage
}

// openEnv resolves the config and opens the hidden-set storage
func openEnv() (*env, error) {
	dir := getBaseDir()
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	storage, err := hidden.OpenStorage(dir, cfg.Storage)
	if err != nil {
		return nil, err
	}
	slog.Debug("env", "dir", dir, "storage", cfg.Storage)
	return &env{baseDir: dir, cfg: cfg, storage: storage}, nil
}

func (e *env) Close() {
	if err := hidden.Close(e.storage); err != nil {
		slog.Debug("close storage", "err", err)
	}
}

// dataPath is the assignment file: --data, then config and environment
func (e *env) dataPath() string {
	if dataFlag != "" {
		return dataFlag
	}
	return config.DataPath(e.baseDir, e.cfg)
}

func (e *env) loadRows() ([]models.Assignment, error) {
	path := e.dataPath()
	rows, err := source.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load assignments from %s: %w", path, err)
	}
	slog.Debug("loaded assignments", "path", path, "count", len(rows))
	return rows, nil
}

// store returns the hidden set read from storage
func (e *env) store() *hidden.Store {
	s := hidden.NewStore(e.storage)
	s.Load()
	return s
}

// controller builds a mounted table controller over rows
func (e *env) controller(rows []models.Assignment, store *hidden.Store, opener navigate.Opener) *table.Controller {
	ctl := table.NewController(rows,
		table.WithClock(clock),
		table.WithStore(store),
		table.WithNavigator(opener, e.cfg.BaseURL),
		table.WithCaseSensitiveName(e.cfg.CaseSensitiveName),
	)
	ctl.Mount()
	return ctl
}

// parseIDs parses assignment id arguments
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid assignment id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// findRow looks an assignment up by id among rows
func findRow(rows []models.Assignment, id int) (models.Assignment, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return models.Assignment{}, false
}
