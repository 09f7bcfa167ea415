package tui

import "github.com/marcus/due/internal/models"

// HiddenLoadedMsg carries the hidden set read in the background at startup
type HiddenLoadedMsg struct {
	IDs []int
}

// DataLoadedMsg carries a reloaded assignment collection
type DataLoadedMsg struct {
	Rows []models.Assignment
	Err  error
}

// MarkdownRenderedMsg carries the glamour rendering of the info modal
type MarkdownRenderedMsg struct {
	ID       int
	Rendered string
}

// ClearStatusMsg clears the footer status message
type ClearStatusMsg struct{}
