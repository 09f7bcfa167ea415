package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/marcus/due/internal/format"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/table"
)

// Narrower wraps make glamour's table borders collapse
const minCardWidth = 20

// Card is the detail view of a single assignment, shown by `due show`
// and the TUI info modal.
type Card struct {
	Assignment models.Assignment
	Now        time.Time
	URL        string // empty when no base URL is configured
	Hidden     bool
}

// Markdown returns the card source as markdown
func (c Card) Markdown() string {
	a := c.Assignment
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Name)
	fmt.Fprintf(&sb, "**%s** · id `%d`\n\n", a.CourseName, a.ID)

	sb.WriteString("| | |\n|---|---|\n")
	if a.HasDeadline() {
		fmt.Fprintf(&sb, "| 期限 | %s (%s) |\n", format.DateTime(a.DueAt), FormatTimeUntil(a.DueAt, c.Now))
	} else {
		sb.WriteString("| 期限 | - |\n")
	}
	lock := table.LabelUnlocked
	if a.IsLocked {
		lock = table.LabelLocked
	}
	sub := table.LabelUnsubmitted
	if a.IsSubmitted {
		sub = table.LabelSubmitted
	}
	fmt.Fprintf(&sb, "| ロック状況 | %s |\n", lock)
	fmt.Fprintf(&sb, "| 提出状況 | %s |\n", sub)

	if table.NearDeadline(a.DueAt, c.Now) {
		sb.WriteString("\n> Due within 24 hours\n")
	}
	if c.Hidden {
		sb.WriteString("\n_Hidden from the table._\n")
	}
	if c.URL != "" {
		fmt.Fprintf(&sb, "\n%s\n", c.URL)
	}
	return sb.String()
}

// Render styles the card with glamour, wrapped to width columns.
func (c Card) Render(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, minCardWidth)),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}

	out, err := renderer.Render(c.Markdown())
	if err != nil {
		return "", fmt.Errorf("render assignment %d: %w", c.Assignment.ID, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// TerminalWidth reports the width of stdout, then $COLUMNS, then fallback.
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return fallback
}
