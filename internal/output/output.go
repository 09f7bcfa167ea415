// Package output provides styled terminal output helpers (success, error,
// warning, assignment formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/due/internal/format"
	"github.com/marcus/due/internal/models"
	"github.com/marcus/due/internal/table"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// FormatLock formats the lock state with color
func FormatLock(locked bool) string {
	if locked {
		return lockedStyle.Render(table.LabelLocked)
	}
	return openStyle.Render(table.LabelUnlocked)
}

// FormatSubmission formats the submission state with color
func FormatSubmission(submitted bool) string {
	if submitted {
		return doneStyle.Render(table.LabelSubmitted)
	}
	return pendingStyle.Render(table.LabelUnsubmitted)
}

// FormatDue formats a due date, empty for the no-deadline sentinel
func FormatDue(a models.Assignment) string {
	if !a.HasDeadline() {
		return ""
	}
	return format.DateTime(a.DueAt)
}

// FormatTimeUntil formats the distance from now to t as "in 3h" or "2d ago"
func FormatTimeUntil(t, now time.Time) string {
	diff := t.Sub(now)
	suffix := func(s string) string {
		if diff < 0 {
			return s + " ago"
		}
		return "in " + s
	}
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs < time.Minute:
		return "now"
	case abs < time.Hour:
		return suffix(fmt.Sprintf("%dm", int(abs.Minutes())))
	case abs < 24*time.Hour:
		return suffix(fmt.Sprintf("%dh", int(abs.Hours())))
	case abs < 30*24*time.Hour:
		return suffix(fmt.Sprintf("%dd", int(abs.Hours()/24)))
	default:
		return format.Date(t)
	}
}

// FormatAssignmentShort formats an assignment on one line
func FormatAssignmentShort(a models.Assignment) string {
	parts := []string{
		titleStyle.Render(fmt.Sprintf("#%d", a.ID)),
		subtleStyle.Render(a.CourseName),
		a.Name,
	}
	if due := FormatDue(a); due != "" {
		parts = append(parts, due)
	}
	parts = append(parts, FormatLock(a.IsLocked), FormatSubmission(a.IsSubmitted))
	return strings.Join(parts, "  ")
}

// AssignmentOneLiner returns "#12 "Name" (Course)" for confirmations
func AssignmentOneLiner(a models.Assignment) string {
	return fmt.Sprintf("#%d \"%s\" (%s)", a.ID, a.Name, a.CourseName)
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nHIDDEN:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}
