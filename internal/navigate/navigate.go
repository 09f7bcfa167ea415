// Package navigate builds the assignment and course locations and opens them
// in a new view outside the terminal.
package navigate

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrNoBaseURL is returned when a location is requested without a base URL.
var ErrNoBaseURL = errors.New("no base URL configured: run 'due config set base_url <url>'")

// AssignmentURL returns <base>/courses/{courseID}/assignments/{id}.
func AssignmentURL(base string, courseID, id int) (string, error) {
	return join(base, fmt.Sprintf("courses/%d/assignments/%d", courseID, id))
}

// CourseURL returns <base>/courses/{courseID}.
func CourseURL(base string, courseID int) (string, error) {
	return join(base, fmt.Sprintf("courses/%d", courseID))
}

func join(base, path string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", ErrNoBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + path, nil
}

// Opener opens a location
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Browser opens locations in the system browser. The terminal session is
// left in place.
type Browser struct{}

func (Browser) Open(url string) error {
	name, args := browserCommand(runtime.GOOS)
	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	// Reap the launcher without blocking the caller
	go cmd.Wait()
	return nil
}

func browserCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// Clipboard copies locations to the system clipboard instead of opening
// them.
type Clipboard struct{}

func (Clipboard) Open(url string) error {
	if err := clipboard.WriteAll(url); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Recorder records opened locations. Useful for tests and dry runs.
type Recorder struct {
	Opened []string
}

func (r *Recorder) Open(url string) error {
	r.Opened = append(r.Opened, url)
	return nil
}

// Last returns the most recently opened location, or "".
func (r *Recorder) Last() string {
	if len(r.Opened) == 0 {
		return ""
	}
	return r.Opened[len(r.Opened)-1]
}
