// Package source reads assignment collections from JSON or YAML documents.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marcus/due/internal/models"
)

// Stdin is the path that selects standard input
const Stdin = "-"

var (
	ErrDuplicateID   = errors.New("duplicate assignment id")
	ErrUnknownFormat = errors.New("unknown data format")
)

// Format selects the decoder
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// record is the on-disk shape. DueAt is a string so that null, missing and
// unparsable values can be told apart from a real deadline.
type record struct {
	ID          int     `json:"id" yaml:"id"`
	CourseID    int     `json:"courseId" yaml:"courseId"`
	CourseName  string  `json:"courseName" yaml:"courseName"`
	Name        string  `json:"name" yaml:"name"`
	DueAt       *string `json:"dueAt" yaml:"dueAt"`
	IsLocked    bool    `json:"isLocked" yaml:"isLocked"`
	IsSubmitted bool    `json:"isSubmitted" yaml:"isSubmitted"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Date-only values are UTC midnight, so "2100" and "2100-01-01" equal
// models.NoDeadline on any machine
var dateLayouts = []string{
	"2006-01-02",
	"2006",
}

// FormatFor picks a format from a file extension. Stdin and unknown
// extensions read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadFile reads the collection at path, or from stdin when path is "-".
func LoadFile(path string) ([]models.Assignment, error) {
	if path == Stdin {
		return Load(os.Stdin, FormatJSON)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	rows, err := Load(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Load decodes a collection from r
func Load(r io.Reader, format Format) ([]models.Assignment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var recs []record
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &recs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &recs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return convert(recs)
}

func convert(recs []record) ([]models.Assignment, error) {
	seen := make(map[int]struct{}, len(recs))
	out := make([]models.Assignment, 0, len(recs))
	for i, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}

		due, err := parseDue(r.DueAt)
		if err != nil {
			return nil, fmt.Errorf("assignment %d (entry %d): %w", r.ID, i, err)
		}
		out = append(out, models.Assignment{
			ID:          r.ID,
			CourseID:    r.CourseID,
			CourseName:  r.CourseName,
			Name:        r.Name,
			DueAt:       due,
			IsLocked:    r.IsLocked,
			IsSubmitted: r.IsSubmitted,
		})
	}
	return out, nil
}

// parseDue maps a missing or null deadline to models.NoDeadline
func parseDue(s *string) (time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return models.NoDeadline, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dueAt %q", v)
}

// Write encodes rows as indented JSON. A NoDeadline due date is written as
// null.
func Write(w io.Writer, rows []models.Assignment) error {
	recs := make([]record, 0, len(rows))
	for _, a := range rows {
		r := record{
			ID:          a.ID,
			CourseID:    a.CourseID,
			CourseName:  a.CourseName,
			Name:        a.Name,
			IsLocked:    a.IsLocked,
			IsSubmitted: a.IsSubmitted,
		}
		if a.HasDeadline() {
			s := a.DueAt.Format(time.RFC3339)
			r.DueAt = &s
		}
		recs = append(recs, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
