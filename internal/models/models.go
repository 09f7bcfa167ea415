package models

import (
	"time"
)

// NoDeadline is the sentinel due date meaning "no deadline set".
// It is the start of year 2100 in UTC.
var NoDeadline = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

// Assignment is a unit of coursework with a deadline, lock state and
// submission state. ID is unique within a collection and is the join key
// for the hidden set and for navigation.
type Assignment struct {
	ID          int       `json:"id" yaml:"id"`
	CourseID    int       `json:"courseId" yaml:"courseId"`
	CourseName  string    `json:"courseName" yaml:"courseName"`
	Name        string    `json:"name" yaml:"name"`
	DueAt       time.Time `json:"dueAt" yaml:"dueAt"`
	IsLocked    bool      `json:"isLocked" yaml:"isLocked"`
	IsSubmitted bool      `json:"isSubmitted" yaml:"isSubmitted"`
}

// HasDeadline reports whether DueAt is a real deadline rather than the
// NoDeadline sentinel.
func (a Assignment) HasDeadline() bool {
	return !a.DueAt.Equal(NoDeadline)
}

// StorageBackend selects where the hidden set is persisted
type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
)

// Config is the per-directory configuration stored in .due/config.json
type Config struct {
	BaseURL           string         `json:"base_url,omitempty"`
	Storage           StorageBackend `json:"storage,omitempty"`
	DataFile          string         `json:"data_file,omitempty"`
	CaseSensitiveName bool           `json:"case_sensitive_name,omitempty"`
}
