package model

import (
	"strings"
	"time"
)

// Layout is the wall-clock format used for due and created stamps.
const Layout = "02.01.2006 15:04"

type Task struct {
	Description string `json:"description"`
	Due         string `json:"due"`
	Completed   bool   `json:"completed"`
	Created     string `json:"created"`
}

// NewTask validates input and returns an incomplete task created at now.
// The description is kept as entered; a blank one is rejected.
func NewTask(description, due string, now time.Time) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, &ValidationError{Field: "description", Reason: "is required"}
	}
	dueAt, err := ParseStamp(due)
	if err != nil {
		return Task{}, &ValidationError{Field: "due", Reason: "must be dd.mm.yyyy HH:MM", Err: err}
	}
	return Task{
		Description: description,
		Due:         FormatStamp(dueAt),
		Completed:   false,
		Created:     FormatStamp(now),
	}, nil
}

// DueAt parses the due stamp in the local zone.
func (t Task) DueAt() (time.Time, error) {
	return ParseStamp(t.Due)
}

// IsOverdue reports whether an incomplete task's due time has passed.
// Tasks with an unparsable due value are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := t.DueAt()
	if err != nil {
		return false
	}
	return now.After(due)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if _, err := ParseStamp(t.Due); err != nil {
		return &ValidationError{Field: "due", Reason: "must be dd.mm.yyyy HH:MM", Err: err}
	}
	return nil
}

func ParseStamp(raw string) (time.Time, error) {
	return time.ParseInLocation(Layout, strings.TrimSpace(raw), time.Local)
}

func FormatStamp(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
