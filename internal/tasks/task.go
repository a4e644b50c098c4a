package tasks

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultCategory labels tasks added without an explicit category.
	DefaultCategory = "general"

	deadlineInputLayoutConstant          = "2006-01-02 15:04"
	deadlineStorageLayoutConstant        = "2006-01-02 15:04:05"
	invalidDeadlineFormatMessageConstant = "invalid deadline format"
)

var (
	// ErrInvalidDeadlineFormat indicates a deadline string that does not match the accepted layout.
	ErrInvalidDeadlineFormat = errors.New(invalidDeadlineFormatMessageConstant)
)

// Deadline is a task due moment kept in local time. User input carries
// minute precision; the stored form carries seconds.
type Deadline struct {
	moment time.Time
}

// NewDeadline builds a Deadline from a concrete moment, truncated to whole seconds.
func NewDeadline(moment time.Time) Deadline {
	return Deadline{moment: moment.Truncate(time.Second)}
}

// ParseDeadline parses user input in the "YYYY-MM-DD HH:MM" layout.
func ParseDeadline(rawValue string) (Deadline, error) {
	parsedMoment, parseError := time.ParseInLocation(deadlineInputLayoutConstant, strings.TrimSpace(rawValue), time.Local)
	if parseError != nil {
		return Deadline{}, ErrInvalidDeadlineFormat
	}
	return Deadline{moment: parsedMoment}, nil
}

// ParseStoredDeadline parses the persisted "YYYY-MM-DD HH:MM:SS" layout.
func ParseStoredDeadline(rawValue string) (Deadline, error) {
	parsedMoment, parseError := time.ParseInLocation(deadlineStorageLayoutConstant, strings.TrimSpace(rawValue), time.Local)
	if parseError != nil {
		return Deadline{}, ErrInvalidDeadlineFormat
	}
	return Deadline{moment: parsedMoment}, nil
}

// Time exposes the underlying moment.
func (deadline Deadline) Time() time.Time {
	return deadline.moment
}

// IsZero reports whether the deadline was never set.
func (deadline Deadline) IsZero() bool {
	return deadline.moment.IsZero()
}

// String renders the storage layout, or an empty string for unset deadlines.
func (deadline Deadline) String() string {
	if deadline.IsZero() {
		return ""
	}
	return deadline.moment.Format(deadlineStorageLayoutConstant)
}

// storageValue yields the database representation, mapping unset deadlines to NULL.
func (deadline Deadline) storageValue() any {
	if deadline.IsZero() {
		return nil
	}
	return deadline.String()
}

// Task is a single todo-list entry owned by a Telegram user.
type Task struct {
	ID          int64
	UserID      int64
	Description string
	Category    string
	Deadline    Deadline
	Completed   bool
}
