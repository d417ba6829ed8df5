// Package ledger holds the day ledger model and its on-disk representation.
package ledger

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// SimpleTime is a wall-clock time of day with minute precision.
type SimpleTime struct {
	Hour   int
	Minute int
}

// Clock builds a SimpleTime without validation. Prefer ParseClock for user input.
func Clock(hour, minute int) SimpleTime {
	return SimpleTime{Hour: hour, Minute: minute}
}

// FromTime truncates t to its local wall-clock hour and minute.
func FromTime(t time.Time) SimpleTime {
	return SimpleTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Valid reports whether the hour and minute are within a single day.
func (t SimpleTime) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// SinceMidnight returns the offset of t from 00:00.
func (t SimpleTime) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after u.
func (t SimpleTime) Compare(u SimpleTime) int {
	return cmp.Compare(t.Hour*60+t.Minute, u.Hour*60+u.Minute)
}

// Before reports whether t is strictly earlier than u.
func (t SimpleTime) Before(u SimpleTime) bool {
	return t.Compare(u) < 0
}

// Sub returns t-u.
func (t SimpleTime) Sub(u SimpleTime) time.Duration {
	return t.SinceMidnight() - u.SinceMidnight()
}

// String renders the time as zero-padded HH:MM.
func (t SimpleTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TaskType distinguishes how an entry takes part in accounting.
type TaskType uint8

const (
	// Regular entries contribute their own duration to their context.
	Regular TaskType = iota
	// Stop entries close the preceding entry without starting new work.
	Stop
	// Minor entries have their duration folded into neighbouring Regular entries.
	Minor
)

var taskTypeTokens = [...]string{
	Regular: "regular",
	Stop:    "stop",
	Minor:   "minor",
}

func (tt TaskType) String() string {
	if int(tt) < len(taskTypeTokens) {
		return taskTypeTokens[tt]
	}
	return fmt.Sprintf("TaskType(%d)", uint8(tt))
}

// ParseTaskType maps an on-disk token back to its TaskType.
func ParseTaskType(token string) (TaskType, error) {
	for i, t := range taskTypeTokens {
		if t == token {
			return TaskType(i), nil
		}
	}
	return Regular, fmt.Errorf("unknown task type %q (expected regular|stop|minor)", token)
}

// Entry is one ledger row.
type Entry struct {
	Description string     `json:"description"`
	StartTime   SimpleTime `json:"start_time"`
	Context     string     `json:"context"`
	TaskType    TaskType   `json:"task_type"`
}

// NewEntry builds an entry whose context falls back to its description.
func NewEntry(description, context string, start SimpleTime, taskType TaskType) Entry {
	if context == "" {
		context = description
	}
	return Entry{
		Description: description,
		StartTime:   start,
		Context:     context,
		TaskType:    taskType,
	}
}

// DayLedger is the ordered list of entries recorded for one calendar date.
type DayLedger struct {
	Date    time.Time
	Entries []Entry
}

// Len returns the number of entries.
func (l DayLedger) Len() int {
	return len(l.Entries)
}

// Clone returns a ledger that shares no entry storage with l.
func (l DayLedger) Clone() DayLedger {
	return DayLedger{Date: l.Date, Entries: slices.Clone(l.Entries)}
}

// Sort orders entries by start time, keeping insertion order for equal times.
func (l *DayLedger) Sort() {
	slices.SortStableFunc(l.Entries, func(a, b Entry) int {
		return a.StartTime.Compare(b.StartTime)
	})
}

// MarshalText encodes the time as HH:MM.
func (t SimpleTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes an HH:MM time.
func (t *SimpleTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText encodes the task type as its on-disk token.
func (tt TaskType) MarshalText() ([]byte, error) {
	return []byte(tt.String()), nil
}

// UnmarshalText decodes an on-disk task type token.
func (tt *TaskType) UnmarshalText(text []byte) error {
	parsed, err := ParseTaskType(string(text))
	if err != nil {
		return err
	}
	*tt = parsed
	return nil
}
