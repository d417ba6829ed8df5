// Package engine turns a day ledger into accounted durations and appends new entries to it.
package engine

import (
	"strings"

	"github.com/faizmokh/jejak/internal/ledger"
)

// Params describes one write request.
type Params struct {
	Description string
	Context     string
	// Time is the start of the new entry; nil means now.
	Time  *ledger.SimpleTime
	Stop  bool
	Minor bool
	// Resume copies description and context from the entry at this signed index.
	Resume *int
}

// Append returns a copy of l with the entry described by p added and the
// entries re-sorted. On error l is returned unchanged.
func Append(l ledger.DayLedger, p Params, now ledger.SimpleTime) (ledger.DayLedger, error) {
	entry, err := Resolve(l, p, now)
	if err != nil {
		return l, err
	}
	return Insert(l, entry), nil
}

// Insert returns a copy of l with entry added at its chronological position.
// Entries sharing a start time keep their insertion order.
func Insert(l ledger.DayLedger, entry ledger.Entry) ledger.DayLedger {
	next := l.Clone()
	next.Entries = append(next.Entries, entry)
	next.Sort()
	return next
}

// Resolve builds the entry a write request describes. Resume takes precedence
// over Stop, which takes precedence over an ordinary entry.
func Resolve(l ledger.DayLedger, p Params, now ledger.SimpleTime) (ledger.Entry, error) {
	start := now
	if p.Time != nil {
		start = *p.Time
	}
	description := strings.TrimSpace(p.Description)
	context := strings.TrimSpace(p.Context)

	switch {
	case p.Resume != nil:
		ref, err := Nth(l, *p.Resume)
		if err != nil {
			return ledger.Entry{}, err
		}
		if description == "" {
			description = ref.Description
		}
		if context == "" {
			context = ref.Context
		}
		return ledger.NewEntry(description, context, start, taskType(p)), nil
	case p.Stop:
		return ledger.Entry{
			Description: description,
			StartTime:   start,
			Context:     context,
			TaskType:    ledger.Stop,
		}, nil
	default:
		if description == "" {
			return ledger.Entry{}, ErrMissingDescription
		}
		return ledger.NewEntry(description, context, start, taskType(p)), nil
	}
}

func taskType(p Params) ledger.TaskType {
	switch {
	case p.Stop:
		return ledger.Stop
	case p.Minor:
		return ledger.Minor
	default:
		return ledger.Regular
	}
}

// Nth returns the entry at a signed index: 0 is the first entry of the day,
// -1 the current one, -2 the one before it.
func Nth(l ledger.DayLedger, n int) (ledger.Entry, error) {
	i := n
	if n < 0 {
		i = len(l.Entries) + n
	}
	if i < 0 || i >= len(l.Entries) {
		return ledger.Entry{}, &ResumeIndexError{Index: n, Len: len(l.Entries)}
	}
	return l.Entries[i], nil
}

// Current returns the most recent entry in sorted order.
func Current(l ledger.DayLedger) (ledger.Entry, bool) {
	if len(l.Entries) == 0 {
		return ledger.Entry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}
