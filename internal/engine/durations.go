package engine

import (
	"time"

	"github.com/faizmokh/jejak/internal/ledger"
)

// Span is the accounted time of one Regular entry.
type Span struct {
	// Index is the entry position in the sorted ledger, usable with Nth.
	Index int
	Entry ledger.Entry
	// Raw is the time until the next entry, before minor time is folded in.
	Raw time.Duration
	// Duration is Raw plus the share of neighbouring minor time.
	Duration time.Duration
}

// Accounting is the result of ComputeDurations.
type Accounting struct {
	Spans []Span
	// Unaccounted is minor time that had no Regular entry to absorb it.
	Unaccounted time.Duration
}

// Total returns the accounted time across all spans.
func (a Accounting) Total() time.Duration {
	var total time.Duration
	for _, s := range a.Spans {
		total += s.Duration
	}
	return total
}

// ComputeDurations measures every entry of l against its successor, closing
// the last open entry at now, and folds minor entries into their nearest
// Regular neighbours. The sum of span durations plus Unaccounted always equals
// the raw time of all Regular and Minor entries.
func ComputeDurations(l ledger.DayLedger, now ledger.SimpleTime) Accounting {
	sorted := l.Clone()
	sorted.Sort()
	entries := sorted.Entries

	raw := rawDurations(entries, now)
	final, unaccounted := redistribute(entries, raw)

	var acc Accounting
	acc.Unaccounted = unaccounted
	for i, e := range entries {
		if e.TaskType != ledger.Regular {
			continue
		}
		acc.Spans = append(acc.Spans, Span{
			Index:    i,
			Entry:    e,
			Raw:      raw[i],
			Duration: final[i],
		})
	}
	return acc
}

// rawDurations returns the time each entry stays current. Stop entries, and
// nothing after a trailing stop, contribute zero.
func rawDurations(entries []ledger.Entry, now ledger.SimpleTime) []time.Duration {
	raw := make([]time.Duration, len(entries))
	for i, e := range entries {
		if e.TaskType == ledger.Stop {
			continue
		}
		end := now
		if i+1 < len(entries) {
			end = entries[i+1].StartTime
		}
		if e.StartTime.Before(end) {
			raw[i] = end.Sub(e.StartTime)
		}
	}
	return raw
}

func redistribute(entries []ledger.Entry, raw []time.Duration) ([]time.Duration, time.Duration) {
	final := make([]time.Duration, len(entries))
	for i, e := range entries {
		if e.TaskType == ledger.Regular {
			final[i] = raw[i]
		}
	}

	var unaccounted time.Duration
	for i, e := range entries {
		if e.TaskType != ledger.Minor || raw[i] == 0 {
			continue
		}
		d := raw[i]
		prev, hasPrev := nearestRegular(entries, i, -1)
		next, hasNext := nearestRegular(entries, i, +1)

		switch {
		case hasPrev && hasNext:
			share := proportionalShare(d, raw[prev], raw[next])
			final[prev] += share
			final[next] += d - share
		case hasPrev:
			final[prev] += d
		case hasNext:
			final[next] += d
		default:
			unaccounted += d
		}
	}
	return final, unaccounted
}

func nearestRegular(entries []ledger.Entry, from, step int) (int, bool) {
	for j := from + step; j >= 0 && j < len(entries); j += step {
		if entries[j].TaskType == ledger.Regular {
			return j, true
		}
	}
	return 0, false
}

// proportionalShare returns the part of d owed to the entry weighted a when
// splitting against b. Weights are whole minutes, which keeps d*a within int64.
func proportionalShare(d, a, b time.Duration) time.Duration {
	wa := int64(a / time.Minute)
	wb := int64(b / time.Minute)
	if wa+wb == 0 {
		return d / 2
	}
	return time.Duration(int64(d) * wa / (wa + wb))
}
