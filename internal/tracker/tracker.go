// Package tracker runs one load, mutate or report cycle against a day ledger.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/faizmokh/jejak/internal/engine"
	"github.com/faizmokh/jejak/internal/ledger"
	"github.com/faizmokh/jejak/internal/summary"
)

// Tracker ties the ledger store to the time engine.
type Tracker struct {
	store  *ledger.Store
	dayEnd ledger.SimpleTime
	now    func() time.Time
	logger *slog.Logger
}

// New builds a Tracker. dayEnd closes the open entry of days that are over.
func New(store *ledger.Store, dayEnd ledger.SimpleTime, now func() time.Time, logger *slog.Logger) *Tracker {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{store: store, dayEnd: dayEnd, now: now, logger: logger}
}

// Store exposes the underlying ledger store.
func (t *Tracker) Store() *ledger.Store {
	return t.store
}

// Load returns the ledger for date.
func (t *Tracker) Load(ctx context.Context, date time.Time) (ledger.DayLedger, error) {
	t.logger.Debug("opening ledger", "path", t.store.Path(date))
	l, err := t.store.Load(ctx, date)
	if err != nil {
		return ledger.DayLedger{}, err
	}
	t.logger.Debug("loaded entries", "count", l.Len())
	return l, nil
}

// Write appends an entry to the ledger for date and persists the result. It
// returns the updated ledger and the entry that was added. Nothing is written
// when the engine rejects the request.
func (t *Tracker) Write(ctx context.Context, date time.Time, p engine.Params) (ledger.DayLedger, ledger.Entry, error) {
	l, err := t.Load(ctx, date)
	if err != nil {
		return ledger.DayLedger{}, ledger.Entry{}, err
	}

	entry, err := engine.Resolve(l, p, ledger.FromTime(t.now()))
	if err != nil {
		return l, ledger.Entry{}, err
	}
	updated := engine.Insert(l, entry)
	t.logger.Debug("appended entry",
		"start", entry.StartTime.String(),
		"type", entry.TaskType.String(),
		"description", entry.Description,
		"context", entry.Context,
		"entries", updated.Len(),
	)

	if err := t.store.Save(ctx, updated); err != nil {
		return l, ledger.Entry{}, err
	}
	t.logger.Debug("saved ledger", "path", t.store.Path(date))
	return updated, entry, nil
}

// Report loads the ledger for date and summarizes it.
func (t *Tracker) Report(ctx context.Context, date time.Time) (ledger.DayLedger, summary.Report, error) {
	l, err := t.Load(ctx, date)
	if err != nil {
		return ledger.DayLedger{}, summary.Report{}, err
	}
	return l, t.Summarize(l), nil
}

// Summarize computes the report for an already loaded ledger.
func (t *Tracker) Summarize(l ledger.DayLedger) summary.Report {
	closeAt := t.ClosingTime(l.Date)
	t.logger.Debug("computing durations", "close_at", closeAt.String())
	return summary.Summarize(engine.ComputeDurations(l, closeAt))
}

// ClosingTime is the instant that ends the open entry of date: the current
// time for today, the configured day end for past days and midnight for
// future days.
func (t *Tracker) ClosingTime(date time.Time) ledger.SimpleTime {
	now := t.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return ledger.FromTime(now)
	case day.Before(today):
		return t.dayEnd
	default:
		return ledger.Clock(0, 0)
	}
}
