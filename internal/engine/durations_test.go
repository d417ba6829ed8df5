package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/jejak/internal/ledger"
)

func entry(desc string, h, m int, tt ledger.TaskType) ledger.Entry {
	return ledger.NewEntry(desc, "", ledger.Clock(h, m), tt)
}

func TestComputeDurationsRegularOnly(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Email", 8, 0, ledger.Regular),
		entry("Build", 8, 45, ledger.Regular),
		entry("Lunch", 12, 0, ledger.Regular),
	}}

	acc := ComputeDurations(l, ledger.Clock(12, 20))
	require.Len(t, acc.Spans, 3)
	assert.Equal(t, 45*time.Minute, acc.Spans[0].Duration)
	assert.Equal(t, 195*time.Minute, acc.Spans[1].Duration)
	assert.Equal(t, 20*time.Minute, acc.Spans[2].Duration)
	assert.Equal(t, []int{0, 1, 2}, []int{acc.Spans[0].Index, acc.Spans[1].Index, acc.Spans[2].Index})
	assert.Zero(t, acc.Unaccounted)
}

func TestComputeDurationsStopClosesAccounting(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Work", 9, 0, ledger.Regular),
		entry("", 12, 0, ledger.Stop),
		entry("Work", 13, 0, ledger.Regular),
		entry("", 17, 0, ledger.Stop),
	}}

	acc := ComputeDurations(l, ledger.Clock(23, 0))
	require.Len(t, acc.Spans, 2)
	assert.Equal(t, 3*time.Hour, acc.Spans[0].Duration)
	assert.Equal(t, 4*time.Hour, acc.Spans[1].Duration)
	assert.Equal(t, 7*time.Hour, acc.Total())
}

func TestComputeDurationsMinorRedistribution(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Work", 9, 0, ledger.Regular),
		entry("Coffee", 10, 0, ledger.Minor),
		entry("Work", 10, 10, ledger.Regular),
		entry("", 12, 0, ledger.Stop),
	}}

	acc := ComputeDurations(l, ledger.Clock(18, 0))
	require.Len(t, acc.Spans, 2)

	first, second := acc.Spans[0], acc.Spans[1]
	assert.Equal(t, 60*time.Minute, first.Raw)
	assert.Equal(t, 110*time.Minute, second.Raw)
	assert.InDelta(t, 60+10.0*60/170, first.Duration.Minutes(), 0.001)
	assert.InDelta(t, 110+10.0*110/170, second.Duration.Minutes(), 0.001)
	assert.Equal(t, 180*time.Minute, first.Duration+second.Duration)

	for _, s := range acc.Spans {
		assert.NotEqual(t, "Coffee", s.Entry.Description)
	}
}

func TestComputeDurationsMinorSingleNeighbour(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Tea", 8, 0, ledger.Minor),
		entry("Work", 8, 15, ledger.Regular),
		entry("", 9, 0, ledger.Stop),
		entry("Chat", 9, 0, ledger.Minor),
	}}

	acc := ComputeDurations(l, ledger.Clock(9, 30))
	require.Len(t, acc.Spans, 1)
	// Tea (15m) and the trailing Chat (30m) both land on the only Regular entry.
	assert.Equal(t, 90*time.Minute, acc.Spans[0].Duration)
	assert.Zero(t, acc.Unaccounted)
}

func TestComputeDurationsLoneMinorIsUnaccounted(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Coffee", 10, 0, ledger.Minor),
	}}

	acc := ComputeDurations(l, ledger.Clock(10, 25))
	assert.Empty(t, acc.Spans)
	assert.Equal(t, 25*time.Minute, acc.Unaccounted)
}

func TestComputeDurationsZeroWeightNeighboursSplitEvenly(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("A", 9, 0, ledger.Regular),
		entry("Break", 9, 0, ledger.Minor),
		entry("B", 9, 30, ledger.Regular),
	}}

	acc := ComputeDurations(l, ledger.Clock(9, 30))
	require.Len(t, acc.Spans, 2)
	assert.Equal(t, 15*time.Minute, acc.Spans[0].Duration)
	assert.Equal(t, 15*time.Minute, acc.Spans[1].Duration)
}

func TestComputeDurationsFutureEntryClampsToZero(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Later", 15, 0, ledger.Regular),
	}}

	acc := ComputeDurations(l, ledger.Clock(14, 0))
	require.Len(t, acc.Spans, 1)
	assert.Zero(t, acc.Spans[0].Duration)
}

func TestComputeDurationsEmptyLedger(t *testing.T) {
	acc := ComputeDurations(ledger.DayLedger{}, ledger.Clock(12, 0))
	assert.Empty(t, acc.Spans)
	assert.Zero(t, acc.Unaccounted)
}

func TestComputeDurationsSortsUnorderedInput(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Second", 10, 0, ledger.Regular),
		entry("First", 9, 0, ledger.Regular),
	}}

	acc := ComputeDurations(l, ledger.Clock(10, 30))
	require.Len(t, acc.Spans, 2)
	assert.Equal(t, "First", acc.Spans[0].Entry.Description)
	assert.Equal(t, time.Hour, acc.Spans[0].Duration)
}

func TestComputeDurationsIsIdempotent(t *testing.T) {
	l := ledger.DayLedger{Entries: []ledger.Entry{
		entry("Work", 9, 0, ledger.Regular),
		entry("Coffee", 10, 0, ledger.Minor),
		entry("Work", 10, 10, ledger.Regular),
	}}
	now := ledger.Clock(11, 0)

	assert.Equal(t, ComputeDurations(l, now), ComputeDurations(l, now))
}

func TestComputeDurationsConservesTime(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := []ledger.TaskType{ledger.Regular, ledger.Regular, ledger.Minor, ledger.Stop}

	for round := 0; round < 500; round++ {
		n := rng.Intn(12)
		l := ledger.DayLedger{}
		for i := 0; i < n; i++ {
			l.Entries = append(l.Entries, entry("t", rng.Intn(24), rng.Intn(60), types[rng.Intn(len(types))]))
		}
		l.Sort()
		now := ledger.Clock(rng.Intn(24), rng.Intn(60))

		var want time.Duration
		for i, e := range l.Entries {
			if e.TaskType == ledger.Stop {
				continue
			}
			end := now
			if i+1 < len(l.Entries) {
				end = l.Entries[i+1].StartTime
			}
			if d := end.Sub(e.StartTime); d > 0 {
				want += d
			}
		}

		acc := ComputeDurations(l, now)
		require.Equal(t, want, acc.Total()+acc.Unaccounted, "round %d: %+v now %v", round, l.Entries, now)
	}
}
