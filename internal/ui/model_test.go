package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jejak/internal/files"
	"github.com/faizmokh/jejak/internal/ledger"
	"github.com/faizmokh/jejak/internal/tracker"
)

func newTestModel(t *testing.T, now time.Time) (Model, *tracker.Tracker) {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	clock := func() time.Time { return now }
	tr := tracker.New(ledger.NewStore(mgr, ledger.BackupPolicy{}), ledger.Clock(23, 59), clock, nil)
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	m := NewModel(context.Background(), tr, date, clock)
	return settle(t, m, m.Init()), tr
}

// settle runs storage commands until the model stops producing them.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case ledgerLoadedMsg, appendResultMsg:
		default:
			return m
		}
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		cmd = nextCmd
	}
	return m
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestParseInputLine(t *testing.T) {
	parsed, err := parseInputLine("Deep work @09:15 #project-x")
	if err != nil {
		t.Fatalf("parseInputLine: %v", err)
	}
	if parsed.text != "Deep work" {
		t.Fatalf("unexpected text %q", parsed.text)
	}
	if parsed.context != "project-x" {
		t.Fatalf("unexpected context %q", parsed.context)
	}
	if parsed.when == nil || *parsed.when != ledger.Clock(9, 15) {
		t.Fatalf("unexpected time %v", parsed.when)
	}

	if _, err := parseInputLine("Coffee @25:00"); err == nil {
		t.Fatalf("expected invalid time to fail")
	}
}

func TestAddEntryFlow(t *testing.T) {
	now := time.Date(2025, time.November, 21, 11, 0, 0, 0, time.Local)
	m, tr := newTestModel(t, now)
	if m.loading {
		t.Fatalf("model still loading after init")
	}

	m, _ = press(t, m, "a")
	if m.mode != modeAddRegular {
		t.Fatalf("expected add mode, got %v", m.mode)
	}
	m, _ = press(t, m, "Deep work @09:00 #proj")
	m, cmd := press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after submit, got %v", m.mode)
	}
	m = settle(t, m, cmd)

	if m.errorLine != "" {
		t.Fatalf("unexpected error: %s", m.errorLine)
	}
	if m.ledger.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.ledger.Len())
	}
	entry := m.ledger.Entries[0]
	if entry.Description != "Deep work" || entry.Context != "proj" || entry.StartTime != ledger.Clock(9, 0) {
		t.Fatalf("unexpected entry %+v", entry)
	}

	l, err := tr.Load(context.Background(), m.currentDate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("entry not persisted, got %d entries", l.Len())
	}

	if got, ok := m.report.Context("proj"); !ok || got.Duration != 2*time.Hour {
		t.Fatalf("unexpected context total %+v", got)
	}
	view := m.View()
	if !strings.Contains(view, "Deep work") {
		t.Fatalf("view missing entry:\n%s", view)
	}
	if !strings.Contains(view, "#proj so far: 2h00m over 1 task(s)") {
		t.Fatalf("view missing selected context total:\n%s", view)
	}
}

func TestAddWithoutDescriptionKeepsPrompt(t *testing.T) {
	now := time.Date(2025, time.November, 21, 11, 0, 0, 0, time.Local)
	m, _ := newTestModel(t, now)

	m, _ = press(t, m, "m")
	m, _ = press(t, m, "@10:00")
	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("expected no command for empty description")
	}
	if m.mode != modeAddMinor {
		t.Fatalf("expected prompt to stay open, got %v", m.mode)
	}
	if m.errorLine == "" {
		t.Fatalf("expected error line")
	}

	m, _ = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected esc to cancel, got %v", m.mode)
	}
}

func TestStopAndResumeSelected(t *testing.T) {
	now := time.Date(2025, time.November, 21, 12, 0, 0, 0, time.Local)
	m, _ := newTestModel(t, now)

	m, _ = press(t, m, "a")
	m, _ = press(t, m, "Review @09:00 #ops")
	m, cmd := press(t, m, "enter")
	m = settle(t, m, cmd)

	m, _ = press(t, m, "s")
	if m.mode != modeConfirmStop {
		t.Fatalf("expected stop confirmation, got %v", m.mode)
	}
	m, cmd = press(t, m, "y")
	m = settle(t, m, cmd)
	if m.ledger.Len() != 2 || m.ledger.Entries[1].TaskType != ledger.Stop {
		t.Fatalf("expected trailing stop entry, got %+v", m.ledger.Entries)
	}
	if m.selected != 1 {
		t.Fatalf("expected new entry selected, got %d", m.selected)
	}

	m, _ = press(t, m, "k")
	if m.selected != 0 {
		t.Fatalf("expected first entry selected, got %d", m.selected)
	}
	m, _ = press(t, m, "R")
	if m.mode != modeConfirmResume {
		t.Fatalf("expected resume confirmation, got %v", m.mode)
	}
	m, cmd = press(t, m, "y")
	m = settle(t, m, cmd)

	if m.ledger.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", m.ledger.Len())
	}
	resumed := m.ledger.Entries[2]
	if resumed.Description != "Review" || resumed.Context != "ops" || resumed.TaskType != ledger.Regular {
		t.Fatalf("unexpected resumed entry %+v", resumed)
	}
	if resumed.StartTime != ledger.Clock(12, 0) {
		t.Fatalf("expected resume at now, got %s", resumed.StartTime)
	}
}

func TestNavigateDays(t *testing.T) {
	now := time.Date(2025, time.November, 21, 12, 0, 0, 0, time.Local)
	m, _ := newTestModel(t, now)

	m, cmd := press(t, m, "h")
	if !m.loading {
		t.Fatalf("expected loading after navigation")
	}
	m = settle(t, m, cmd)
	if got := m.currentDate.Format("2006-01-02"); got != "2025-11-20" {
		t.Fatalf("unexpected date %s", got)
	}

	m, cmd = press(t, m, "t")
	m = settle(t, m, cmd)
	if got := m.currentDate.Format("2006-01-02"); got != "2025-11-21" {
		t.Fatalf("unexpected date after today %s", got)
	}
}

func TestStaleLoadIgnored(t *testing.T) {
	now := time.Date(2025, time.November, 21, 12, 0, 0, 0, time.Local)
	m, _ := newTestModel(t, now)

	stale := ledgerLoadedMsg{
		date:   now.AddDate(0, 0, -3),
		ledger: ledger.DayLedger{Entries: []ledger.Entry{ledger.NewEntry("old", "", ledger.Clock(8, 0), ledger.Regular)}},
	}
	next, _ := m.Update(stale)
	if next.(Model).ledger.Len() != 0 {
		t.Fatalf("stale load replaced current ledger")
	}
}

func TestSameDayComparesLocalCalendarDays(t *testing.T) {
	east := time.FixedZone("UTC+14", 14*60*60)
	local := time.Date(2025, time.November, 21, 12, 0, 0, 0, time.Local)

	if !sameDay(local, local.In(east)) {
		t.Fatalf("same instant in another zone should be the same day")
	}
	if sameDay(local, local.AddDate(0, 0, 1).In(east)) {
		t.Fatalf("next day reported as the same day")
	}
}
