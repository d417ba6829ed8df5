package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jejak/internal/engine"
	"github.com/faizmokh/jejak/internal/ledger"
	"github.com/faizmokh/jejak/internal/summary"
	"github.com/faizmokh/jejak/internal/tracker"
)

// Model owns Bubble Tea state for the day ledger browser.
type Model struct {
	ctx     context.Context
	tracker *tracker.Tracker
	now     func() time.Time

	currentDate time.Time
	ledger      ledger.DayLedger
	report      summary.Report
	selected    int

	mode             mode
	input            textinput.Model
	inputLabel       string
	shouldSelectLast bool

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeAddRegular
	modeAddMinor
	modeConfirmStop
	modeConfirmResume
)

type ledgerLoadedMsg struct {
	date   time.Time
	ledger ledger.DayLedger
	report summary.Report
	err    error
}

type appendResultMsg struct {
	entry ledger.Entry
	err   error
}

type entryInput struct {
	text    string
	context string
	when    *ledger.SimpleTime
}

// NewModel seeds a Bubble Tea model showing date.
func NewModel(ctx context.Context, tr *tracker.Tracker, date time.Time, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 200

	return Model{
		ctx:         ctx,
		tracker:     tr,
		now:         now,
		currentDate: date,
		ledger:      ledger.DayLedger{Date: date},
		mode:        modeNormal,
		input:       input,
		loading:     true,
		statusLine:  fmt.Sprintf("Loading %s...", date.Format("2006-01-02")),
	}
}

// Init loads the initial day.
func (m Model) Init() tea.Cmd {
	return m.loadLedgerCmd(m.currentDate)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ledgerLoadedMsg:
		return m.handleLedgerLoaded(msg)
	case appendResultMsg:
		return m.handleAppendResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if m.selected < m.ledger.Len()-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected, m.ledger.Len()-1)
			m.errorLine = ""
		}
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected, m.ledger.Len()-1)
			m.errorLine = ""
		}
	case "left", "h", "p":
		return m.gotoDate(m.currentDate.AddDate(0, 0, -1))
	case "right", "l", "n":
		return m.gotoDate(m.currentDate.AddDate(0, 0, 1))
	case "t":
		return m.gotoDate(today(m.now()))
	case "r":
		return m.reload()
	case "a":
		return m.beginAdd(modeAddRegular)
	case "m":
		return m.beginAdd(modeAddMinor)
	case "s":
		return m.beginConfirm(modeConfirmStop)
	case "enter", "R":
		if m.ledger.Len() == 0 || m.loading {
			return m, nil
		}
		return m.beginConfirm(modeConfirmResume)
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAddRegular, modeAddMinor:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitInput()
		case tea.KeyEsc:
			return m.cancelInput("Cancelled.")
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case modeConfirmStop, modeConfirmResume:
		switch msg.String() {
		case "y", "Y", "enter":
			return m.confirm()
		case "n", "N", "esc":
			return m.cancelInput("Cancelled.")
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) beginAdd(target mode) (tea.Model, tea.Cmd) {
	m.mode = target
	m.input.SetValue("")
	if target == modeAddMinor {
		m.inputLabel = "New minor entry (text; add @HH:MM and #context as needed; Enter to save, Esc to cancel):"
	} else {
		m.inputLabel = "New entry (text; add @HH:MM and #context as needed; Enter to save, Esc to cancel):"
	}
	m.statusLine = ""
	m.errorLine = ""
	return m, m.input.Focus()
}

func (m Model) beginConfirm(target mode) (tea.Model, tea.Cmd) {
	m.mode = target
	m.statusLine = ""
	m.errorLine = ""
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	parsed, err := parseInputLine(m.input.Value())
	if err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	if parsed.text == "" {
		m.errorLine = "Entry needs a description."
		return m, nil
	}

	params := engine.Params{
		Description: parsed.text,
		Context:     parsed.context,
		Time:        parsed.when,
		Minor:       m.mode == modeAddMinor,
	}
	return m.submit(params, "Saving entry...")
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirmStop:
		return m.submit(engine.Params{Stop: true}, "Stopping...")
	case modeConfirmResume:
		if m.selected < 0 || m.selected >= m.ledger.Len() {
			return m.cancelInput("No entry selected.")
		}
		index := m.selected
		return m.submit(engine.Params{Resume: &index}, fmt.Sprintf("Resuming entry %d...", index))
	default:
		return m, nil
	}
}

func (m Model) submit(params engine.Params, status string) (tea.Model, tea.Cmd) {
	cmd := m.appendEntryCmd(m.currentDate, params)
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()
	m.inputLabel = ""
	m.statusLine = status
	m.errorLine = ""
	return m, cmd
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()
	m.inputLabel = ""
	m.shouldSelectLast = false
	if message != "" {
		m.statusLine = message
	}
	m.errorLine = ""
	return m, nil
}

func (m Model) handleLedgerLoaded(msg ledgerLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results for dates we no longer display.
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.date.Format("2006-01-02"), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.ledger = msg.ledger
	m.report = msg.report
	switch {
	case m.ledger.Len() == 0:
		m.selected = 0
		m.statusLine = fmt.Sprintf("%s has no entries.", msg.date.Format("2006-01-02"))
	case m.shouldSelectLast:
		m.selected = m.ledger.Len() - 1
		fallthrough
	default:
		if m.selected >= m.ledger.Len() {
			m.selected = m.ledger.Len() - 1
		}
		if m.statusLine == "" || m.loadingStatus() {
			m.statusLine = fmt.Sprintf("Loaded %d entr%s.", m.ledger.Len(), plural(m.ledger.Len()))
		}
	}
	m.shouldSelectLast = false
	return m, nil
}

func (m Model) loadingStatus() bool {
	return strings.HasPrefix(m.statusLine, "Loading") || strings.HasPrefix(m.statusLine, "Refreshing")
}

func (m Model) handleAppendResult(msg appendResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Add failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Logged [%s] %s %s.", msg.entry.TaskType, msg.entry.StartTime, msg.entry.Description)
	m.loading = true
	m.shouldSelectLast = true
	return m, m.loadLedgerCmd(m.currentDate)
}

func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	if sameDay(m.currentDate, date) {
		return m.reload()
	}

	m.currentDate = date
	m.ledger = ledger.DayLedger{Date: date}
	m.report = summary.Report{}
	m.selected = 0
	m.loading = true
	m.statusLine = fmt.Sprintf("Loading %s...", date.Format("2006-01-02"))
	m.errorLine = ""
	m.mode = modeNormal
	m.inputLabel = ""
	m.shouldSelectLast = false
	return m, m.loadLedgerCmd(date)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = fmt.Sprintf("Refreshing %s...", m.currentDate.Format("2006-01-02"))
	m.errorLine = ""
	return m, m.loadLedgerCmd(m.currentDate)
}

func (m Model) loadLedgerCmd(date time.Time) tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		l, report, err := tr.Report(ctx, date)
		if err != nil {
			return ledgerLoadedMsg{date: date, err: err}
		}
		return ledgerLoadedMsg{date: date, ledger: l, report: report}
	}
}

func (m Model) appendEntryCmd(date time.Time, params engine.Params) tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		_, entry, err := tr.Write(ctx, date, params)
		if err != nil {
			return appendResultMsg{err: err}
		}
		return appendResultMsg{entry: entry}
	}
}

func today(now time.Time) time.Time {
	now = now.In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	a, b = a.In(time.Local), b.In(time.Local)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}

// parseInputLine splits a prompt line into description, @HH:MM time and #context.
func parseInputLine(input string) (entryInput, error) {
	result := entryInput{}

	var textParts []string
	for _, token := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(token, "#") && len(token) > 1:
			result.context = strings.TrimPrefix(token, "#")
		case strings.HasPrefix(token, "@") && len(token) > 1:
			when, err := ledger.ParseClock(token[1:])
			if err != nil {
				return entryInput{}, err
			}
			result.when = &when
		default:
			textParts = append(textParts, token)
		}
	}

	result.text = strings.TrimSpace(strings.Join(textParts, " "))
	return result, nil
}
