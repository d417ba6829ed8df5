package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/faizmokh/jejak/internal/ledger"
	"github.com/faizmokh/jejak/internal/summary"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	minorCell = cellStyle.Foreground(lipgloss.Color("3"))
	stopCell  = cellStyle.Foreground(lipgloss.Color("1"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func formatEntry(entry ledger.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", entry.TaskType, entry.StartTime)
	if entry.Description != "" {
		b.WriteByte(' ')
		b.WriteString(entry.Description)
	}
	if entry.Context != "" && entry.Context != entry.Description {
		fmt.Fprintf(&b, " (%s)", entry.Context)
	}
	return b.String()
}

func printEntries(out io.Writer, l ledger.DayLedger) {
	if l.Len() == 0 {
		fmt.Fprintln(out, mutedStyle.Render("(no entries)"))
		return
	}

	t := newTable("#", "START", "TYPE", "DESCRIPTION", "CONTEXT")
	for i, e := range l.Entries {
		t.Row(strconv.Itoa(i), e.StartTime.String(), e.TaskType.String(), e.Description, e.Context)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row >= 0 && row < l.Len() {
			switch l.Entries[row].TaskType {
			case ledger.Minor:
				return minorCell
			case ledger.Stop:
				return stopCell
			}
		}
		return cellStyle
	})
	fmt.Fprintln(out, t.Render())
}

func printReport(out io.Writer, l ledger.DayLedger, report summary.Report) {
	fmt.Fprintln(out, titleStyle.Render(l.Date.Format("2006-01-02 (Monday)")))
	printEntries(out, l)

	if len(report.Tasks) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("Nothing to summarize."))
		printUnaccounted(out, report)
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Tasks"))
	tasks := newTable("#", "START", "DESCRIPTION", "CONTEXT", "RAW MIN", "MINUTES", "HOURS")
	for _, task := range report.Tasks {
		tasks.Row(
			strconv.Itoa(task.Index),
			task.Start.String(),
			task.Description,
			task.Context,
			formatMinutes(task.Raw),
			formatMinutes(task.Duration),
			formatHours(task.Duration),
		)
	}
	tasks.StyleFunc(plainStyle)
	fmt.Fprintln(out, tasks.Render())

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Contexts"))
	contexts := newTable("CONTEXT", "RAW MIN", "MINUTES", "HOURS", "TASKS")
	for _, c := range report.Contexts {
		contexts.Row(
			c.Context,
			formatMinutes(c.Raw),
			formatMinutes(c.Duration),
			formatHours(c.Duration),
			strings.Join(c.Tasks, ", "),
		)
	}
	contexts.StyleFunc(plainStyle)
	fmt.Fprintln(out, contexts.Render())

	fmt.Fprintln(out, totalStyle.Render("Total hours: "+formatHours(report.Total)))
	printUnaccounted(out, report)
}

func printUnaccounted(out io.Writer, report summary.Report) {
	if report.Unaccounted > 0 {
		fmt.Fprintln(out, mutedStyle.Render("Unaccounted minor minutes: "+formatMinutes(report.Unaccounted)))
	}
}

func plainStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

func formatMinutes(d time.Duration) string {
	return strconv.FormatFloat(d.Minutes(), 'f', 2, 64)
}

func formatHours(d time.Duration) string {
	return strconv.FormatFloat(d.Hours(), 'f', 2, 64)
}

type reportDTO struct {
	Date        string       `json:"date"`
	Entries     []entryDTO   `json:"entries"`
	Tasks       []taskDTO    `json:"tasks"`
	Contexts    []contextDTO `json:"contexts"`
	TotalHours  float64      `json:"total_hours"`
	Unaccounted float64      `json:"unaccounted_minutes"`
}

type entryDTO struct {
	Index int `json:"index"`
	ledger.Entry
}

type taskDTO struct {
	Index       int               `json:"index"`
	Start       ledger.SimpleTime `json:"start"`
	Description string            `json:"description"`
	Context     string            `json:"context"`
	RawMinutes  float64           `json:"raw_minutes"`
	Minutes     float64           `json:"minutes"`
}

type contextDTO struct {
	Context    string   `json:"context"`
	RawMinutes float64  `json:"raw_minutes"`
	Minutes    float64  `json:"minutes"`
	Tasks      []string `json:"tasks"`
}

func printReportJSON(out io.Writer, l ledger.DayLedger, report summary.Report) error {
	dto := reportDTO{
		Date:        l.Date.Format("2006-01-02"),
		Entries:     make([]entryDTO, 0, l.Len()),
		Tasks:       make([]taskDTO, 0, len(report.Tasks)),
		Contexts:    make([]contextDTO, 0, len(report.Contexts)),
		TotalHours:  report.Total.Hours(),
		Unaccounted: report.Unaccounted.Minutes(),
	}
	for i, e := range l.Entries {
		dto.Entries = append(dto.Entries, entryDTO{Index: i, Entry: e})
	}
	for _, t := range report.Tasks {
		dto.Tasks = append(dto.Tasks, taskDTO{
			Index:       t.Index,
			Start:       t.Start,
			Description: t.Description,
			Context:     t.Context,
			RawMinutes:  t.Raw.Minutes(),
			Minutes:     t.Duration.Minutes(),
		})
	}
	for _, c := range report.Contexts {
		dto.Contexts = append(dto.Contexts, contextDTO{
			Context:    c.Context,
			RawMinutes: c.Raw.Minutes(),
			Minutes:    c.Duration.Minutes(),
			Tasks:      c.Tasks,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto)
}
