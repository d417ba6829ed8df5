package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/jejak/internal/ledger"
)

var (
	accentColor  = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	minorStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	stopStyle   = lipgloss.NewStyle().Foreground(warningColor)
	statusStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := m.currentDate.Format("Monday, 02 January 2006")
	b.WriteString(titleStyle.Render(header))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(strings.Repeat("-", len(header))))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...\n")
	} else if m.ledger.Len() == 0 {
		b.WriteString("(no entries)\n")
	} else {
		for i, entry := range m.ledger.Entries {
			line := formatEntry(entry)
			switch entry.TaskType {
			case ledger.Minor:
				line = minorStyle.Render(line)
			case ledger.Stop:
				line = stopStyle.Render(line)
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render(">"))
			} else {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, " %2d %s\n", i, line)
		}
	}

	if !m.loading && m.selected < m.ledger.Len() {
		selected := m.ledger.Entries[m.selected]
		if total, ok := m.report.Context(selected.Context); ok {
			b.WriteByte('\n')
			b.WriteString(helpStyle.Render(fmt.Sprintf("  #%s so far: %s over %d task(s)", total.Context, formatDuration(total.Duration), len(total.Tasks))))
			b.WriteByte('\n')
		}
	}

	if !m.loading && len(m.report.Contexts) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Contexts"))
		b.WriteByte('\n')
		for _, ctx := range m.report.Contexts {
			fmt.Fprintf(&b, "  %-24s %s\n", ctx.Context, formatDuration(ctx.Duration))
		}
		fmt.Fprintf(&b, "  %-24s %s\n", "total", formatDuration(m.report.Total))
		if m.report.Unaccounted > 0 {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  unaccounted minor time %s", formatDuration(m.report.Unaccounted))))
			b.WriteByte('\n')
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusLine))
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeAddRegular, modeAddMinor:
		b.WriteString("\n")
		b.WriteString(m.inputLabel)
		b.WriteByte('\n')
		b.WriteString(promptStyle.Render(m.input.View()))
		b.WriteByte('\n')
	case modeConfirmStop:
		b.WriteString("\nStop the current task now? (y/n, Esc to cancel)\n")
	case modeConfirmResume:
		if m.selected < m.ledger.Len() {
			fmt.Fprintf(&b, "\nResume %q now? (y/n, Esc to cancel)\n", m.ledger.Entries[m.selected].Description)
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Navigation: <-/h/p prev  ->/l/n next  j/k select  t today  r reload"))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("Actions: a add  m add minor  s stop  enter/R resume selected  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func formatEntry(entry ledger.Entry) string {
	var builder strings.Builder
	builder.Grow(24 + len(entry.Description) + len(entry.Context))

	fmt.Fprintf(&builder, "[%s] [%s]", entry.StartTime, entry.TaskType)

	if entry.Description != "" {
		builder.WriteByte(' ')
		builder.WriteString(entry.Description)
	}
	if entry.Context != "" && entry.Context != entry.Description {
		builder.WriteString(" #")
		builder.WriteString(entry.Context)
	}

	return builder.String()
}

func formatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
