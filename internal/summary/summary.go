// Package summary groups accounted durations into a read-only report.
package summary

import (
	"time"

	"github.com/faizmokh/jejak/internal/engine"
	"github.com/faizmokh/jejak/internal/ledger"
)

// Task is one Regular entry in chronological order.
type Task struct {
	Index       int               `json:"index"`
	Description string            `json:"description"`
	Context     string            `json:"context"`
	Start       ledger.SimpleTime `json:"start"`
	Raw         time.Duration     `json:"raw"`
	Duration    time.Duration     `json:"duration"`
}

// ContextTotal aggregates every task sharing a context.
type ContextTotal struct {
	Context  string        `json:"context"`
	Raw      time.Duration `json:"raw"`
	Duration time.Duration `json:"duration"`
	// Tasks lists the distinct descriptions in first-seen order.
	Tasks []string `json:"tasks"`
}

// Report is the summary of one day.
type Report struct {
	Tasks       []Task         `json:"tasks"`
	Contexts    []ContextTotal `json:"contexts"`
	Total       time.Duration  `json:"total"`
	Unaccounted time.Duration  `json:"unaccounted"`
}

// Summarize builds a Report from computed durations. Contexts appear in the
// order their first task started.
func Summarize(acc engine.Accounting) Report {
	report := Report{
		Tasks:       make([]Task, 0, len(acc.Spans)),
		Contexts:    []ContextTotal{},
		Total:       acc.Total(),
		Unaccounted: acc.Unaccounted,
	}

	positions := make(map[string]int)
	seen := make(map[string]map[string]bool)
	for _, span := range acc.Spans {
		e := span.Entry
		report.Tasks = append(report.Tasks, Task{
			Index:       span.Index,
			Description: e.Description,
			Context:     e.Context,
			Start:       e.StartTime,
			Raw:         span.Raw,
			Duration:    span.Duration,
		})

		pos, ok := positions[e.Context]
		if !ok {
			pos = len(report.Contexts)
			positions[e.Context] = pos
			seen[e.Context] = make(map[string]bool)
			report.Contexts = append(report.Contexts, ContextTotal{Context: e.Context})
		}
		ctx := &report.Contexts[pos]
		ctx.Raw += span.Raw
		ctx.Duration += span.Duration
		if !seen[e.Context][e.Description] {
			seen[e.Context][e.Description] = true
			ctx.Tasks = append(ctx.Tasks, e.Description)
		}
	}

	return report
}

// Context returns the total for name, if any task used it.
func (r Report) Context(name string) (ContextTotal, bool) {
	for _, c := range r.Contexts {
		if c.Context == name {
			return c, true
		}
	}
	return ContextTotal{}, false
}
