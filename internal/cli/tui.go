package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/files"
	"github.com/faizmokh/jejak/internal/ui"
)

func newTUICommand(ctx context.Context, manager *files.Manager, opts *globalOptions, now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and extend day ledgers interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx, cmd, manager, opts, now)
		},
	}
}

func runTUI(ctx context.Context, cmd *cobra.Command, manager *files.Manager, opts *globalOptions, now func() time.Time) error {
	tr, date, err := openTracker(cmd, nil, manager, opts, now)
	if err != nil {
		return err
	}

	m := ui.NewModel(ctx, tr, date, now)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
