package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/files"
	"github.com/faizmokh/jejak/internal/version"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	day     string
	verbose bool
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	return newRootCommand(ctx, manager, time.Now)
}

func newRootCommand(ctx context.Context, manager *files.Manager, now func() time.Time) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "jejak",
		Short: "Keep track of what you worked on during the day.",
		Long: "jejak keeps one ledger per day. Each entry marks when a task started; " +
			"read turns the ledger into time spent per task and per context.",
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx, cmd, manager, opts, now)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.day, "day", "d", "", "Day to open as YYYY-MM-DD (default: today)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log parsed arguments and file activity to stderr")

	cmd.AddCommand(
		newReadCommand(ctx, manager, opts, now),
		newWriteCommand(ctx, manager, opts, now),
		newTUICommand(ctx, manager, opts, now),
		newConfigCommand(manager),
	)

	return cmd
}

// Run executes the command tree with args and returns the process exit code.
func Run(ctx context.Context, manager *files.Manager, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(ctx, manager)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := fang.Execute(ctx, cmd,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.Commit),
	)
	return ExitCode(err)
}

// Main is a helper used by cmd/jejak/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	manager, err := files.NewManager("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitIO)
	}
	os.Exit(Run(ctx, manager, os.Args[1:], os.Stdout, os.Stderr))
}
