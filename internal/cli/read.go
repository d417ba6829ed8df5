package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/files"
	"github.com/faizmokh/jejak/internal/tracker"
)

const watchDebounce = 200 * time.Millisecond

func newReadCommand(ctx context.Context, manager *files.Manager, opts *globalOptions, now func() time.Time) *cobra.Command {
	var (
		outputJSON bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the day's entries and a summary of time spent.",
		Long: "read lists the day's entries, the accounted time of every task and the totals per context. " +
			"Minor entries are folded into the surrounding tasks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, date, err := openTracker(cmd, args, manager, opts, now)
			if err != nil {
				return err
			}

			render := func() error {
				return renderDay(ctx, cmd.OutOrStdout(), tr, date, outputJSON)
			}
			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			path := tr.Store().Path(date)
			if err := manager.EnsureDir(path); err != nil {
				return err
			}
			return followDay(ctx, cmd.ErrOrStderr(), path, render)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-print the report whenever the ledger file changes")

	return cmd
}

func renderDay(ctx context.Context, out io.Writer, tr *tracker.Tracker, date time.Time, outputJSON bool) error {
	l, report, err := tr.Report(ctx, date)
	if err != nil {
		return err
	}
	if outputJSON {
		return printReportJSON(out, l, report)
	}
	printReport(out, l, report)
	return nil
}

// followDay calls render after every change to path until ctx is done. The
// parent directory is watched because saves replace the file by renaming.
func followDay(ctx context.Context, errOut io.Writer, path string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !pending {
				timer.Reset(watchDebounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch error: %v\n", err)
		case <-timer.C:
			pending = false
			if err := render(); err != nil {
				fmt.Fprintf(errOut, "reload failed: %v\n", err)
			}
		}
	}
}
