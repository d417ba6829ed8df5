package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/engine"
	"github.com/faizmokh/jejak/internal/files"
)

func newWriteCommand(ctx context.Context, manager *files.Manager, opts *globalOptions, now func() time.Time) *cobra.Command {
	var (
		stop        bool
		minor       bool
		contextFlag string
		timeFlag    string
		resume      int
	)

	cmd := &cobra.Command{
		Use:   "write [description ...]",
		Short: "Add an entry to the day's ledger.",
		Long: "write records that a task started. The description is required unless --stop or --resume is given. " +
			"--resume copies the description and context of an earlier entry: 0 is the first entry of the day, " +
			"-1 the current one, -2 the one before it. The start time is never copied; it defaults to now.",
		Example: "  jejak write Review pull requests -c reviews\n" +
			"  jejak write Coffee --minor\n" +
			"  jejak write --resume -2 --time 14:30\n" +
			"  jejak write --stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, date, err := openTracker(cmd, args, manager, opts, now)
			if err != nil {
				return err
			}

			start, err := resolveTime(timeFlag)
			if err != nil {
				return err
			}

			params := engine.Params{
				Description: strings.TrimSpace(strings.Join(args, " ")),
				Context:     contextFlag,
				Time:        start,
				Stop:        stop,
				Minor:       minor,
			}
			if cmd.Flags().Changed("resume") {
				params.Resume = &resume
			}

			l, entry, err := tr.Write(ctx, date, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged %s\n", formatEntry(entry))
			if current, ok := engine.Current(l); ok && current != entry {
				// A back-dated entry does not replace the running task.
				fmt.Fprintf(out, "Current %s\n", formatEntry(current))
			}
			printEntries(out, l)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&stop, "stop", "s", false, "End the current task without starting a new one; its time is not counted")
	cmd.Flags().StringVarP(&contextFlag, "context", "c", "", "Group tasks under this context (default: the description)")
	cmd.Flags().StringVarP(&timeFlag, "time", "t", "", "Start time as HH:MM (default: now)")
	cmd.Flags().BoolVarP(&minor, "minor", "m", false, "Fold this task's time into the surrounding tasks")
	cmd.Flags().IntVarP(&resume, "resume", "r", 0, "Resume the n-th task of the day; negative values count from the end")

	return cmd
}
