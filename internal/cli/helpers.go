package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/faizmokh/jejak/internal/config"
	"github.com/faizmokh/jejak/internal/files"
	"github.com/faizmokh/jejak/internal/ledger"
	"github.com/faizmokh/jejak/internal/tracker"
	"github.com/faizmokh/jejak/internal/version"
)

func resolveDate(dayFlag string, now func() time.Time) (time.Time, error) {
	if dayFlag == "" {
		current := now().In(time.Local)
		return time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, current.Location()), nil
	}

	parsed, err := time.ParseInLocation(files.DayLayout, dayFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day: %w", err)
	}
	return parsed, nil
}

func resolveTime(timeFlag string) (*ledger.SimpleTime, error) {
	if timeFlag == "" {
		return nil, nil
	}
	parsed, err := ledger.ParseClock(timeFlag)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logArguments echoes the parsed command line when --verbose is set.
func logArguments(logger *slog.Logger, cmd *cobra.Command, args []string) {
	attrs := []any{"version", version.Info(), "command", cmd.CommandPath(), "args", args}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		attrs = append(attrs, "--"+f.Name, f.Value.String())
	})
	logger.Debug("arguments", attrs...)
}

// openTracker loads the configuration, resolves the target day and wires a
// tracker for it.
func openTracker(cmd *cobra.Command, args []string, manager *files.Manager, opts *globalOptions, now func() time.Time) (*tracker.Tracker, time.Time, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	logArguments(logger, cmd, args)
	logger.Debug("storage", "base", manager.BasePath(), "config", manager.ConfigPath())

	cfg, err := config.Load(manager.ConfigPath())
	if err != nil {
		return nil, time.Time{}, err
	}
	dayEnd, err := cfg.DayEndClock()
	if err != nil {
		return nil, time.Time{}, err
	}

	date, err := resolveDate(opts.day, now)
	if err != nil {
		return nil, time.Time{}, err
	}

	store := ledger.NewStore(manager, cfg.BackupPolicy())
	return tracker.New(store, dayEnd, now, logger), date, nil
}
