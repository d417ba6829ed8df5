package cli

import (
	"errors"

	"github.com/faizmokh/jejak/internal/engine"
	"github.com/faizmokh/jejak/internal/ledger"
)

// Exit codes, one per failure class so scripts can tell them apart.
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitIO                 = 3
	ExitData               = 4
	ExitClock              = 5
	ExitResumeIndex        = 6
	ExitMissingDescription = 7
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		decodeErr *ledger.DecodeError
		encodeErr *ledger.EncodeError
		ioErr     *ledger.IOError
		clockErr  *ledger.ClockParseError
		resumeErr *engine.ResumeIndexError
	)
	switch {
	case errors.As(err, &decodeErr), errors.As(err, &encodeErr):
		return ExitData
	case errors.As(err, &ioErr):
		return ExitIO
	case errors.As(err, &clockErr):
		return ExitClock
	case errors.As(err, &resumeErr):
		return ExitResumeIndex
	case errors.Is(err, engine.ErrMissingDescription):
		return ExitMissingDescription
	default:
		return ExitFailure
	}
}
