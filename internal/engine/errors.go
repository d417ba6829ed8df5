package engine

import (
	"errors"
	"fmt"
)

// ErrMissingDescription is returned for an ordinary write without a description.
var ErrMissingDescription = errors.New("description is required unless stopping or resuming")

// ResumeIndexError reports a signed entry index outside the ledger bounds.
type ResumeIndexError struct {
	Index int
	Len   int
}

func (e *ResumeIndexError) Error() string {
	return fmt.Sprintf("cannot resume task %d: the ledger has %d entr%s", e.Index, e.Len, plural(e.Len))
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
