package ledger

import "fmt"

// IOError reports a ledger file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError names the stored row that could not be parsed. Rows are 1-based
// and the header counts as row 1.
type DecodeError struct {
	Path string
	Row  int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("decode %s row %d: %v", e.Path, e.Row, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError names the entry that could not be serialized.
type EncodeError struct {
	Row int
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode row %d: %v", e.Row, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ClockParseError is returned for input that is not a valid HH:MM time.
type ClockParseError struct {
	Input string
	Err   error
}

func (e *ClockParseError) Error() string {
	return fmt.Sprintf("invalid time %q (expected HH:MM): %v", e.Input, e.Err)
}

func (e *ClockParseError) Unwrap() error { return e.Err }
