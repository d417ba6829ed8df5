package ledger

import (
	"strings"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses a 24-hour HH:MM string.
func ParseClock(input string) (SimpleTime, error) {
	parsed, err := time.Parse(clockLayout, strings.TrimSpace(input))
	if err != nil {
		return SimpleTime{}, &ClockParseError{Input: input, Err: err}
	}
	return FromTime(parsed), nil
}
