package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Header is the first row of every ledger file.
var Header = []string{"description", "start_time", "context", "task_type"}

// legacyHeader is the five-column layout written by earlier releases.
var legacyHeader = []string{"description", "start_time", "context", "is_finish", "is_minor"}

type layout uint8

const (
	layoutCurrent layout = iota
	layoutLegacy
)

// Decode reads ledger rows from r in file order. Malformed content is reported
// as a *DecodeError; failures of r itself are returned as they are.
func Decode(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		entries []Entry
		format  layout
		row     int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		row++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &DecodeError{Row: row, Err: err}
			}
			return nil, err
		}

		if row == 1 {
			format, err = detectLayout(record)
			if err != nil {
				return nil, &DecodeError{Row: row, Err: err}
			}
			continue
		}

		var entry Entry
		switch format {
		case layoutLegacy:
			entry, err = decodeLegacyRow(record)
		default:
			entry, err = decodeRow(record)
		}
		if err != nil {
			return nil, &DecodeError{Row: row, Err: err}
		}
		entries = append(entries, entry)
	}
}

// Load decodes r into a ledger for date, sorted by start time.
func Load(r io.Reader, date time.Time) (DayLedger, error) {
	entries, err := Decode(r)
	if err != nil {
		return DayLedger{}, err
	}
	l := DayLedger{Date: date, Entries: entries}
	l.Sort()
	return l, nil
}

// Encode writes the header followed by one row per entry.
func Encode(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return &EncodeError{Row: 1, Err: err}
	}

	for i, entry := range entries {
		row := i + 2
		if !entry.StartTime.Valid() {
			return &EncodeError{Row: row, Err: fmt.Errorf("start time %s out of range", entry.StartTime)}
		}
		if int(entry.TaskType) >= len(taskTypeTokens) {
			return &EncodeError{Row: row, Err: fmt.Errorf("unknown task type %d", entry.TaskType)}
		}
		record := []string{
			entry.Description,
			entry.StartTime.String(),
			entry.Context,
			entry.TaskType.String(),
		}
		if err := writer.Write(record); err != nil {
			return &EncodeError{Row: row, Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &EncodeError{Row: len(entries) + 1, Err: err}
	}
	return nil
}

func detectLayout(record []string) (layout, error) {
	normalized := make([]string, len(record))
	for i, field := range record {
		normalized[i] = strings.ToLower(strings.TrimSpace(field))
	}

	switch {
	case slices.Equal(normalized, Header):
		return layoutCurrent, nil
	case slices.Equal(normalized, legacyHeader):
		return layoutLegacy, nil
	default:
		return layoutCurrent, fmt.Errorf("unexpected header %q", strings.Join(record, ","))
	}
}

func decodeRow(record []string) (Entry, error) {
	if len(record) != len(Header) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(record))
	}

	start, err := ParseClock(record[1])
	if err != nil {
		return Entry{}, err
	}
	taskType, err := ParseTaskType(strings.TrimSpace(record[3]))
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Description: record[0],
		StartTime:   start,
		Context:     record[2],
		TaskType:    taskType,
	}, nil
}

func decodeLegacyRow(record []string) (Entry, error) {
	if len(record) != len(legacyHeader) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(legacyHeader), len(record))
	}

	start, err := ParseClock(record[1])
	if err != nil {
		return Entry{}, err
	}
	finish, err := strconv.ParseBool(strings.TrimSpace(record[3]))
	if err != nil {
		return Entry{}, fmt.Errorf("is_finish: %w", err)
	}
	minor, err := strconv.ParseBool(strings.TrimSpace(record[4]))
	if err != nil {
		return Entry{}, fmt.Errorf("is_minor: %w", err)
	}

	taskType := Regular
	switch {
	case finish:
		taskType = Stop
	case minor:
		taskType = Minor
	}

	return NewEntry(record[0], record[2], start, taskType), nil
}
