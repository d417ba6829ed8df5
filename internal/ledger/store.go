package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/faizmokh/jejak/internal/files"
)

const filePermissions = 0o644

// BackupPolicy controls the copies taken before a day ledger is rewritten.
type BackupPolicy struct {
	Enabled bool
	// Limit caps the number of backups kept per day. Zero keeps all of them.
	Limit int
}

// Store loads and saves day ledgers below the files.Manager base directory.
type Store struct {
	manager *files.Manager
	backups BackupPolicy
	now     func() time.Time
}

// NewStore wires a store using the shared files.Manager.
func NewStore(manager *files.Manager, backups BackupPolicy) *Store {
	return &Store{manager: manager, backups: backups, now: time.Now}
}

// Path returns the ledger file backing date.
func (s *Store) Path(date time.Time) string {
	return s.manager.DayPath(date)
}

// Load returns the ledger for date. A missing file yields an empty ledger.
func (s *Store) Load(ctx context.Context, date time.Time) (DayLedger, error) {
	if s == nil || s.manager == nil {
		return DayLedger{}, errors.New("store not initialized with file manager")
	}

	if err := ctx.Err(); err != nil {
		return DayLedger{}, err
	}

	path := s.manager.DayPath(date)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DayLedger{Date: date}, nil
		}
		return DayLedger{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	l, err := Load(file, date)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Path = path
			return DayLedger{}, decodeErr
		}
		return DayLedger{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return l, nil
}

// Save rewrites the whole ledger file. The previous content stays intact if
// anything fails before the final rename.
func (s *Store) Save(ctx context.Context, l DayLedger) error {
	if s == nil || s.manager == nil {
		return errors.New("store not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := l.Clone()
	sorted.Sort()

	var buf bytes.Buffer
	if err := Encode(&buf, sorted.Entries); err != nil {
		return err
	}

	path := s.manager.DayPath(l.Date)
	if err := s.manager.EnsureDir(path); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	if s.backups.Enabled {
		if err := s.backup(l.Date, path); err != nil {
			return err
		}
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Backups lists the backup files kept for date, oldest first.
func (s *Store) Backups(date time.Time) ([]string, error) {
	matches, err := filepath.Glob(s.manager.BackupGlob(date))
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return matches, nil
}

func (s *Store) backup(date time.Time, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &IOError{Op: "backup", Path: path, Err: err}
	}

	target := s.manager.BackupPath(date, s.now())
	if err := s.manager.EnsureDir(target); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(target), Err: err}
	}
	if err := os.WriteFile(target, data, filePermissions); err != nil {
		return &IOError{Op: "backup", Path: target, Err: err}
	}

	if s.backups.Limit <= 0 {
		return nil
	}
	existing, err := s.Backups(date)
	if err != nil {
		return &IOError{Op: "list backups", Path: s.manager.BackupDir(), Err: err}
	}
	for len(existing) > s.backups.Limit {
		if err := os.Remove(existing[0]); err != nil {
			return &IOError{Op: "prune backup", Path: existing[0], Err: err}
		}
		existing = existing[1:]
	}
	return nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, "jejak-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil {
		if err := os.Chmod(temp.Name(), info.Mode()); err != nil {
			return err
		}
	} else if err := os.Chmod(temp.Name(), filePermissions); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	return os.Rename(temp.Name(), path)
}
