package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultDirName is the ledger directory under the user's home.
	DefaultDirName = ".jejak"
	// HomeEnv points jejak at another ledger directory.
	HomeEnv = "JEJAK_HOME"

	dirPermissions = 0o755

	// DayLayout is the date layout used for ledger file names.
	DayLayout = "2006-01-02"

	ledgerExt     = ".csv"
	backupDirName = "backups"
	configName    = "config.yaml"

	// backupStamp sorts lexically in time order, to the nanosecond.
	backupStamp = "20060102T150405.000000000"
)

// Manager centralizes where day ledgers live on disk and how files are named.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at basePath, or at DefaultBase when
// basePath is empty.
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = DefaultBase()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// DefaultBase is $JEJAK_HOME when set, with a leading ~ meaning the home
// directory, and ~/.jejak otherwise.
func DefaultBase() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := strings.TrimSpace(os.Getenv(HomeEnv))
	switch {
	case dir == "":
		return filepath.Join(home, DefaultDirName), nil
	case dir == "~":
		return home, nil
	case strings.HasPrefix(dir, "~/"):
		return filepath.Join(home, dir[2:]), nil
	default:
		return dir, nil
	}
}

// BasePath returns the root directory storing all ledger files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DayPath resolves the absolute path to the ledger file for the supplied date.
// The file may not exist yet.
func (m *Manager) DayPath(date time.Time) string {
	return filepath.Join(m.basePath, date.Format(DayLayout)+ledgerExt)
}

// BackupDir is where previous versions of day ledgers are copied before a rewrite.
func (m *Manager) BackupDir() string {
	return filepath.Join(m.basePath, backupDirName)
}

// BackupPath names a backup of the day ledger taken at the given instant.
// Names of backups for one day sort oldest first.
func (m *Manager) BackupPath(date, at time.Time) string {
	name := fmt.Sprintf("%s%s.%s", date.Format(DayLayout), ledgerExt, at.Format(backupStamp))
	return filepath.Join(m.BackupDir(), name)
}

// BackupGlob matches every backup taken for the given date.
func (m *Manager) BackupGlob(date time.Time) string {
	return filepath.Join(m.BackupDir(), date.Format(DayLayout)+ledgerExt+".*")
}

// ConfigPath returns the location of the optional YAML configuration file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, configName)
}

// EnsureDir guarantees the directory holding path exists.
func (m *Manager) EnsureDir(path string) error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}
