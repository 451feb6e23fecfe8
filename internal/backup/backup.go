// Package backup snapshots the local horo database before destructive
// operations such as a forced re-init or a schema migration.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/horo/internal/logger"
)

const (
	// MaxBackups is the number of snapshots kept after rotation.
	MaxBackups = 7
	// DirName is the backup directory, next to the database.
	DirName = "backups"

	filePrefix      = "horo-"
	fileSuffix      = ".db"
	timestampFormat = "20060102-150405"
)

// ErrNoDatabase is returned when there is nothing to back up.
var ErrNoDatabase = errors.New("database does not exist")

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a consistent copy of the database and rotates old copies.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.now().UTC().Format(timestampFormat)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for i := 1; fileExists(path); i++ {
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, i, fileSuffix))
	}

	db, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return "", fmt.Errorf("database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	logger.Info("database backed up", "path", path)
	return path, nil
}

// List returns the snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var out []Info
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)]
		}
		ts, err := time.Parse(timestampFormat, stamp)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Path: filepath.Join(m.dir, name), Timestamp: ts, Size: fi.Size()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Path > out[j].Path
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the database with a snapshot. The current database is
// snapshotted first. The store must be closed.
func (m *Manager) Restore(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	err = verify(db)
	db.Close()
	if err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if fileExists(m.dbPath) {
		if _, err := m.create(); err != nil {
			return fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func verify(db *sql.DB) error {
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
