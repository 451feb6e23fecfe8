// Package migration applies the embedded SQL schema migrations to the local
// state database.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/horo/internal/logger"
)

// ErrSchemaTooNew is returned when the database was written by a newer horo.
var ErrSchemaTooNew = errors.New("database schema is newer than this version of horo supports")

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status summarizes where a database stands relative to the embedded migrations.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// UpToDate reports whether no migrations are pending.
func (s Status) UpToDate() bool {
	return len(s.Pending) == 0
}

// Runner applies migrations from an fs.FS to a database.
type Runner struct {
	db *sql.DB
	fs fs.FS
}

// NewRunner creates a runner reading NNN_name.sql files from the root of fsys.
func NewRunner(db *sql.DB, fsys fs.FS) *Runner {
	return &Runner{db: db, fs: fsys}
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	var version int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(ctx context.Context, version int) error {
	if err := r.ensureVersionTable(ctx); err != nil {
		return err
	}
	return setVersion(ctx, r.db, version)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setVersion(ctx context.Context, db execer, version int) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// Migrations reads the migration files sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		prefix, rest, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", e.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version number in migration %s", e.Name())
		}
		content, err := fs.ReadFile(r.fs, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: strings.TrimSuffix(rest, ".sql"), SQL: string(content)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Status compares the database against the available migrations.
func (r *Runner) Status(ctx context.Context) (Status, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return Status{}, err
	}
	all, err := r.Migrations()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	if len(all) > 0 {
		st.Latest = all[len(all)-1].Version
	}
	if current > st.Latest {
		return st, fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, current, st.Latest)
	}
	for _, m := range all {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Apply runs every pending migration, each in its own transaction together
// with the version bump. It returns how many were applied.
func (r *Runner) Apply(ctx context.Context) (int, error) {
	st, err := r.Status(ctx)
	if err != nil {
		return 0, err
	}
	if st.UpToDate() {
		logger.Debug("schema up to date", "version", st.Current)
		return 0, nil
	}

	start := time.Now()
	applied := 0
	for _, m := range st.Pending {
		if err := r.applyOne(ctx, m); err != nil {
			return applied, err
		}
		applied++
		logger.Info("applied migration", "version", m.Version, "name", m.Name)
	}
	logger.Info("schema migrated", "from", st.Current, "to", st.Latest, "elapsed", time.Since(start))
	return applied, nil
}

func (r *Runner) applyOne(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := setVersion(ctx, tx, m.Version); err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// Validate fails if the database schema is newer than the embedded migrations.
func (r *Runner) Validate(ctx context.Context) error {
	_, err := r.Status(ctx)
	return err
}
