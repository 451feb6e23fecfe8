package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/horo/internal/migration"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/storage"
	"github.com/julianstephens/horo/migrations"
)

var _ storage.Provider = (*Store)(nil)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Fill in any settings that are missing, keeping ones already set.
	settings, err := s.GetSettings()
	if err != nil {
		settings = models.Settings{}
	}
	models.ApplyDefaultSettings(&settings)
	if err := s.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(context.Background())
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// Ping checks that the database answers queries.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// MigrationStatus reports the schema version against the embedded migrations.
func (s *Store) MigrationStatus(ctx context.Context) (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status(ctx)
}

// Migrate applies pending migrations and returns how many ran.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.Apply(ctx)
}
