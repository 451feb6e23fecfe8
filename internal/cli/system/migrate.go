package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/horo/internal/backup"
	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/migration"
)

// migrator is implemented by stores backed by a versioned schema.
type migrator interface {
	Ping(ctx context.Context) error
	MigrationStatus(ctx context.Context) (migration.Status, error)
	Migrate(ctx context.Context) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return errors.New("migrate command only supports SQLite storage")
	}

	st, err := m.MigrationStatus(context.Background())
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
		if err != nil {
			return fmt.Errorf("failed to back up database before migrating: %w", err)
		}
		ctx.Printf("Backed up database to: %s\n", path)
	}

	count, err := m.Migrate(context.Background())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
