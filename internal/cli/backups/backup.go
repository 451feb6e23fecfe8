package backups

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/horo/internal/backup"
	"github.com/julianstephens/horo/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	list, err := mgr.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Printf("No backups in %s\n", mgr.Dir())
		return nil
	}
	ctx.Printf("Backups in %s:\n", mgr.Dir())
	for _, b := range list {
		ctx.Printf("  %s  %s  %d bytes\n", b.Timestamp.Local().Format(time.DateTime), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Backup file name or path."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path := c.File
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(mgr.Dir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if err := mgr.Restore(path); err != nil {
		return err
	}
	ctx.Printf("✓ Restored database from %s\n", filepath.Base(path))
	return nil
}
