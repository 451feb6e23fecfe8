package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/horo/internal/backup"
	"github.com/julianstephens/horo/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			path, err := backup.NewManager(dbPath).Create()
			if err != nil {
				return fmt.Errorf("failed to back up existing database: %w", err)
			}
			ctx.Printf("Backed up existing database to: %s\n", path)
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized horo storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Println("Next: set the deployment with 'horo settings --package-id ... --treasury-id ... --claims-id ... --progress-registry-id ... --wallet-address ...'")
	return nil
}
