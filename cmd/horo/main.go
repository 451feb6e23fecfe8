package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/cli/backups"
	"github.com/julianstephens/horo/internal/cli/claims"
	"github.com/julianstephens/horo/internal/cli/settings"
	"github.com/julianstephens/horo/internal/cli/signs"
	"github.com/julianstephens/horo/internal/cli/system"
	"github.com/julianstephens/horo/internal/errors"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/horo/horo.db"`
	Debug   bool   `help:"Log debug output to stderr."`
	RPCURL  string `name:"rpc-url" help:"Override the configured RPC endpoint."`
	Wallet  string `help:"Override the configured wallet address."`

	Init     system.InitCmd       `cmd:"" help:"Initialize horo storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Watch    system.WatchCmd      `cmd:"" help:"Watch claim status and claim from the dashboard." default:"1"`
	Status   claims.StatusCmd     `cmd:"" help:"Show today's claim status and the week."`
	Claim    claims.ClaimCmd      `cmd:"" help:"Claim today's reward."`
	Clock    claims.ClockCmd      `cmd:"" help:"Show the ledger clock reading."`
	Gas      claims.GasCmd        `cmd:"" help:"Check the wallet's gas balance."`
	Decode   claims.DecodeCmd     `cmd:"" help:"Decode a weekly progress buffer."`
	Verify   claims.VerifyCmd     `cmd:"" help:"Verify the configured deployment objects."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Sign     struct {
		Select signs.SignSelectCmd `cmd:"" help:"Select this week's zodiac sign." default:"withargs"`
		Show   signs.SignShowCmd   `cmd:"" help:"Show the selected sign and week lock."`
	} `cmd:"" help:"Manage the zodiac sign."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store an RPC provider API token."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored API token."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the RPC API token in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("horo"),
		kong.Description("Daily zodiac reward tracker for the horo contract on Sui"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		errors.Fatal(err)
	}
	defer logger.Close()

	store := sqlite.NewStore(CLI.Config)
	defer store.Close()

	// Init creates the database itself and the keyring commands never touch it.
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:         store,
		RPCURL:        CLI.RPCURL,
		WalletAddress: CLI.Wallet,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
