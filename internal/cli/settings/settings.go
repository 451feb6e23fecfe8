package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	RPCURL             *string `name:"rpc-url" help:"Sui fullnode JSON-RPC endpoint."`
	PackageID          *string `help:"Published horo package id."`
	TreasuryID         *string `help:"Shared Treasury object id."`
	ClaimsID           *string `help:"Shared DailyClaims object id."`
	ProgressRegistryID *string `help:"Shared UserProgressRegistry object id."`
	WalletAddress      *string `help:"Wallet address whose claims are tracked."`
	GasBudget          *uint64 `help:"Gas budget in MIST for claim transactions."`
	PollIntervalSec    *int    `help:"Seconds between background status checks."`
	RecheckDelaySec    *int    `help:"Seconds to wait before re-checking an ambiguous claim."`
	RequestsPerSecond  *int    `help:"Maximum RPC requests per second."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		models.ApplyDefaultSettings(&settings)
		ctx.Println("Current Settings:")
		ctx.Printf("  RPC URL:               %s\n", settings.RPCURL)
		ctx.Printf("  Wallet Address:        %s\n", orUnset(settings.WalletAddress))
		ctx.Printf("  Gas Budget:            %d MIST\n", settings.GasBudget)
		ctx.Println("\nDeployment:")
		ctx.Printf("  Package ID:            %s\n", orUnset(settings.PackageID))
		ctx.Printf("  Treasury ID:           %s\n", orUnset(settings.TreasuryID))
		ctx.Printf("  Claims ID:             %s\n", orUnset(settings.ClaimsID))
		ctx.Printf("  Progress Registry ID:  %s\n", orUnset(settings.ProgressRegistryID))
		ctx.Println("\nPolling:")
		ctx.Printf("  Poll Interval:         %d s\n", settings.PollIntervalSec)
		ctx.Printf("  Recheck Delay:         %d s\n", settings.RecheckDelaySec)
		ctx.Printf("  Requests Per Second:   %d\n", settings.RequestsPerSecond)
		return nil
	}

	updated := false
	setID := func(dst *string, v *string, name string) error {
		if v == nil {
			return nil
		}
		addr, err := ledger.ParseAddress(*v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = addr.String()
		updated = true
		return nil
	}
	setPositive := func(dst *int, v *int, name string) error {
		if v == nil {
			return nil
		}
		if *v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
		*dst = *v
		updated = true
		return nil
	}

	if err := errors.Join(
		setID(&settings.PackageID, c.PackageID, "package id"),
		setID(&settings.TreasuryID, c.TreasuryID, "treasury id"),
		setID(&settings.ClaimsID, c.ClaimsID, "claims id"),
		setID(&settings.ProgressRegistryID, c.ProgressRegistryID, "progress registry id"),
		setID(&settings.WalletAddress, c.WalletAddress, "wallet address"),
		setPositive(&settings.PollIntervalSec, c.PollIntervalSec, "poll interval"),
		setPositive(&settings.RecheckDelaySec, c.RecheckDelaySec, "recheck delay"),
		setPositive(&settings.RequestsPerSecond, c.RequestsPerSecond, "requests per second"),
	); err != nil {
		return err
	}
	if c.RPCURL != nil {
		if strings.TrimSpace(*c.RPCURL) == "" {
			return errors.New("rpc url must not be empty")
		}
		settings.RPCURL = strings.TrimSpace(*c.RPCURL)
		updated = true
	}
	if c.GasBudget != nil {
		if *c.GasBudget == 0 {
			return errors.New("gas budget must be positive")
		}
		settings.GasBudget = *c.GasBudget
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
