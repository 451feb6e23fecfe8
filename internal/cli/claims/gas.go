package claims

import (
	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/constants"
)

// GasCmd reports whether the wallet can pay for a claim.
type GasCmd struct{}

func (c *GasCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := cli.RequireWallet(settings); err != nil {
		return err
	}

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()
	bal, err := ctx.Ledger(settings).GasBalance(reqCtx, settings.WalletAddress)
	if err != nil {
		return err
	}

	ctx.Printf("Balance: %d MIST across %d coin(s)\n", bal.Total, bal.Coins)
	if bal.Sufficient() {
		ctx.Println("✓ Enough gas to claim")
	} else {
		ctx.Printf("❌ Below the %d MIST needed to claim\n", constants.MinGasBalance)
	}
	return nil
}
