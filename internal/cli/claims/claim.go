package claims

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/rewards"
	"github.com/julianstephens/horo/internal/storage"
	"github.com/julianstephens/horo/internal/tracker"
)

// ClaimCmd claims today's reward under the selected sign.
type ClaimCmd struct {
	Sign         string `help:"Sign to claim under. Defaults to the selected sign; must match the week's locked sign."`
	SkipGasCheck bool   `help:"Submit without checking the wallet's SUI balance."`
}

func (c *ClaimCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := cli.RequireWallet(settings); err != nil {
		return err
	}

	sel, err := c.selection(ctx)
	if err != nil {
		return err
	}

	tr, err := ctx.Tracker(settings)
	if err != nil {
		return err
	}
	defer tr.Stop()

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()

	client := ctx.Ledger(settings)
	if err := client.VerifyDeployment(reqCtx); err != nil {
		return fmt.Errorf("deployment check failed: %w", err)
	}

	if !c.SkipGasCheck {
		bal, err := client.GasBalance(reqCtx, settings.WalletAddress)
		if err != nil {
			return fmt.Errorf("failed to check gas balance: %w", err)
		}
		if !bal.Sufficient() {
			return fmt.Errorf("insufficient gas: wallet holds %d MIST", bal.Total)
		}
	}

	// Load the week first so the amount reflects the current streak.
	snap, err := tr.CheckStatus(reqCtx, true)
	if err != nil {
		return err
	}

	weekStart := snap.Clock.WeekStartDate()
	locked, err := ctx.Store.GetWeekSign(weekStart)
	if err != nil {
		return fmt.Errorf("failed to read week lock: %w", err)
	}
	if !rewards.SignChangeAllowed(locked.Sign, sel.Sign) {
		return fmt.Errorf("sign %q is locked for the week of %s, cannot claim as %q", locked.Sign, weekStart, sel.Sign)
	}
	if locked.Sign == "" {
		if err := ctx.Store.SetWeekSign(weekStart, sel); err != nil {
			return fmt.Errorf("failed to lock week sign: %w", err)
		}
	}

	out, err := tr.Claim(reqCtx, sel.Sign)
	if err != nil {
		var ce *tracker.ClaimError
		if errors.Is(err, tracker.ErrAlreadyCompleted) || (errors.As(err, &ce) && ce.Kind == ledger.FailureAlreadyClaimed) {
			ctx.Println("Already claimed today.")
			return nil
		}
		return err
	}

	if out.Pending {
		ctx.Printf("Claim of %d HORO submitted, confirmation pending. Run 'horo status' to check.\n", out.Reward)
		return nil
	}
	ctx.Printf("✓ Claimed %d HORO (streak %d)\n", out.Reward, out.Streak)
	ctx.Printf("  Digest: %s\n", out.Digest)
	return nil
}

// selection resolves the sign to claim under: --sign looked up in the saved
// selection's system first, otherwise the saved selection itself.
func (c *ClaimCmd) selection(ctx *cli.Context) (models.Selection, error) {
	saved, err := ctx.Store.GetSelection()
	if err != nil && !errors.Is(err, storage.ErrNoSelection) {
		return models.Selection{}, err
	}

	name := strings.TrimSpace(c.Sign)
	if name == "" {
		if saved.Sign == "" {
			return models.Selection{}, tracker.ErrNoSign
		}
		return saved, nil
	}

	systems := []models.ZodiacSystem{models.SystemWestern, models.SystemChinese}
	if saved.System == models.SystemChinese {
		systems = []models.ZodiacSystem{models.SystemChinese, models.SystemWestern}
	}
	for _, system := range systems {
		if s, ok := models.LookupSign(system, name); ok {
			return models.Selection{Sign: s.Name, System: system}, nil
		}
	}
	return models.Selection{}, fmt.Errorf("unknown sign: %s", name)
}
