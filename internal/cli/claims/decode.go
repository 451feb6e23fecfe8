package claims

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/codec"
)

// DecodeCmd decodes a weekly-progress buffer given on the command line, or
// fetches the wallet's current one with --live.
type DecodeCmd struct {
	Data   string `arg:"" optional:"" help:"Buffer as hex (0x...) or base64."`
	Base64 bool   `help:"Treat the argument as base64."`
	Live   bool   `help:"Fetch the configured wallet's progress from the ledger."`
}

func (c *DecodeCmd) Run(ctx *cli.Context) error {
	buf, err := c.input(ctx)
	if err != nil {
		return err
	}

	progress, report := codec.Inspect(buf)
	ctx.Printf("Bytes: %d  Declared: %d  Decoded: %d  Consumed: %d\n",
		len(buf), report.Declared, report.Decoded, report.Consumed)
	if report.Stopped != nil {
		ctx.Printf("Stopped: %v\n", report.Stopped)
	}
	for _, day := range progress.Days() {
		rec := progress[day]
		ctx.Printf("  %-9s %d HORO  %s  streak %d  claim day %d  ts %d\n",
			day, rec.DisplayAmount(), rec.Label, rec.StreakAtClaim, rec.ClaimDay, rec.Timestamp)
		if rec.ExceedsSafeRange() {
			ctx.Println("            ⚠️  values exceed safe integer range")
		}
	}
	if len(progress) > 0 {
		ctx.Printf("Streak: %d\n", len(progress))
	}
	return nil
}

func (c *DecodeCmd) input(ctx *cli.Context) ([]byte, error) {
	if c.Live {
		settings, err := ctx.Settings()
		if err != nil {
			return nil, err
		}
		if err := cli.RequireWallet(settings); err != nil {
			return nil, err
		}
		reqCtx, cancel := cli.Timeout(0)
		defer cancel()
		return ctx.Ledger(settings).WeeklyProgressBytes(reqCtx, settings.WalletAddress)
	}

	data := strings.TrimSpace(c.Data)
	if data == "" {
		return nil, errors.New("no buffer given (pass hex or base64, or use --live)")
	}
	if c.Base64 {
		buf, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return buf, nil
	}
	buf, err := hex.DecodeString(strings.TrimPrefix(data, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return buf, nil
}
