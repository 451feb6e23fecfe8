package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/horo/internal/clock"
	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/keyring"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/storage"
	"github.com/julianstephens/horo/internal/tracker"
)

type Context struct {
	Store storage.Provider
	Out   io.Writer

	// Flag overrides, applied on top of stored settings and the environment.
	RPCURL        string
	WalletAddress string

	// Test hooks. Nil means the real implementation.
	HTTPClient *http.Client
	Submitter  ledger.Submitter
	Now        func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes to the command's output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Settings returns the stored settings with defaults, then environment and
// flag overrides applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if v := strings.TrimSpace(os.Getenv(constants.EnvRPCURL)); v != "" {
		settings.RPCURL = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvWalletAddress)); v != "" {
		settings.WalletAddress = v
	}
	if c.RPCURL != "" {
		settings.RPCURL = c.RPCURL
	}
	if c.WalletAddress != "" {
		settings.WalletAddress = c.WalletAddress
	}
	return settings, nil
}

// Ledger builds a JSON-RPC client for the configured deployment.
func (c *Context) Ledger(settings models.Settings) *ledger.Client {
	return ledger.NewClient(ledger.Config{
		URL:                settings.RPCURL,
		Token:              keyring.OptionalAPIToken(),
		PackageID:          settings.PackageID,
		ClaimsID:           settings.ClaimsID,
		ProgressRegistryID: settings.ProgressRegistryID,
		TreasuryID:         settings.TreasuryID,
		RequestsPerSecond:  settings.RequestsPerSecond,
		HTTPClient:         c.HTTPClient,
	})
}

// Reconciler builds a clock reconciler reading the ledger clock.
func (c *Context) Reconciler(settings models.Settings) *clock.Reconciler {
	return clock.NewReconciler(c.Ledger(settings), clock.WithNow(c.now))
}

// Tracker builds a tracker for the configured wallet. The ledger object ids
// must be set.
func (c *Context) Tracker(settings models.Settings, opts ...tracker.Option) (*tracker.Tracker, error) {
	if missing := models.MissingLedgerSettings(settings); len(missing) > 0 {
		return nil, fmt.Errorf("missing settings: %s (set them with 'horo settings')", strings.Join(missing, ", "))
	}

	sub := c.Submitter
	if sub == nil {
		sub = ledger.NewSuiCLISubmitter(settings.PackageID, settings.TreasuryID, settings.ClaimsID, settings.ProgressRegistryID)
	}

	opts = append([]tracker.Option{tracker.WithNow(c.now)}, opts...)
	return tracker.New(c.Ledger(settings), sub, tracker.Config{
		Address:      settings.WalletAddress,
		GasBudget:    settings.GasBudget,
		RecheckDelay: time.Duration(settings.RecheckDelaySec) * time.Second,
	}, opts...), nil
}

// Timeout returns a context bounded by the default request timeout.
func Timeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = constants.DefaultRequestTimeout
	}
	return context.WithTimeout(context.Background(), d)
}

// RequireWallet fails when no wallet address is configured.
func RequireWallet(settings models.Settings) error {
	if settings.WalletAddress == "" {
		return fmt.Errorf("no wallet address configured (use 'horo settings --wallet-address' or %s)", constants.EnvWalletAddress)
	}
	return nil
}
