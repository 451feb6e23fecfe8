package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/clock"
	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/keyring"
	"github.com/julianstephens/horo/internal/models"
)

// maxClockDrift is how far the local clock may differ from the ledger before
// day boundaries computed by the fallback become unreliable.
const maxClockDrift = 5 * time.Minute

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkipped
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, res checkResult, detail error) {
		switch res {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", detail)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", detail)
			hasError = true
		case checkSkipped:
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", name, detail)
		}
	}

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()

	// Local database
	m, ok := ctx.Store.(migrator)
	dbReachable := false
	if !ok {
		report("Database reachable", checkSkipped, errors.New("store has no schema"))
	} else if err := m.Ping(reqCtx); err != nil {
		report("Database reachable", checkFail, err)
	} else {
		report("Database reachable", checkOK, nil)
		dbReachable = true
	}
	if dbReachable {
		st, err := m.MigrationStatus(reqCtx)
		switch {
		case err != nil:
			report("Schema version", checkFail, err)
		case !st.UpToDate():
			report("Schema version", checkFail, fmt.Errorf("%d migration(s) pending, run 'horo migrate'", len(st.Pending)))
		default:
			report("Schema version", checkOK, nil)
		}
	} else {
		report("Schema version", checkSkipped, errors.New("database not reachable"))
	}

	settings, err := ctx.Settings()
	if err != nil {
		report("Settings", checkFail, err)
		return errors.New("one or more health checks failed")
	}
	configured := true
	if missing := models.MissingLedgerSettings(settings); len(missing) > 0 {
		report("Deployment settings", checkFail, fmt.Errorf("missing %s", strings.Join(missing, ", ")))
		configured = false
	} else {
		report("Deployment settings", checkOK, nil)
	}
	if err := cli.RequireWallet(settings); err != nil {
		report("Wallet address", checkFail, err)
	} else {
		report("Wallet address", checkOK, nil)
	}

	// Keyring is optional; public fullnodes need no token.
	if !keyring.IsAvailable() {
		report("OS keyring", checkWarn, errors.New("keyring unavailable, RPC requests are unauthenticated"))
	} else {
		report("OS keyring", checkOK, nil)
	}

	// Ledger
	reading := ctx.Reconciler(settings).Get(reqCtx)
	if reading.Source != clock.SourceLedger {
		report("Ledger clock", checkFail, fmt.Errorf("falling back to local clock: %s", reading.Err))
	} else {
		report("Ledger clock", checkOK, nil)
		drift := time.Since(reading.Time())
		if drift > maxClockDrift || drift < -maxClockDrift {
			report("Clock drift", checkWarn, fmt.Errorf("local clock is %s off the ledger", drift.Round(time.Second)))
		} else {
			report("Clock drift", checkOK, nil)
		}
	}

	client := ctx.Ledger(settings)
	if configured {
		if err := client.VerifyDeployment(reqCtx); err != nil {
			report("Deployment objects", checkFail, err)
		} else {
			report("Deployment objects", checkOK, nil)
		}
	} else {
		report("Deployment objects", checkSkipped, errors.New("deployment not configured"))
	}

	if settings.WalletAddress != "" {
		bal, err := client.GasBalance(reqCtx, settings.WalletAddress)
		switch {
		case err != nil:
			report("Gas balance", checkFail, err)
		case !bal.Sufficient():
			report("Gas balance", checkWarn, fmt.Errorf("%d MIST is below the %d needed to claim", bal.Total, constants.MinGasBalance))
		default:
			report("Gas balance", checkOK, nil)
		}
	} else {
		report("Gas balance", checkSkipped, errors.New("no wallet address"))
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}
