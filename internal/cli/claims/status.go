package claims

import (
	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/tui"
)

// StatusCmd runs one status check and prints the week.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := cli.RequireWallet(settings); err != nil {
		return err
	}
	tr, err := ctx.Tracker(settings)
	if err != nil {
		return err
	}
	defer tr.Stop()

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()
	snap, err := tr.CheckStatus(reqCtx, true)
	if err != nil {
		return err
	}

	ctx.Println(tui.ClockLine(snap))
	ctx.Println(tui.StatusLine(snap))
	ctx.Printf("Streak: %d day(s) this week\n", snap.Streak())
	if snap.TodayCompleted() {
		ctx.Printf("Today's reward: %d HORO\n", snap.EstimatedAmount())
	} else {
		ctx.Printf("Next reward: %d HORO\n", snap.NextReward())
	}
	if !snap.Report.Complete() {
		ctx.Printf("⚠️  Progress decoded %d of %d record(s): %v\n", snap.Report.Decoded, snap.Report.Declared, snap.Report.Stopped)
	}
	ctx.Println()
	ctx.Println(tui.RenderWeek(snap))
	return nil
}
