package claims

import (
	"time"

	"github.com/julianstephens/horo/internal/cli"
)

// ClockCmd prints the ledger clock reading used for day boundaries.
type ClockCmd struct{}

func (c *ClockCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()
	r := ctx.Reconciler(settings).Get(reqCtx)

	ctx.Printf("Time:        %s\n", r.Time().Format("2006-01-02 15:04:05 MST"))
	ctx.Printf("Day:         %s\n", r.DayOfWeek)
	ctx.Printf("Days Since Epoch: %d\n", r.DaysSinceEpoch)
	ctx.Printf("Week:        %d (lock week %s)\n", r.WeekNumber, r.WeekStartDate())
	ctx.Printf("Year:        %d\n", r.Year)
	ctx.Printf("Source:      %s\n", r.Source)
	if r.Err != "" {
		ctx.Printf("⚠️  Ledger clock unavailable: %s\n", r.Err)
	}
	if drift := time.Since(r.Time()); r.Err == "" && (drift > time.Minute || drift < -time.Minute) {
		ctx.Printf("⚠️  Local clock differs from the ledger by %s\n", drift.Round(time.Second))
	}
	return nil
}
