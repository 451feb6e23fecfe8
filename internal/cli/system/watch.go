package system

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/storage"
	"github.com/julianstephens/horo/internal/tracker"
	"github.com/julianstephens/horo/internal/tui"
)

type WatchCmd struct {
	Plain bool `help:"Print a line per poll instead of the interactive dashboard."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := cli.RequireWallet(settings); err != nil {
		return err
	}
	sel, err := ctx.Store.GetSelection()
	if err != nil && !errors.Is(err, storage.ErrNoSelection) {
		return err
	}

	interval := time.Duration(settings.PollIntervalSec) * time.Second
	updates := make(chan *tracker.Snapshot, 16)
	tr, err := ctx.Tracker(settings, tracker.WithUpdates(updates))
	if err != nil {
		return err
	}
	defer tr.Stop()

	if c.Plain {
		return c.runPlain(ctx, tr, updates, interval)
	}

	p := tea.NewProgram(tui.NewModel(tr, tui.Options{
		Selection:    sel,
		PollInterval: interval,
		Updates:      updates,
	}), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (c *WatchCmd) runPlain(ctx *cli.Context, tr *tracker.Tracker, updates <-chan *tracker.Snapshot, interval time.Duration) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			select {
			case <-sigCtx.Done():
				return
			case snap := <-updates:
				if snap.Verifying {
					continue
				}
				ctx.Printf("%s  %s  streak %d\n", snap.UpdatedAt.Format(time.TimeOnly), tui.StatusLine(snap), snap.Streak())
			}
		}
	}()

	logger.Info("polling claim status", "interval", interval)
	if err := tr.Poll(sigCtx, interval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
