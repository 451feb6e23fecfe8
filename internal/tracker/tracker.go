// Package tracker runs the status check cycle and the claim flow against the
// ledger, publishing each result as an immutable Snapshot.
package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/horo/internal/clock"
	"github.com/julianstephens/horo/internal/codec"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/models"
)

// Ledger is the read side of the ledger client.
type Ledger interface {
	clock.Source
	HasClaimedToday(ctx context.Context, addr string) (bool, error)
	WeeklyProgress(ctx context.Context, addr string) (models.WeeklyProgress, codec.Report, error)
}

// ErrStopped is returned for work that finished after Stop.
var ErrStopped = errors.New("tracker stopped")

// Config holds per-user claim parameters.
type Config struct {
	Address      string
	GasBudget    uint64
	RecheckDelay time.Duration
}

// Tracker owns the current Snapshot. All ledger reads in one check cycle run
// sequentially; concurrent cycles are serialized.
type Tracker struct {
	ledger    Ledger
	submitter ledger.Submitter
	clock     *clock.Reconciler
	cfg       Config
	now       func() time.Time

	snap  atomic.Pointer[Snapshot]
	alive atomic.Bool

	cycle    sync.Mutex
	stopOnce sync.Once
	stopped  chan struct{}

	mu       sync.Mutex
	rechecks []*time.Timer
	updates  chan *Snapshot
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow replaces the wall clock used for the fallback reading and timestamps.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithUpdates delivers every published snapshot on ch without blocking;
// snapshots are dropped when ch is full.
func WithUpdates(ch chan *Snapshot) Option {
	return func(t *Tracker) {
		t.updates = ch
	}
}

// New creates a live tracker. submitter may be nil for read-only use.
func New(l Ledger, submitter ledger.Submitter, cfg Config, opts ...Option) *Tracker {
	t := &Tracker{
		ledger:    l,
		submitter: submitter,
		cfg:       cfg,
		now:       time.Now,
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	var src clock.Source
	if l != nil {
		src = l
	}
	t.clock = clock.NewReconciler(src, clock.WithNow(t.now))
	t.snap.Store(emptySnapshot())
	t.alive.Store(true)
	return t
}

// Snapshot returns the most recently published snapshot.
func (t *Tracker) Snapshot() *Snapshot {
	return t.snap.Load()
}

// Alive reports whether Stop has not been called.
func (t *Tracker) Alive() bool {
	return t.alive.Load()
}

func (t *Tracker) publish(s *Snapshot) {
	t.snap.Store(s)
	if t.updates != nil {
		select {
		case t.updates <- s:
		default:
		}
	}
}

// CheckStatus refreshes the clock, then the claim status, then the weekly
// progress, and publishes the result. A non-silent check marks the current
// snapshot as verifying while it runs. Failed reads degrade to "not claimed"
// and an empty week rather than an error.
func (t *Tracker) CheckStatus(ctx context.Context, silent bool) (*Snapshot, error) {
	t.cycle.Lock()
	defer t.cycle.Unlock()

	if !t.Alive() {
		return t.Snapshot(), ErrStopped
	}
	if !silent {
		t.publish(t.Snapshot().with(func(s *Snapshot) { s.Verifying = true }))
	}

	reading := t.clock.Get(ctx)
	status := t.claimStatus(ctx)
	progress, report := t.progress(ctx)

	if !t.Alive() {
		logger.Debug("dropping status check result after stop")
		return t.Snapshot(), ErrStopped
	}

	next := &Snapshot{
		Clock:     reading,
		Status:    status,
		Progress:  progress,
		Report:    report,
		UpdatedAt: t.now(),
	}
	t.publish(next)
	return next, nil
}

func (t *Tracker) claimStatus(ctx context.Context) models.ClaimStatus {
	if t.ledger == nil || t.cfg.Address == "" {
		return models.ClaimStatusNotClaimed
	}
	claimed, err := t.ledger.HasClaimedToday(ctx, t.cfg.Address)
	if err != nil {
		logger.Warn("claim status query failed", "error", err)
		return models.ClaimStatusNotClaimed
	}
	if claimed {
		return models.ClaimStatusClaimed
	}
	return models.ClaimStatusNotClaimed
}

func (t *Tracker) progress(ctx context.Context) (models.WeeklyProgress, codec.Report) {
	if t.ledger == nil || t.cfg.Address == "" {
		return models.WeeklyProgress{}, codec.Report{}
	}
	progress, report, err := t.ledger.WeeklyProgress(ctx, t.cfg.Address)
	if err != nil {
		logger.Warn("weekly progress query failed", "error", err)
		return models.WeeklyProgress{}, codec.Report{}
	}
	return progress, report
}

// Poll runs silent status checks every interval until ctx is done or Stop is
// called. The first check runs immediately.
func (t *Tracker) Poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := t.CheckStatus(ctx, true); errors.Is(err, ErrStopped) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.stopped:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop marks the tracker dead. In-flight results are discarded and pending
// re-checks are cancelled. Stop is idempotent.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		t.alive.Store(false)
		close(t.stopped)

		t.mu.Lock()
		for _, tm := range t.rechecks {
			tm.Stop()
		}
		t.rechecks = nil
		t.mu.Unlock()
	})
}

func (t *Tracker) scheduleRecheck(delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Alive() {
		return
	}
	t.rechecks = append(t.rechecks, time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := t.CheckStatus(ctx, true); err != nil && !errors.Is(err, ErrStopped) {
			logger.Warn("re-check after ambiguous claim failed", "error", err)
		}
	}))
}
