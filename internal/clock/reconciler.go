package clock

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/horo/internal/logger"
)

// ErrNoSource is reported when no ledger client is configured.
var ErrNoSource = errors.New("ledger client not available")

// Source reads the ledger's shared clock.
type Source interface {
	ClockTimestampMs(ctx context.Context) (int64, error)
}

// Reconciler produces readings from a Source, or from the wall clock when the
// source fails. Get never returns an error.
type Reconciler struct {
	source Source
	now    func() time.Time
	group  singleflight.Group
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithNow replaces the wall clock used by the fallback path.
func WithNow(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler creates a reconciler. A nil source always uses the fallback.
func NewReconciler(source Source, opts ...Option) *Reconciler {
	r := &Reconciler{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the current reading. Concurrent callers share one ledger read.
func (r *Reconciler) Get(ctx context.Context) Reading {
	v, _, _ := r.group.Do("clock", func() (interface{}, error) {
		return r.read(ctx), nil
	})
	return v.(Reading)
}

func (r *Reconciler) read(ctx context.Context) Reading {
	if r.source == nil {
		return r.fallback(ErrNoSource)
	}

	ms, err := r.source.ClockTimestampMs(ctx)
	if err != nil {
		return r.fallback(err)
	}

	reading := FromMillis(ms)
	reading.Source = SourceLedger
	logger.Debug("ledger clock read", "timestamp_ms", ms, "day", reading.DayOfWeek, "week", reading.WeekNumber)
	return reading
}

// Fallback derives a reading from the wall clock alone.
func (r *Reconciler) Fallback() Reading {
	reading := FromMillis(r.now().UTC().UnixMilli())
	reading.Source = SourceLocal
	return reading
}

func (r *Reconciler) fallback(cause error) Reading {
	logger.Warn("ledger clock unavailable, using local clock", "error", cause)
	reading := r.Fallback()
	reading.Err = cause.Error()
	return reading
}
