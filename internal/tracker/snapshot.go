package tracker

import (
	"time"

	"github.com/julianstephens/horo/internal/clock"
	"github.com/julianstephens/horo/internal/codec"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/rewards"
)

// Snapshot is one consistent view of the clock, claim status and weekly
// progress. Snapshots are immutable once published.
type Snapshot struct {
	Clock     clock.Reading
	Status    models.ClaimStatus
	Progress  models.WeeklyProgress
	Report    codec.Report
	Verifying bool
	UpdatedAt time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Status:   models.ClaimStatusChecking,
		Progress: models.WeeklyProgress{},
	}
}

// Today is the ledger weekday of the snapshot.
func (s *Snapshot) Today() time.Weekday {
	return s.Clock.DayOfWeek
}

// Streak is the number of days claimed this week.
func (s *Snapshot) Streak() int {
	return rewards.DailyStreak(s.Progress)
}

// TodayCompleted reports whether today's claim is done per either signal.
func (s *Snapshot) TodayCompleted() bool {
	return rewards.IsTodayCompleted(s.Progress, s.Today(), s.Status == models.ClaimStatusClaimed)
}

// EstimatedAmount is today's claimed or projected reward in display tokens.
func (s *Snapshot) EstimatedAmount() uint64 {
	return rewards.EstimateTodaysAmount(s.Progress, s.Today())
}

// NextReward is the reward the next claim will request.
func (s *Snapshot) NextReward() uint64 {
	return rewards.NextClaimReward(s.Progress)
}

func (s *Snapshot) with(fn func(*Snapshot)) *Snapshot {
	next := *s
	fn(&next)
	return &next
}
