// Package rewards holds the pure reward and streak rules shared by the CLI and
// the dashboard.
package rewards

import (
	"time"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/models"
)

// CalculateDailyReward returns the reward, in display tokens, for a claim made
// with the given streak count.
func CalculateDailyReward(streak uint64) uint64 {
	return constants.BaseReward + (streak/constants.StreakBonusEvery)*constants.StreakBonusUnit
}

// DailyStreak counts the distinct weekdays claimed this week. A missed day does
// not reset it; the contract computes rewards the same way.
func DailyStreak(progress models.WeeklyProgress) int {
	return len(progress)
}

// IsTodayCompleted reports whether today is already claimed according to either
// the live ledger flag or the decoded weekly progress.
func IsTodayCompleted(progress models.WeeklyProgress, today time.Weekday, remoteClaimed bool) bool {
	return remoteClaimed || progress.Has(today)
}

// EstimateTodaysAmount returns the exact amount claimed today if there is a
// record for it, otherwise the projected reward for the next claim. Until some
// progress has been decoded it returns 0 rather than a guess.
func EstimateTodaysAmount(progress models.WeeklyProgress, today time.Weekday) uint64 {
	if rec, ok := progress[today]; ok {
		return rec.DisplayAmount()
	}
	if len(progress) == 0 {
		return 0
	}
	return CalculateDailyReward(uint64(DailyStreak(progress)) + 1)
}

// NextClaimReward is the display-token reward the next claim will request.
func NextClaimReward(progress models.WeeklyProgress) uint64 {
	return CalculateDailyReward(uint64(DailyStreak(progress)) + 1)
}

// ClaimAmountMinor converts the next claim's reward to the minor units the
// contract expects.
func ClaimAmountMinor(progress models.WeeklyProgress) uint64 {
	return NextClaimReward(progress) * constants.MinorUnitsPerToken
}

// SignChangeAllowed reports whether a sign may be chosen given the sign already
// locked for this week. An empty lock allows any sign.
func SignChangeAllowed(locked, requested string) bool {
	return locked == "" || locked == requested
}
