package models

import (
	"sort"
	"time"

	"github.com/julianstephens/horo/internal/constants"
)

// MaxSafeInteger is the largest integer a float64 (and therefore a JSON number in
// most wallets and explorers) represents exactly.
const MaxSafeInteger = 1<<53 - 1

// ClaimRecord is one day's decoded claim. Records are only produced by the codec
// and are never mutated afterwards.
type ClaimRecord struct {
	DayOfWeek     time.Weekday `json:"day_of_week"`
	AmountClaimed uint64       `json:"amount_claimed"` // minor units, 6 implied decimals
	Timestamp     uint64       `json:"timestamp"`      // ms since epoch, ledger clock
	Label         string       `json:"label"`          // zodiac sign claimed under
	ClaimDay      uint64       `json:"claim_day"`      // absolute days since epoch
	StreakAtClaim uint64       `json:"streak_at_claim"`
}

// DisplayAmount returns the claimed amount in whole tokens.
func (r ClaimRecord) DisplayAmount() uint64 {
	return r.AmountClaimed / constants.MinorUnitsPerToken
}

// ExceedsSafeRange reports whether any numeric field is outside the range other
// clients can represent exactly. Such records are fine for display but should not
// be trusted for reward accounting.
func (r ClaimRecord) ExceedsSafeRange() bool {
	return r.AmountClaimed > MaxSafeInteger ||
		r.Timestamp > MaxSafeInteger ||
		r.ClaimDay > MaxSafeInteger ||
		r.StreakAtClaim > MaxSafeInteger
}

// WeeklyProgress maps a weekday to the claim made on it this week.
type WeeklyProgress map[time.Weekday]ClaimRecord

// Has reports whether a claim exists for the given weekday.
func (p WeeklyProgress) Has(day time.Weekday) bool {
	_, ok := p[day]
	return ok
}

// Days returns the claimed weekdays in Sunday-first order.
func (p WeeklyProgress) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(p))
	for d := range p {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// ClaimStatus is the ledger's live answer to "has this address claimed today".
type ClaimStatus string

const (
	ClaimStatusChecking   ClaimStatus = "checking"
	ClaimStatusClaimed    ClaimStatus = "claimed"
	ClaimStatusNotClaimed ClaimStatus = "not_claimed"
)
