package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "horo"
	DefaultKeyringUser = "rpc-api-token"
	DefaultConfigPath  = "~/.config/horo/horo.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment overrides
	EnvRPCURL        = "HORO_RPC_URL"
	EnvWalletAddress = "HORO_WALLET_ADDRESS"

	// Ledger objects and entry points
	ClockObjectID         = "0x6"
	ClockInitialVersion   = 1
	ClockTimestampField   = "timestamp_ms"
	MoveModule            = "horo"
	FnHasClaimedToday     = "has_claimed_today"
	FnGetWeeklyProgress   = "get_weekly_progress"
	FnClaimDailyReward    = "claim_daily_reward"
	GasCoinType           = "0x2::sui::SUI"
	MinGasBalance         = 50_000_000
	DefaultRequestTimeout = 15 * time.Second

	// Token amounts are stored with 6 implied decimal places
	MinorUnitsPerToken = 1_000_000

	// Reward schedule, in display tokens
	BaseReward       = 10
	StreakBonusUnit  = 5
	StreakBonusEvery = 3

	// Substituted for labels whose bytes are not valid UTF-8
	UnknownLabel = "unknown"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateConfirmClaim
	StateQuitting
)
