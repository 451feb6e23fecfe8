package constants

const (
	// Ledger Settings
	SettingRPCURL             = "rpc_url"
	SettingPackageID          = "package_id"
	SettingTreasuryID         = "treasury_id"
	SettingClaimsID           = "claims_id"
	SettingProgressRegistryID = "progress_registry_id"
	SettingWalletAddress      = "wallet_address"
	SettingGasBudget          = "gas_budget"

	// Polling Settings
	SettingPollIntervalSec   = "poll_interval_sec"
	SettingRecheckDelaySec   = "recheck_delay_sec"
	SettingRequestsPerSecond = "requests_per_second"

	// Default Settings Values
	DefaultRPCURL            = "https://fullnode.testnet.sui.io:443"
	DefaultGasBudget         = 10_000_000
	DefaultPollIntervalSec   = 5
	DefaultRecheckDelaySec   = 3
	DefaultRequestsPerSecond = 5
)
