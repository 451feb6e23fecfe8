package models

// Settings represents application-wide settings
type Settings struct {
	RPCURL             string `json:"rpc_url"`              // Sui fullnode JSON-RPC endpoint
	PackageID          string `json:"package_id"`           // published horo package
	TreasuryID         string `json:"treasury_id"`          // shared Treasury object
	ClaimsID           string `json:"claims_id"`            // shared DailyClaims object
	ProgressRegistryID string `json:"progress_registry_id"` // shared UserProgressRegistry object
	WalletAddress      string `json:"wallet_address"`       // address whose claims are tracked
	GasBudget          uint64 `json:"gas_budget"`           // MIST budget for claim transactions
	PollIntervalSec    int    `json:"poll_interval_sec"`    // background status poll interval
	RecheckDelaySec    int    `json:"recheck_delay_sec"`    // delay before re-checking an ambiguous claim
	RequestsPerSecond  int    `json:"requests_per_second"`  // client-side RPC throttle
}

// Selection is the last sign the user picked.
type Selection struct {
	Sign   string       `json:"sign"`
	System ZodiacSystem `json:"system"`
}
