package models

import (
	"fmt"

	"github.com/julianstephens/horo/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingRPCURL:
			settings.RPCURL = value
		case constants.SettingPackageID:
			settings.PackageID = value
		case constants.SettingTreasuryID:
			settings.TreasuryID = value
		case constants.SettingClaimsID:
			settings.ClaimsID = value
		case constants.SettingProgressRegistryID:
			settings.ProgressRegistryID = value
		case constants.SettingWalletAddress:
			settings.WalletAddress = value
		case constants.SettingGasBudget:
			if _, err := fmt.Sscanf(value, "%d", &settings.GasBudget); err != nil {
				return Settings{}, fmt.Errorf("parsing gas_budget: %w", err)
			}
		case constants.SettingPollIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.PollIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing poll_interval_sec: %w", err)
			}
		case constants.SettingRecheckDelaySec:
			if _, err := fmt.Sscanf(value, "%d", &settings.RecheckDelaySec); err != nil {
				return Settings{}, fmt.Errorf("parsing recheck_delay_sec: %w", err)
			}
		case constants.SettingRequestsPerSecond:
			if _, err := fmt.Sscanf(value, "%d", &settings.RequestsPerSecond); err != nil {
				return Settings{}, fmt.Errorf("parsing requests_per_second: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingRPCURL:             settings.RPCURL,
		constants.SettingPackageID:          settings.PackageID,
		constants.SettingTreasuryID:         settings.TreasuryID,
		constants.SettingClaimsID:           settings.ClaimsID,
		constants.SettingProgressRegistryID: settings.ProgressRegistryID,
		constants.SettingWalletAddress:      settings.WalletAddress,
		constants.SettingGasBudget:          fmt.Sprintf("%d", settings.GasBudget),
		constants.SettingPollIntervalSec:    fmt.Sprintf("%d", settings.PollIntervalSec),
		constants.SettingRecheckDelaySec:    fmt.Sprintf("%d", settings.RecheckDelaySec),
		constants.SettingRequestsPerSecond:  fmt.Sprintf("%d", settings.RequestsPerSecond),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.RPCURL == "" {
		settings.RPCURL = constants.DefaultRPCURL
	}
	if settings.GasBudget == 0 {
		settings.GasBudget = constants.DefaultGasBudget
	}
	if settings.PollIntervalSec <= 0 {
		settings.PollIntervalSec = constants.DefaultPollIntervalSec
	}
	if settings.RecheckDelaySec <= 0 {
		settings.RecheckDelaySec = constants.DefaultRecheckDelaySec
	}
	if settings.RequestsPerSecond <= 0 {
		settings.RequestsPerSecond = constants.DefaultRequestsPerSecond
	}
}

// MissingLedgerSettings lists the ledger object settings that still need a value.
func MissingLedgerSettings(settings Settings) []string {
	var missing []string
	if settings.PackageID == "" {
		missing = append(missing, constants.SettingPackageID)
	}
	if settings.TreasuryID == "" {
		missing = append(missing, constants.SettingTreasuryID)
	}
	if settings.ClaimsID == "" {
		missing = append(missing, constants.SettingClaimsID)
	}
	if settings.ProgressRegistryID == "" {
		missing = append(missing, constants.SettingProgressRegistryID)
	}
	return missing
}
