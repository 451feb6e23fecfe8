package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/horo/internal/constants"
)

var (
	// ErrNotFound is returned when no token is stored in the keyring
	ErrNotFound = errors.New("API token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIToken retrieves the RPC provider API token from the OS keyring.
// Returns ErrNotFound if no token is stored.
func GetAPIToken() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetAPIToken stores the RPC provider API token in the OS keyring.
func SetAPIToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("API token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, token); err != nil {
		return fmt.Errorf("failed to store API token in keyring: %w", err)
	}
	return nil
}

// DeleteAPIToken removes the RPC provider API token from the OS keyring.
func DeleteAPIToken() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete API token from keyring: %w", err)
	}
	return nil
}

// OptionalAPIToken returns the stored token, or "" when none is stored or the
// keyring cannot be reached. Public fullnodes need no token.
func OptionalAPIToken() string {
	token, err := GetAPIToken()
	if err != nil {
		return ""
	}
	return token
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
