package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/keyring"
)

// KeyringSetCmd stores the RPC provider API token in the OS keyring
type KeyringSetCmd struct {
	Token string `arg:"" help:"API token for a private RPC provider."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIToken(cmd.Token); err != nil {
		return err
	}
	ctx.Println("✓ API token stored in OS keyring")
	ctx.Println("  It is sent as a bearer token on every RPC request")
	return nil
}

// KeyringDeleteCmd removes the RPC provider API token from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API token found in keyring")
		}
		return err
	}
	ctx.Println("✓ API token deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	token, err := keyring.GetAPIToken()
	switch {
	case err == nil:
		ctx.Printf("✓ API token is stored (%s)\n", mask(token))
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No API token stored, requests go out unauthenticated")
	default:
		return fmt.Errorf("failed to read API token: %w", err)
	}
	return nil
}

func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
