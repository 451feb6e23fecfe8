package claims

import (
	"fmt"
	"strings"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/models"
)

// VerifyCmd checks that the configured object ids point at a horo deployment.
type VerifyCmd struct{}

func (c *VerifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if missing := models.MissingLedgerSettings(settings); len(missing) > 0 {
		return fmt.Errorf("missing settings: %s", strings.Join(missing, ", "))
	}

	reqCtx, cancel := cli.Timeout(0)
	defer cancel()
	if err := ctx.Ledger(settings).VerifyDeployment(reqCtx); err != nil {
		return err
	}
	ctx.Println("✓ Deployment objects verified")
	return nil
}
