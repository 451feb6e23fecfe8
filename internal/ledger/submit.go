package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/logger"
)

// ClaimRequest is one claim_daily_reward call.
type ClaimRequest struct {
	Sender      string
	AmountMinor uint64
	Sign        string
	GasBudget   uint64
}

// Submitter signs and executes claim transactions. The wallet holding the
// keys lives outside this process.
type Submitter interface {
	SubmitClaim(ctx context.Context, req ClaimRequest) (digest string, err error)
}

// RunFunc executes a command and returns its combined stdout, with stderr
// folded into the error.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// SuiCLISubmitter submits claims through the `sui client call` command, which
// signs with the active address of the local sui keystore.
type SuiCLISubmitter struct {
	Binary             string
	PackageID          string
	TreasuryID         string
	ClaimsID           string
	ProgressRegistryID string
	Run                RunFunc
}

// NewSuiCLISubmitter creates a submitter for the given deployment.
func NewSuiCLISubmitter(packageID, treasuryID, claimsID, registryID string) *SuiCLISubmitter {
	return &SuiCLISubmitter{
		Binary:             "sui",
		PackageID:          packageID,
		TreasuryID:         treasuryID,
		ClaimsID:           claimsID,
		ProgressRegistryID: registryID,
		Run:                runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

type cliResult struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
	} `json:"effects"`
}

// ErrNoDigest is returned when the wallet reports success without a digest.
var ErrNoDigest = errors.New("transaction response has no digest")

// Args returns the command-line arguments for a claim.
func (s *SuiCLISubmitter) Args(req ClaimRequest) []string {
	// vector<u8> is passed as a JSON array of byte values.
	signBytes, _ := json.Marshal(bytesAsNumbers([]byte(req.Sign)))
	args := []string{
		"client", "call",
		"--package", s.PackageID,
		"--module", constants.MoveModule,
		"--function", constants.FnClaimDailyReward,
		"--args",
		s.TreasuryID,
		s.ClaimsID,
		s.ProgressRegistryID,
		constants.ClockObjectID,
		strconv.FormatUint(req.AmountMinor, 10),
		string(signBytes),
		"--gas-budget", strconv.FormatUint(req.GasBudget, 10),
		"--json",
	}
	return args
}

// SubmitClaim runs the claim and returns its digest. A transaction that
// executes but aborts is reported as an error carrying the abort message.
func (s *SuiCLISubmitter) SubmitClaim(ctx context.Context, req ClaimRequest) (string, error) {
	run := s.Run
	if run == nil {
		run = runCommand
	}
	logger.Info("submitting claim", "amount", req.AmountMinor, "sign", req.Sign)

	out, err := run(ctx, s.Binary, s.Args(req)...)
	if err != nil {
		return "", err
	}

	var res cliResult
	if err := json.Unmarshal(out, &res); err != nil {
		return "", fmt.Errorf("decoding sui client output: %w", err)
	}
	if res.Effects != nil && res.Effects.Status.Status == "failure" {
		return res.Digest, fmt.Errorf("transaction %s failed: %s", res.Digest, res.Effects.Status.Error)
	}
	if res.Digest == "" {
		return "", ErrNoDigest
	}
	return res.Digest, nil
}

func bytesAsNumbers(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
