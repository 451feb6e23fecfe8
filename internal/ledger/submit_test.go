package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestSubmitter(out string, runErr error, seen *[]string) *SuiCLISubmitter {
	s := NewSuiCLISubmitter(testPackage, testTreasury, testClaims, testRegistry)
	s.Run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		*seen = append([]string{name}, args...)
		return []byte(out), runErr
	}
	return s
}

func TestSubmitClaimSuccess(t *testing.T) {
	var seen []string
	s := newTestSubmitter(`{"digest":"AbC123","effects":{"status":{"status":"success"}}}`, nil, &seen)

	digest, err := s.SubmitClaim(context.Background(), ClaimRequest{AmountMinor: 15_000_000, Sign: "leo", GasBudget: 10_000_000})
	if err != nil {
		t.Fatalf("SubmitClaim() error = %v", err)
	}
	if digest != "AbC123" {
		t.Errorf("digest = %q", digest)
	}

	cmd := strings.Join(seen, " ")
	for _, want := range []string{
		"sui client call",
		"--function claim_daily_reward",
		"--args 0x33 0x11 0x22 0x6 15000000 [108,101,111]",
		"--gas-budget 10000000",
		"--json",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
}

func TestSubmitClaimAbort(t *testing.T) {
	var seen []string
	s := newTestSubmitter(`{"digest":"X","effects":{"status":{"status":"failure","error":"MoveAbort(_, 1) in command 0"}}}`, nil, &seen)

	_, err := s.SubmitClaim(context.Background(), ClaimRequest{})
	if err == nil {
		t.Fatal("expected abort error")
	}
	if got := ClassifyClaimError(err); got != FailureAlreadyClaimed {
		t.Errorf("classified as %v, want already claimed", got)
	}
}

func TestSubmitClaimErrors(t *testing.T) {
	var seen []string
	runErr := errors.New("sui: exit status 1: Insufficient gas")
	s := newTestSubmitter("", runErr, &seen)
	if _, err := s.SubmitClaim(context.Background(), ClaimRequest{}); !errors.Is(err, runErr) {
		t.Errorf("error = %v, want run error", err)
	}

	s = newTestSubmitter(`{}`, nil, &seen)
	if _, err := s.SubmitClaim(context.Background(), ClaimRequest{}); !errors.Is(err, ErrNoDigest) {
		t.Errorf("error = %v, want ErrNoDigest", err)
	}

	s = newTestSubmitter(`not json`, nil, &seen)
	if _, err := s.SubmitClaim(context.Background(), ClaimRequest{}); err == nil {
		t.Error("expected decode error")
	}
}
