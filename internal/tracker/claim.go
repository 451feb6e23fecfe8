package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/rewards"
)

var (
	// ErrAlreadyCompleted is returned when today's claim is already recorded.
	ErrAlreadyCompleted = errors.New("today's reward has already been claimed")
	// ErrNoSign is returned when a claim is attempted without a sign.
	ErrNoSign = errors.New("select a zodiac sign before claiming")
	// ErrNoWallet is returned when no submitter or address is configured.
	ErrNoWallet = errors.New("wallet not configured")
)

// ClaimOutcome describes a claim that did not fail outright.
type ClaimOutcome struct {
	Digest      string
	Reward      uint64 // display tokens
	AmountMinor uint64
	Streak      int // streak including this claim
	// Pending is set when the wallet's answer was ambiguous; a silent
	// re-check has been scheduled and the snapshot will settle on its own.
	Pending bool
}

// ClaimError is a classified claim failure.
type ClaimError struct {
	Kind ledger.FailureKind
	Err  error
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("claim failed (%s): %v", e.Kind, e.Err)
}

func (e *ClaimError) Unwrap() error {
	return e.Err
}

// Claim submits today's claim under sign. The clock is refreshed first and the
// amount is recomputed from the current week's progress.
func (t *Tracker) Claim(ctx context.Context, sign string) (ClaimOutcome, error) {
	sign = strings.TrimSpace(sign)
	if sign == "" {
		return ClaimOutcome{}, ErrNoSign
	}
	if t.submitter == nil || t.cfg.Address == "" {
		return ClaimOutcome{}, ErrNoWallet
	}
	if !t.Alive() {
		return ClaimOutcome{}, ErrStopped
	}

	reading := t.clock.Get(ctx)
	current := t.Snapshot()
	if rewards.IsTodayCompleted(current.Progress, reading.DayOfWeek, current.Status == models.ClaimStatusClaimed) {
		return ClaimOutcome{}, ErrAlreadyCompleted
	}

	outcome := ClaimOutcome{
		Reward:      rewards.NextClaimReward(current.Progress),
		AmountMinor: rewards.ClaimAmountMinor(current.Progress),
		Streak:      current.Streak() + 1,
	}
	logger.Info("claiming daily reward", "sign", sign, "reward", outcome.Reward, "day", reading.DayOfWeek, "source", reading.Source)

	digest, err := t.submitter.SubmitClaim(ctx, ledger.ClaimRequest{
		Sender:      t.cfg.Address,
		AmountMinor: outcome.AmountMinor,
		Sign:        sign,
		GasBudget:   t.cfg.GasBudget,
	})
	if err == nil {
		outcome.Digest = digest
		t.markClaimed()
		if _, err := t.CheckStatus(ctx, true); err != nil && !errors.Is(err, ErrStopped) {
			logger.Warn("refresh after claim failed", "error", err)
		}
		return outcome, nil
	}

	kind := ledger.ClassifyClaimError(err)
	logger.Warn("claim submission failed", "kind", kind, "error", err)
	switch kind {
	case ledger.FailureAmbiguous:
		delay := t.cfg.RecheckDelay
		if delay <= 0 {
			delay = constants.DefaultRecheckDelaySec * time.Second
		}
		t.scheduleRecheck(delay)
		outcome.Pending = true
		return outcome, nil
	case ledger.FailureAlreadyClaimed:
		t.markClaimed()
	}
	return ClaimOutcome{}, &ClaimError{Kind: kind, Err: err}
}

func (t *Tracker) markClaimed() {
	if !t.Alive() {
		return
	}
	t.publish(t.Snapshot().with(func(s *Snapshot) {
		s.Status = models.ClaimStatusClaimed
		s.UpdatedAt = t.now()
	}))
}
