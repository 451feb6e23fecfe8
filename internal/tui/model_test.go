package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/horo/internal/codec"
	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/tracker"
)

// 2025-01-07 12:00 UTC, a Tuesday.
const tuesdayMs = 1736251200000

type stubLedger struct {
	claimed  bool
	progress models.WeeklyProgress
}

func (s *stubLedger) ClockTimestampMs(context.Context) (int64, error) { return tuesdayMs, nil }

func (s *stubLedger) HasClaimedToday(context.Context, string) (bool, error) { return s.claimed, nil }

func (s *stubLedger) WeeklyProgress(context.Context, string) (models.WeeklyProgress, codec.Report, error) {
	return s.progress, codec.Report{Declared: len(s.progress), Decoded: len(s.progress)}, nil
}

type stubSubmitter struct{ err error }

func (s stubSubmitter) SubmitClaim(context.Context, ledger.ClaimRequest) (string, error) {
	return "D1", s.err
}

func newTestModel(t *testing.T, l *stubLedger, sub ledger.Submitter) Model {
	t.Helper()
	tr := tracker.New(l, sub, tracker.Config{Address: "0xfeed"})
	t.Cleanup(tr.Stop)
	return NewModel(tr, Options{
		Selection:    models.Selection{Sign: "leo", System: models.SystemWestern},
		PollInterval: time.Hour,
	})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestRefreshShowsWeek(t *testing.T) {
	l := &stubLedger{progress: models.WeeklyProgress{
		time.Sunday: {DayOfWeek: time.Sunday, AmountClaimed: 10_000_000, Label: "leo", StreakAtClaim: 1},
	}}
	m := newTestModel(t, l, stubSubmitter{})

	m = run(m, m.checkCmd(false))
	if m.verifying {
		t.Error("still verifying after check")
	}
	view := m.View()
	for _, want := range []string{"Tuesday", "+10 HORO", "not claimed yet", "2025-01-05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestClaimFlow(t *testing.T) {
	l := &stubLedger{}
	m := newTestModel(t, l, stubSubmitter{})
	m = run(m, m.checkCmd(false))

	next, _ := m.Update(keyMsg("c"))
	m = next.(Model)
	if m.state != constants.StateConfirmClaim {
		t.Fatalf("state = %v, want confirm", m.state)
	}
	if !strings.Contains(m.View(), "Claim 10 HORO as leo?") {
		t.Errorf("confirm prompt missing:\n%s", m.View())
	}

	next, cmd := m.Update(keyMsg("y"))
	m = next.(Model)
	if !m.claiming || cmd == nil {
		t.Fatal("confirm did not start claim")
	}
	m = run(m, cmd)
	if m.claiming || !strings.Contains(m.message, "claimed +10 HORO") {
		t.Errorf("message = %q, err = %q", m.message, m.errMsg)
	}
}

func TestClaimCancel(t *testing.T) {
	m := newTestModel(t, &stubLedger{}, stubSubmitter{})
	m = run(m, m.checkCmd(false))

	next, _ := m.Update(keyMsg("c"))
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != constants.StateDashboard || cmd != nil {
		t.Errorf("state = %v after cancel", m.state)
	}
}

func TestClaimBlockedWhenCompleted(t *testing.T) {
	m := newTestModel(t, &stubLedger{claimed: true}, stubSubmitter{})
	m = run(m, m.checkCmd(false))

	next, _ := m.Update(keyMsg("c"))
	m = next.(Model)
	if m.state != constants.StateDashboard || !strings.Contains(m.message, "already claimed") {
		t.Errorf("state = %v, message = %q", m.state, m.message)
	}
}

func TestQuitStopsTracker(t *testing.T) {
	m := newTestModel(t, &stubLedger{}, nil)
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd == nil || m.tracker.Alive() || m.View() != "" {
		t.Error("quit did not stop the tracker")
	}
}

func TestDescribeClaim(t *testing.T) {
	tests := []struct {
		name    string
		out     tracker.ClaimOutcome
		err     error
		wantMsg string
		wantErr string
	}{
		{"pending", tracker.ClaimOutcome{Pending: true}, nil, "re-checking", ""},
		{"already", tracker.ClaimOutcome{}, &tracker.ClaimError{Kind: ledger.FailureAlreadyClaimed, Err: errors.New("x")}, "already claimed", ""},
		{"gas", tracker.ClaimOutcome{}, &tracker.ClaimError{Kind: ledger.FailureInsufficientGas, Err: errors.New("x")}, "", "gas"},
		{"other", tracker.ClaimOutcome{}, errors.New("boom"), "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, errMsg := describeClaim(tt.out, tt.err)
			if !strings.Contains(msg, tt.wantMsg) || !strings.Contains(errMsg, tt.wantErr) {
				t.Errorf("describeClaim() = %q, %q", msg, errMsg)
			}
			if tt.wantMsg == "" && msg != "" {
				t.Errorf("unexpected message %q", msg)
			}
		})
	}
}
