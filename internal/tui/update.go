package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/ledger"
	"github.com/julianstephens/horo/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.tracker.Alive() {
			return m, nil
		}
		return m, tea.Batch(m.checkCmd(false), m.tick())

	case snapshotMsg:
		// Messages can arrive out of order; the tracker always holds the newest.
		m.snap = m.tracker.Snapshot()
		if !m.snap.Verifying {
			m.verifying = false
		}
		if msg.pushed {
			return m, m.listen()
		}
		return m, nil

	case claimMsg:
		m.claiming = false
		m.snap = m.tracker.Snapshot()
		m.message, m.errMsg = describeClaim(msg.outcome, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.state = constants.StateQuitting
		m.tracker.Stop()
		return m, tea.Quit
	}

	if m.state == constants.StateConfirmClaim {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.state = constants.StateDashboard
			m.claiming = true
			m.message, m.errMsg = "", ""
			return m, m.claimCmd()
		case key.Matches(msg, m.keys.Cancel):
			m.state = constants.StateDashboard
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Refresh):
		if !m.verifying {
			m.verifying = true
			return m, m.checkCmd(true)
		}
	case key.Matches(msg, m.keys.Claim):
		switch {
		case m.claiming:
		case m.opts.Selection.Sign == "":
			m.errMsg = "no sign selected, run 'horo sign select' first"
		case m.snap.TodayCompleted():
			m.message = "today's reward is already claimed, come back tomorrow"
		default:
			m.state = constants.StateConfirmClaim
		}
	}
	return m, nil
}

// describeClaim turns a claim result into a status message or an error message.
func describeClaim(out tracker.ClaimOutcome, err error) (string, string) {
	if err == nil {
		if out.Pending {
			return "wallet response was unclear, re-checking the ledger shortly", ""
		}
		return fmt.Sprintf("claimed +%d HORO, streak %d (tx %s)", out.Reward, out.Streak, out.Digest), ""
	}

	var ce *tracker.ClaimError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case ledger.FailureAlreadyClaimed:
			return "already claimed today, come back tomorrow", ""
		case ledger.FailurePeriodLimitExceeded:
			return "", "the reward pool has hit its limit for this period, try again in a few hours"
		case ledger.FailureInsufficientGas:
			return "", "not enough SUI for gas, fund the wallet and try again"
		case ledger.FailureUserRejected:
			return "", "transaction cancelled, nothing was claimed"
		}
	}
	if errors.Is(err, tracker.ErrAlreadyCompleted) {
		return "today's reward is already claimed", ""
	}
	return "", err.Error()
}
