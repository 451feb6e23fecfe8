// Package tui is the watch dashboard: it polls the tracker on a timer, shows
// the week and lets the user claim today's reward.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/tracker"
)

// Options configures the dashboard.
type Options struct {
	Selection    models.Selection
	PollInterval time.Duration
	Timeout      time.Duration
	// Updates receives snapshots published outside the model's own commands,
	// such as the delayed re-check after an ambiguous claim.
	Updates <-chan *tracker.Snapshot
}

type Model struct {
	tracker   *tracker.Tracker
	opts      Options
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	snap      *tracker.Snapshot
	verifying bool
	claiming  bool
	message   string
	errMsg    string
	width     int
	height    int
}

type (
	tickMsg     time.Time
	snapshotMsg struct {
		// pushed is set for snapshots read from Options.Updates.
		pushed bool
	}
	claimMsg struct {
		outcome tracker.ClaimOutcome
		err     error
	}
)

func NewModel(t *tracker.Tracker, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = constants.DefaultPollIntervalSec * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.DefaultRequestTimeout
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = pendingStyle

	return Model{
		tracker:   t,
		opts:      opts,
		state:     constants.StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		snap:      t.Snapshot(),
		verifying: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkCmd(false),
		m.tick(),
		m.spinner.Tick,
		m.listen(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// checkCmd runs one status cycle off the event loop.
func (m Model) checkCmd(manual bool) tea.Cmd {
	t := m.tracker
	timeout := m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, _ = t.CheckStatus(ctx, !manual)
		return snapshotMsg{}
	}
}

func (m Model) claimCmd() tea.Cmd {
	t := m.tracker
	sign := m.opts.Selection.Sign
	timeout := m.opts.Timeout * 4
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := t.Claim(ctx, sign)
		return claimMsg{outcome: out, err: err}
	}
}

// listen waits for the next out-of-band snapshot.
func (m Model) listen() tea.Cmd {
	ch := m.opts.Updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return snapshotMsg{pushed: true}
	}
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == constants.StateConfirmClaim {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}
