package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/horo/internal/constants"
)

func (m Model) View() string {
	if m.state == constants.StateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("horo"))
	if sel := m.opts.Selection; sel.Sign != "" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  %s (%s)", sel.Sign, sel.System)))
	}
	b.WriteString("\n")
	b.WriteString(ClockLine(m.snap))
	b.WriteString("\n\n")

	status := StatusLine(m.snap)
	if m.verifying || m.claiming {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(status)
	b.WriteString(subtleStyle.Render(fmt.Sprintf("   streak %d", m.snap.Streak())))
	b.WriteString("\n\n")
	b.WriteString(RenderWeek(m.snap))
	b.WriteString("\n")

	if !m.snap.Report.Complete() {
		b.WriteString("\n" + warningStyle.Render(fmt.Sprintf("showing %d of %d records, the rest could not be decoded", m.snap.Report.Decoded, m.snap.Report.Declared)))
	}
	if m.state == constants.StateConfirmClaim {
		b.WriteString("\n" + dangerStyle.Render(fmt.Sprintf("Claim %d HORO as %s? [y/n]", m.snap.NextReward(), m.opts.Selection.Sign)))
	}
	if m.message != "" {
		b.WriteString("\n" + claimedStyle.Render(m.message))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + dangerStyle.Render(m.errMsg))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, b.String(), "", m.help.View(m)))
}
