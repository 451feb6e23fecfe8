package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/tracker"
)

// RenderWeek draws the Sunday-first week of a snapshot, one row per day.
func RenderWeek(snap *tracker.Snapshot) string {
	var rows []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		rows = append(rows, renderDay(snap, d))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDay(snap *tracker.Snapshot, day time.Weekday) string {
	label := fmt.Sprintf("%-9s", day)
	if snap.Clock.IsLoaded {
		label += " " + snap.Clock.DateStringFor(day)
	}
	if snap.Clock.IsLoaded && day == snap.Today() {
		label = todayStyle.Render("▸ " + label)
	} else {
		label = "  " + label
	}

	mark := subtleStyle.Render("·")
	if rec, ok := snap.Progress[day]; ok {
		mark = claimedStyle.Render(fmt.Sprintf("✓ +%d HORO", rec.DisplayAmount())) + subtleStyle.Render(" "+recordDetail(rec))
	}
	return label + "  " + mark
}

func recordDetail(rec models.ClaimRecord) string {
	detail := fmt.Sprintf("%s, streak %d", rec.Label, rec.StreakAtClaim)
	if rec.ExceedsSafeRange() {
		detail += " " + warningStyle.Render("(values exceed safe range)")
	}
	return detail
}

// StatusLine summarizes claim status for today.
func StatusLine(snap *tracker.Snapshot) string {
	switch {
	case snap.Status == models.ClaimStatusChecking && len(snap.Progress) == 0:
		return pendingStyle.Render("checking claim status…")
	case snap.TodayCompleted():
		return claimedStyle.Render(fmt.Sprintf("claimed today: +%d HORO", snap.EstimatedAmount()))
	default:
		return fmt.Sprintf("not claimed yet, next reward %d HORO", snap.NextReward())
	}
}

// ClockLine describes the reading and where it came from.
func ClockLine(r *tracker.Snapshot) string {
	if !r.Clock.IsLoaded {
		return subtleStyle.Render("clock not loaded")
	}
	line := fmt.Sprintf("%s  %s  week %d  year %d  (%s clock)",
		r.Clock.Time().Format("2006-01-02 15:04:05 MST"), r.Today(), r.Clock.WeekNumber, r.Clock.Year, r.Clock.Source)
	if r.Clock.Err != "" {
		line += " " + warningStyle.Render(r.Clock.Err)
	}
	return line
}
