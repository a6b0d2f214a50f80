package components

import (
	"fmt"

	"github.com/theirongolddev/fcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct maps a 0-1 risk level to a status color.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return t.Loss
	case pct >= 0.7:
		return t.Warning
	case pct >= 0.5:
		return t.Caution
	default:
		return t.Profit
	}
}

// TrialProgress renders a labeled bar for a running Monte Carlo batch.
func TrialProgress(label string, current, total, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		countStyle.Render(fmt.Sprintf("%d/%d", current, total)) +
		labelStyle.Render(fmt.Sprintf(" (%3.0f%%)", pct*100))
}

// RiskBar renders a risk percentage (0-100) as a colored bar.
func RiskBar(riskPct float64, barWidth int) string {
	t := theme.Active
	pct := riskPct / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	color := ColorForPct(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	return bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.1f%%", riskPct))
}
