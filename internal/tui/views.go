package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fcast/internal/cli"
	"github.com/theirongolddev/fcast/internal/model"
	"github.com/theirongolddev/fcast/internal/tui/components"
	"github.com/theirongolddev/fcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  fcast needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, a.height), a.height)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	contentH := a.contentHeight()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusState())

	var content string
	switch a.activeTab {
	case components.TabForecast:
		content = a.renderForecastTab(cw, contentH)
	case components.TabTable:
		content = a.renderTableTab()
	case components.TabMonteCarlo:
		content = a.renderMonteCarloTab(cw, contentH)
	case components.TabParameters:
		content = a.renderParametersTab()
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case components.TabTable:
		return "[j/k]scroll  [r]erun  [m]onte carlo  [?]help  [q]uit"
	case components.TabParameters:
		return "[enter]next  [esc]back"
	default:
		return "[r]erun  [s]ampling  [m]onte carlo  [?]help  [q]uit"
	}
}

func (a App) statusState() string {
	mode := "expected"
	if a.stochastic {
		mode = "sampled"
	}
	state := fmt.Sprintf("%s · %s", a.presetName, mode)
	if a.forecast != nil {
		state += fmt.Sprintf(" · %s", a.forecast.Elapsed.Round(time.Microsecond))
	}
	if a.mcRunning {
		state += fmt.Sprintf(" · MC %d/%d", a.mcCurrent, a.mcTotal)
	}
	return state
}

func (a App) renderForecastTab(cw, h int) string {
	t := theme.Active

	if a.forecastErr != nil {
		return components.ContentCard("Invalid parameters", renderInvalid(a.forecastErr), cw)
	}
	if a.forecast == nil {
		return components.ContentCard("", a.spinner.View()+" Running forecast...", cw)
	}

	fc := a.forecast
	last := fc.Growth.Months() - 1
	cum := fc.Financial.CumulativeProfit[last]

	profitColor := t.Profit
	if cum < 0 {
		profitColor = t.Loss
	}
	breakEven := components.Metric{Label: "Break-even", Value: cli.FormatMonth(fc.BreakEvenMonth), Color: t.Profit}
	if fc.BreakEvenMonth == model.NoBreakEven {
		breakEven.Value = "none"
		breakEven.Color = t.Warning
		breakEven.Note = "within horizon"
	}
	overage := components.Metric{Label: "Storage overage", Value: "none"}
	if fc.Financial.OverageMonth >= 0 {
		overage.Value = cli.FormatCost(fc.Financial.OverageCost)
		overage.Note = "from " + cli.FormatMonth(fc.Financial.OverageMonth)
		overage.Color = t.Warning
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Cumulative profit", Value: cli.FormatCost(cum), Color: profitColor},
		breakEven,
		{Label: "Users", Value: cli.FormatFloat(fc.Growth.Users[last], 0), Note: cli.FormatFloat(fc.Growth.Companies[last], 1) + " companies"},
		{Label: "Storage", Value: cli.FormatGB(fc.Financial.StorageUsage[last])},
		overage,
	}, cw)

	chartH := h - lipgloss.Height(cards) - 4
	chart := components.LineChart([]components.Series{
		{Name: "Cumulative profit", Values: fc.Financial.CumulativeProfit, Color: t.Profit, Format: cli.FormatCostShort},
		{Name: "Storage (GB)", Values: fc.Financial.StorageUsage, Color: t.Storage},
		{Name: "Users", Values: fc.Growth.Users, Color: t.Users},
	}, components.CardInnerWidth(cw), max(chartH-5, 4))

	body := chart
	if fc.BreakEvenMonth == model.NoBreakEven {
		body += "\n" + lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface).Render(cli.NoBreakEvenMessage)
	}

	title := fmt.Sprintf("Forecast · %d months", fc.Params.Months)
	return lipgloss.JoinVertical(lipgloss.Left, cards, components.ContentCard(title, body, cw))
}

func (a App) renderTableTab() string {
	if a.forecast == nil {
		return a.spinner.View() + " Running forecast..."
	}
	return a.table.View()
}

func forecastTableContent(fc *model.Forecast) string {
	return cli.RenderTable(cli.ForecastTable(fc))
}

func (a App) renderMonteCarloTab(cw, h int) string {
	t := theme.Active

	var b strings.Builder
	switch {
	case a.mcRunning:
		barW := min(40, cw-30)
		b.WriteString(components.ContentCard("Monte Carlo",
			a.spinner.View()+" Simulating\n\n"+components.TrialProgress("Trials", a.mcCurrent, a.mcTotal, barW), cw))
		b.WriteString("\n")
	case a.mcErr != nil && errors.Is(a.mcErr, context.Canceled):
		b.WriteString(components.ContentCard("Monte Carlo", "Cancelled. Press m to start again.", cw))
		b.WriteString("\n")
	case a.mcErr != nil:
		b.WriteString(components.ContentCard("Monte Carlo failed", renderInvalid(a.mcErr), cw))
		b.WriteString("\n")
	case a.mc == nil:
		hint := fmt.Sprintf("Press m to run %s trials with the current parameters.", cli.FormatNumber(int64(a.params.Iterations)))
		return components.ContentCard("Monte Carlo", hint, cw)
	}

	if a.mc == nil {
		return b.String()
	}

	s := a.mc.Stats
	last := len(s.MeanCumulativeProfit) - 1

	riskColor := components.ColorForPct(s.RiskOfNoReturn / 100)
	breakEven := components.Metric{Label: "Avg break-even", Value: cli.FormatAverageMonth(s.AverageBreakEvenMonth)}
	if !s.HasBreakEven() {
		breakEven.Color = t.Warning
	}
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Total net profit", Value: cli.FormatCost(s.TotalNetProfit), Note: "± " + cli.FormatCost(s.StdCumulativeProfit[last])},
		{Label: "ROI", Value: cli.FormatPercent(s.ROI)},
		{Label: "Risk of no return", Value: cli.FormatPercent(s.RiskOfNoReturn), Color: riskColor},
		breakEven,
		{Label: "Trials", Value: cli.FormatNumber(int64(s.Trials)), Note: fmt.Sprintf("seed %d", a.mc.Seed)},
	}, cw)
	b.WriteString(cards)
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	chartH := h - lipgloss.Height(b.String()) - 6
	chart := components.BandChart(s.MeanCumulativeProfit, s.StdCumulativeProfit, t.Accent, cli.FormatCostShort, inner, max(chartH, 4))

	body := chart + "\n\n" +
		components.RiskBar(s.RiskOfNoReturn, min(30, inner-10)) +
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(fmt.Sprintf("   final storage %s ± %s", cli.FormatGB(s.MeanStorageUsage[last]), cli.FormatGB(s.StdStorageUsage[last])))
	if !s.HasBreakEven() {
		body += "\n" + lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface).Render(cli.NoBreakEvenMessage)
	}
	b.WriteString(components.ContentCard("Mean cumulative profit", body, cw))
	return b.String()
}

func (a App) renderParametersTab() string {
	t := theme.Active
	var b strings.Builder
	if a.formErr != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Loss).Render(renderInvalid(a.formErr)))
		b.WriteString("\n\n")
	}
	b.WriteString(a.form.View())
	return b.String()
}

// renderInvalid lists each invalid field on its own line.
func renderInvalid(err error) string {
	fields := model.InvalidFields(err)
	if len(fields) == 0 {
		return err.Error()
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("%s = %v (must be %s)", f.Field, f.Value, f.Constraint)
	}
	return strings.Join(lines, "\n")
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Key).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"f t c p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll the month table"},
		{"r", "Rerun the forecast"},
		{"s", "Toggle sampled company sizes"},
		{"m", "Run Monte Carlo"},
		{"Esc", "Cancel Monte Carlo / leave form"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
