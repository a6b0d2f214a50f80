package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fcast/internal/model"
)

// NoBreakEvenMessage is printed when cumulative profit never reaches zero.
const NoBreakEvenMessage = "No break-even point within the given timeframe."

// ForecastTable lists every month of a single forecast.
func ForecastTable(fc *model.Forecast) Table {
	t := Table{
		Title:   "Monthly Forecast",
		Headers: []string{"Month", "Companies", "Users", "Storage", "Revenue", "Net Profit", "Cumulative"},
	}
	for m := 0; m < fc.Growth.Months(); m++ {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", m+1),
			FormatFloat(fc.Growth.Companies[m], 2),
			FormatFloat(fc.Growth.Users[m], 1),
			FormatGB(fc.Financial.StorageUsage[m]),
			FormatCost(fc.Financial.Revenue[m]),
			FormatCost(fc.Financial.NetProfit[m]),
			FormatCost(fc.Financial.CumulativeProfit[m]),
		})
	}
	return t
}

// ForecastSummary renders the headline numbers of a single forecast.
func ForecastSummary(fc *model.Forecast) string {
	last := fc.Growth.Months() - 1
	f := fc.Financial

	mode := "expected company size"
	if fc.Stochastic {
		mode = fmt.Sprintf("sampled (seed %d)", fc.Seed)
	}

	pairs := [][2]string{
		{"Mode", mode},
		{"Horizon", fmt.Sprintf("%d months", fc.Params.Months)},
		{"Final users", FormatFloat(fc.Growth.Users[last], 1)},
		{"Final storage", FormatGB(f.StorageUsage[last])},
		{"Monthly expense", FormatCost(fc.Params.MonthlyExpense())},
		{"Cumulative profit", FormatCost(f.CumulativeProfit[last])},
	}
	if f.OverageMonth >= 0 {
		pairs = append(pairs, [2]string{"Storage overage", fmt.Sprintf("%s (%s)", FormatCost(f.OverageCost), FormatMonth(f.OverageMonth))})
	}

	var b strings.Builder
	b.WriteString(RenderKeyValues(pairs))
	b.WriteString("\n")
	b.WriteString("  ")
	if fc.BreakEvenMonth == model.NoBreakEven {
		b.WriteString(lossStyle.Render(NoBreakEvenMessage))
	} else {
		b.WriteString(gainStyle.Render("Break-even at " + FormatMonth(fc.BreakEvenMonth)))
	}
	b.WriteString("\n")
	return b.String()
}

// MonteCarloSummary renders the aggregate panel for a Monte Carlo run.
func MonteCarloSummary(res *model.MonteCarloResult) string {
	s := res.Stats
	last := len(s.MeanCumulativeProfit) - 1

	pairs := [][2]string{
		{"Trials", FormatNumber(int64(s.Trials))},
		{"Seed", fmt.Sprintf("%d", res.Seed)},
		{"Total net profit", FormatCost(s.TotalNetProfit)},
		{"ROI", FormatPercent(s.ROI)},
		{"Risk of no return", FormatPercent(s.RiskOfNoReturn)},
	}
	if last >= 0 {
		pairs = append(pairs,
			[2]string{"Final profit std dev", FormatCost(s.StdCumulativeProfit[last])},
			[2]string{"Final storage std dev", FormatGB(s.StdStorageUsage[last])},
		)
	}
	pairs = append(pairs, [2]string{"Average break-even", FormatAverageMonth(s.AverageBreakEvenMonth)})

	var b strings.Builder
	b.WriteString(RenderKeyValues(pairs))
	if !s.HasBreakEven() {
		b.WriteString("\n  ")
		b.WriteString(warnStyle.Render(NoBreakEvenMessage))
		b.WriteString("\n")
	}
	return b.String()
}

// MonteCarloTable lists per-month means and standard deviations.
func MonteCarloTable(res *model.MonteCarloResult) Table {
	s := res.Stats
	t := Table{
		Title:   "Monte Carlo Aggregates",
		Headers: []string{"Month", "Mean Cumulative", "Std Dev", "Mean Storage", "Std Dev"},
	}
	for m := range s.MeanCumulativeProfit {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", m+1),
			FormatCost(s.MeanCumulativeProfit[m]),
			FormatCost(s.StdCumulativeProfit[m]),
			FormatGB(s.MeanStorageUsage[m]),
			FormatGB(s.StdStorageUsage[m]),
		})
	}
	return t
}
