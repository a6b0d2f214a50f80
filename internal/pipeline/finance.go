package pipeline

import (
	"fmt"

	"github.com/theirongolddev/fcast/internal/model"
)

// Derive turns a user series into storage, revenue and profit series.
func Derive(p model.Parameters, users []float64) (model.FinancialSeries, error) {
	if err := p.Validate(); err != nil {
		return model.FinancialSeries{}, err
	}
	if len(users) != p.Months {
		return model.FinancialSeries{}, model.InvalidParameter("users",
			fmt.Sprintf("a series of length months (%d)", p.Months), len(users))
	}
	return derive(p, users), nil
}

// derive assumes validated parameters and a series of length p.Months.
func derive(p model.Parameters, users []float64) model.FinancialSeries {
	n := p.Months
	f := model.FinancialSeries{
		StorageUsage:     make([]float64, n),
		Revenue:          make([]float64, n),
		NetProfit:        make([]float64, n),
		CumulativeProfit: make([]float64, n),
		OverageMonth:     -1,
	}
	expense := p.MonthlyExpense()

	for m := 0; m < n; m++ {
		f.StorageUsage[m] = users[m] * p.AvgGBPerUser
		f.Revenue[m] = f.StorageUsage[m] * p.PricePerGB

		// Overage is billed once, on the first month over capacity.
		if f.OverageMonth < 0 && f.StorageUsage[m] > p.InitialStorage {
			f.OverageCost = (f.StorageUsage[m] - p.InitialStorage) * p.CostPerGB
			f.OverageMonth = m
		}

		f.NetProfit[m] = f.Revenue[m] - expense
	}

	f.CumulativeProfit[0] = f.NetProfit[0] - p.InitialInvestment - f.OverageCost
	for m := 1; m < n; m++ {
		f.CumulativeProfit[m] = f.CumulativeProfit[m-1] + f.NetProfit[m]
	}

	return f
}

// BreakEvenMonth returns the first month with non-negative cumulative profit,
// or model.NoBreakEven.
func BreakEvenMonth(cumulative []float64) int {
	for m, v := range cumulative {
		if v >= 0 {
			return m
		}
	}
	return model.NoBreakEven
}
