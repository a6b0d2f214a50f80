// Package pipeline runs the growth, financial and Monte Carlo forecast stages.
package pipeline

import (
	"math"

	"github.com/theirongolddev/fcast/internal/model"
)

// Summarize computes per-month and scalar statistics across trials.
// Standard deviations use the population formula (divide by N).
func Summarize(p model.Parameters, trials []model.TrialResult) model.AggregateStatistics {
	stats := model.AggregateStatistics{
		Trials:                len(trials),
		ROI:                   math.NaN(),
		AverageBreakEvenMonth: math.NaN(),
	}
	if len(trials) == 0 {
		return stats
	}

	months := len(trials[0].Financial.CumulativeProfit)
	stats.MeanCumulativeProfit, stats.StdCumulativeProfit = meanStd(trials, months,
		func(t *model.TrialResult) []float64 { return t.Financial.CumulativeProfit })
	stats.MeanStorageUsage, stats.StdStorageUsage = meanStd(trials, months,
		func(t *model.TrialResult) []float64 { return t.Financial.StorageUsage })

	if months > 0 {
		stats.TotalNetProfit = stats.MeanCumulativeProfit[months-1]
	}
	if p.InitialInvestment != 0 {
		stats.ROI = stats.TotalNetProfit / p.InitialInvestment * 100
	}

	noReturn := 0
	breakEvenSum := 0
	for i := range trials {
		if !trials[i].BrokeEven() {
			noReturn++
			continue
		}
		breakEvenSum += trials[i].BreakEvenMonth
		stats.BreakEvenTrials++
	}
	stats.RiskOfNoReturn = float64(noReturn) / float64(len(trials)) * 100
	if stats.BreakEvenTrials > 0 {
		stats.AverageBreakEvenMonth = float64(breakEvenSum) / float64(stats.BreakEvenTrials)
	}

	return stats
}

func meanStd(trials []model.TrialResult, months int, series func(*model.TrialResult) []float64) (mean, std []float64) {
	mean = make([]float64, months)
	std = make([]float64, months)
	n := float64(len(trials))

	for m := 0; m < months; m++ {
		sum := 0.0
		for i := range trials {
			sum += series(&trials[i])[m]
		}
		mean[m] = sum / n

		sq := 0.0
		for i := range trials {
			d := series(&trials[i])[m] - mean[m]
			sq += d * d
		}
		std[m] = math.Sqrt(sq / n)
	}
	return mean, std
}
