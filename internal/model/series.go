package model

import (
	"math"
	"time"
)

// NoBreakEven marks a trial whose cumulative profit never reached zero.
const NoBreakEven = -1

// GrowthSeries holds company and user counts indexed by month.
type GrowthSeries struct {
	Companies []float64
	Users     []float64
}

// Months returns the series length.
func (g GrowthSeries) Months() int {
	return len(g.Companies)
}

// FinancialSeries holds the per-month money and storage figures of one run.
type FinancialSeries struct {
	StorageUsage     []float64
	Revenue          []float64
	NetProfit        []float64
	CumulativeProfit []float64

	// OverageCost is the one-time charge, subtracted at month 0.
	OverageCost float64
	// OverageMonth is the month that triggered it, -1 if none did.
	OverageMonth int
}

// TrialResult is one Monte Carlo trial.
type TrialResult struct {
	Growth         GrowthSeries
	Financial      FinancialSeries
	BreakEvenMonth int
}

// BrokeEven reports whether cumulative profit reached zero within the horizon.
func (t TrialResult) BrokeEven() bool {
	return t.BreakEvenMonth != NoBreakEven
}

// AggregateStatistics summarizes a batch of trials.
type AggregateStatistics struct {
	Trials int

	MeanCumulativeProfit []float64
	StdCumulativeProfit  []float64
	MeanStorageUsage     []float64
	StdStorageUsage      []float64

	TotalNetProfit float64
	// ROI is a percentage; NaN when the initial investment is zero.
	ROI float64
	// RiskOfNoReturn is the percentage of trials that never broke even.
	RiskOfNoReturn float64
	// AverageBreakEvenMonth is 0-indexed; NaN when no trial broke even.
	AverageBreakEvenMonth float64
	BreakEvenTrials       int
}

// HasROI is false when ROI is undefined.
func (s AggregateStatistics) HasROI() bool {
	return !math.IsNaN(s.ROI)
}

// HasBreakEven is false when no trial broke even.
func (s AggregateStatistics) HasBreakEven() bool {
	return s.BreakEvenTrials > 0 && !math.IsNaN(s.AverageBreakEvenMonth)
}

// Forecast is the result of a single run, handed to the display layer.
type Forecast struct {
	RunID          string
	Params         Parameters
	Stochastic     bool
	Seed           uint64
	Growth         GrowthSeries
	Financial      FinancialSeries
	BreakEvenMonth int
	Elapsed        time.Duration
}

// MonteCarloResult is the result of a batch run.
type MonteCarloResult struct {
	RunID   string
	Params  Parameters
	Seed    uint64
	Trials  []TrialResult
	Stats   AggregateStatistics
	Elapsed time.Duration
}
