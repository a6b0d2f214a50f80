package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/fcast/internal/logging"
	"github.com/theirongolddev/fcast/internal/model"
)

// SingleOptions controls RunSingleForecast.
type SingleOptions struct {
	Stochastic bool
	// Seed feeds the stochastic sampler; it uses the same stream as
	// Monte Carlo trial 0 for that seed.
	Seed uint64
}

// RunSingleForecast runs the growth model once and derives its financials.
func RunSingleForecast(p model.Parameters, opts SingleOptions) (*model.Forecast, error) {
	runID := uuid.NewString()
	log := logging.With(zap.String("run_id", runID))

	if err := p.Validate(); err != nil {
		logInvalid(log, err)
		return nil, err
	}

	start := time.Now()
	gopts := GrowthOptions{Stochastic: opts.Stochastic}
	if opts.Stochastic {
		gopts.Rand = TrialRand(opts.Seed, 0)
	}
	g := grow(p, gopts)
	f := derive(p, g.Users)

	fc := &model.Forecast{
		RunID:          runID,
		Params:         p,
		Stochastic:     opts.Stochastic,
		Seed:           opts.Seed,
		Growth:         g,
		Financial:      f,
		BreakEvenMonth: BreakEvenMonth(f.CumulativeProfit),
		Elapsed:        time.Since(start),
	}

	log.Info("single forecast complete",
		zap.Int("months", p.Months),
		zap.Bool("stochastic", opts.Stochastic),
		zap.Int("break_even_month", fc.BreakEvenMonth),
		zap.Float64("final_cumulative_profit", f.CumulativeProfit[p.Months-1]),
		zap.Duration("elapsed", fc.Elapsed),
	)
	return fc, nil
}

// RunMonteCarloForecast runs p.Iterations stochastic trials and aggregates them.
func RunMonteCarloForecast(ctx context.Context, p model.Parameters, opts MonteCarloOptions) (*model.MonteCarloResult, error) {
	runID := uuid.NewString()
	log := logging.With(zap.String("run_id", runID))

	start := time.Now()
	log.Debug("monte carlo started",
		zap.Int("months", p.Months),
		zap.Int("iterations", p.Iterations),
		zap.Uint64("seed", opts.Seed),
	)

	trials, stats, err := Simulate(ctx, p, opts)
	if err != nil {
		if errors.Is(err, model.ErrInvalidParameter) {
			logInvalid(log, err)
		} else {
			log.Warn("monte carlo aborted", zap.Error(err))
		}
		return nil, err
	}

	res := &model.MonteCarloResult{
		RunID:   runID,
		Params:  p,
		Seed:    opts.Seed,
		Trials:  trials,
		Stats:   stats,
		Elapsed: time.Since(start),
	}

	log.Info("monte carlo complete",
		zap.Int("trials", stats.Trials),
		zap.Float64("total_net_profit", stats.TotalNetProfit),
		zap.Float64("risk_of_no_return", stats.RiskOfNoReturn),
		zap.Int("break_even_trials", stats.BreakEvenTrials),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func logInvalid(log *zap.Logger, err error) {
	for _, f := range model.InvalidFields(err) {
		log.Warn("invalid parameter",
			zap.String("field", f.Field),
			zap.String("constraint", f.Constraint),
			zap.Any("value", f.Value),
		)
	}
}
