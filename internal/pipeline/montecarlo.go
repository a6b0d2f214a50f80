package pipeline

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/fcast/internal/model"
)

// ProgressFunc is called as trials complete.
// current is the number of trials finished so far, total is the batch size.
type ProgressFunc func(current, total int)

// MonteCarloOptions controls a batch of stochastic trials.
type MonteCarloOptions struct {
	Seed     uint64
	Workers  int
	Progress ProgressFunc
}

// TrialRand returns the random stream for one trial. Streams depend only on
// (seed, trial), so results do not depend on scheduling.
func TrialRand(seed uint64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(trial)))
}

// RunTrial performs one stochastic growth + financial pass.
func RunTrial(p model.Parameters, r *rand.Rand) model.TrialResult {
	g := grow(p, GrowthOptions{Stochastic: true, Rand: r})
	f := derive(p, g.Users)
	return model.TrialResult{
		Growth:         g,
		Financial:      f,
		BreakEvenMonth: BreakEvenMonth(f.CumulativeProfit),
	}
}

// Simulate runs p.Iterations independent trials on a bounded worker pool and
// aggregates them. On cancellation it returns ctx.Err() and no results.
func Simulate(ctx context.Context, p model.Parameters, opts MonteCarloOptions) ([]model.TrialResult, model.AggregateStatistics, error) {
	if err := p.Validate(); err != nil {
		return nil, model.AggregateStatistics{}, err
	}

	total := p.Iterations
	numWorkers := opts.Workers
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > total {
		numWorkers = total
	}

	work := make(chan int, total)
	trials := make([]model.TrialResult, total)
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := 0; i < total; i++ {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					return
				}
				trials[idx] = RunTrial(p, TrialRand(opts.Seed, idx))
				n := processed.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), total)
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, model.AggregateStatistics{}, err
	}

	return trials, Summarize(p, trials), nil
}
