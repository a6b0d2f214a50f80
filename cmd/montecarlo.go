package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/theirongolddev/fcast/internal/cli"
	"github.com/theirongolddev/fcast/internal/pipeline"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var flagAggregates bool

var monteCarloCmd = &cobra.Command{
	Use:     "montecarlo",
	Aliases: []string{"mc"},
	Short:   "Run a Monte Carlo batch and print aggregate statistics",
	RunE:    runMonteCarlo,
}

func init() {
	monteCarloCmd.Flags().BoolVar(&flagAggregates, "table", false, "Print per-month means and standard deviations")
	rootCmd.AddCommand(monteCarloCmd)
}

func runMonteCarlo(cmd *cobra.Command, _ []string) error {
	preset, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var bar *progressbar.ProgressBar
	if flagQuiet {
		bar = progressbar.DefaultSilent(int64(preset.Params.Iterations))
	} else {
		bar = progressbar.Default(int64(preset.Params.Iterations), "simulating")
	}

	opts := pipeline.MonteCarloOptions{
		Seed:    cfg.General.RunSeed(),
		Workers: cfg.General.Workers,
		Progress: func(_, _ int) {
			_ = bar.Add(1)
		},
	}
	res, err := pipeline.RunMonteCarloForecast(ctx, preset.Params, opts)
	_ = bar.Finish()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\n  Cancelled.")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTE CARLO  " + preset.Title))
	fmt.Println()
	fmt.Print(cli.MonteCarloSummary(res))
	if flagAggregates {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.MonteCarloTable(res)))
	}
	fmt.Println()
	return nil
}
