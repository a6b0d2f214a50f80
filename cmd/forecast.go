package cmd

import (
	"fmt"

	"github.com/theirongolddev/fcast/internal/cli"
	"github.com/theirongolddev/fcast/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagSparkline bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Run a single forecast and print the monthly table",
	RunE:  runForecast,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, forecastCmd} {
		c.Flags().BoolVar(&flagSparkline, "sparkline", false, "Show a cumulative profit sparkline under the table")
	}
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	preset, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	opts := pipeline.SingleOptions{Stochastic: cfg.General.Stochastic}
	if opts.Stochastic {
		opts.Seed = cfg.General.RunSeed()
	}
	fc, err := pipeline.RunSingleForecast(preset.Params, opts)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FORECAST  " + preset.Title))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ForecastTable(fc)))
	if flagSparkline {
		fmt.Println()
		fmt.Printf("  Cumulative  %s\n", cli.RenderSparkline(fc.Financial.CumulativeProfit))
	}
	fmt.Println()
	fmt.Print(cli.ForecastSummary(fc))
	fmt.Println()
	return nil
}
