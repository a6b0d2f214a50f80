// Package cmd implements the fcast CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/logging"
	"github.com/theirongolddev/fcast/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagPreset     string
	flagStochastic bool
	flagSeed       uint64
	flagWorkers    int
	flagQuiet      bool

	// One flag per parameter, keyed by config field key.
	paramFlags = map[string]*float64{}

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fcast",
	Short: "Storage service financial forecaster",
	Long: "Project customer growth, storage usage and profit for a storage service,\n" +
		"either as a single run or as a Monte Carlo batch.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagPreset, "preset", "p", "", "Parameter preset (see `fcast presets`)")
	pf.BoolVarP(&flagStochastic, "stochastic", "s", false, "Sample company sizes instead of using the expected size")
	pf.Uint64Var(&flagSeed, "seed", 0, "Random seed (0 picks one from the clock)")
	pf.IntVarP(&flagWorkers, "workers", "w", 0, "Monte Carlo workers (0 uses GOMAXPROCS)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	for _, f := range config.FieldBounds {
		v := new(float64)
		paramFlags[f.Key] = v
		pf.Float64Var(v, flagName(f.Key), 0, fmt.Sprintf("%s (%g to %g)", f.Label, f.Min, f.Max))
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// loadConfig loads .env and the config file, then applies the global flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("stochastic") {
		cfg.General.Stochastic = flagStochastic
	}
	if flags.Changed("seed") {
		cfg.General.Seed = flagSeed
	}
	if flags.Changed("workers") {
		cfg.General.Workers = flagWorkers
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logging.Logger.Debug("config loaded",
		zap.String("path", config.ConfigPath()),
		zap.Bool("file", config.Exists()),
	)
	return nil
}

// resolveParams starts from the chosen preset and overlays any parameter
// flags given on the command line.
func resolveParams(cmd *cobra.Command) (config.Preset, error) {
	preset, err := cfg.ResolvePreset(flagPreset)
	if err != nil {
		return preset, err
	}

	overridden := false
	for _, f := range config.FieldBounds {
		if !cmd.Flags().Changed(flagName(f.Key)) {
			continue
		}
		v := *paramFlags[f.Key]
		if err := f.Check(v); err != nil {
			return preset, fmt.Errorf("--%s: %w", flagName(f.Key), err)
		}
		f.Set(&preset.Params, v)
		overridden = true
	}
	if overridden {
		preset.Title += " (modified)"
	}

	if err := preset.Params.Validate(); err != nil {
		printInvalid(err)
		return preset, err
	}
	return preset, nil
}

func printInvalid(err error) {
	for _, f := range model.InvalidFields(err) {
		fmt.Fprintf(os.Stderr, "  invalid %s = %v: must be %s\n", f.Field, f.Value, f.Constraint)
	}
}
