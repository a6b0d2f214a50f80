package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file so env and flag overrides are not saved as defaults.
	next, err := config.LoadFile()
	if err != nil {
		return err
	}
	seed := strconv.FormatUint(next.General.Seed, 10)
	workers := strconv.Itoa(next.General.Workers)

	presetOpts := make([]huh.Option[string], 0, len(config.DefaultPresets))
	for _, name := range config.PresetNames() {
		presetOpts = append(presetOpts, huh.NewOption(config.DefaultPresets[name].Title, name))
	}
	themeOpts := huh.NewOptions(theme.Names()...)
	levelOpts := huh.NewOptions("debug", "info", "warn", "error")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default preset").
				Options(presetOpts...).
				Value(&next.General.DefaultPreset),
			huh.NewConfirm().
				Title("Sample company sizes in single forecasts?").
				Value(&next.General.Stochastic),
		).Title("Forecast"),
		huh.NewGroup(
			huh.NewInput().
				Title("Seed").
				Description("0 picks a new seed from the clock on every run").
				Value(&seed).
				Validate(func(s string) error {
					_, err := strconv.ParseUint(s, 10, 64)
					return err
				}),
			huh.NewInput().
				Title("Monte Carlo workers").
				Description("0 uses every CPU").
				Value(&workers).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err == nil && n < 0 {
						return fmt.Errorf("workers cannot be negative")
					}
					return err
				}),
		).Title("Simulation"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&next.Appearance.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(levelOpts...).
				Value(&next.Logging.Level),
		).Title("Appearance"),
	)
	if err := form.Run(); err != nil {
		return err
	}

	// Validated by the form.
	next.General.Seed, _ = strconv.ParseUint(seed, 10, 64)
	next.General.Workers, _ = strconv.Atoi(workers)

	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fcast setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
