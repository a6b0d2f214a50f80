package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/theirongolddev/fcast/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	seed := "from clock"
	if cfg.General.Seed != 0 {
		seed = fmt.Sprintf("%d", cfg.General.Seed)
	}
	workers := "GOMAXPROCS"
	if cfg.General.Workers > 0 {
		workers = fmt.Sprintf("%d", cfg.General.Workers)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Default preset: %s\n", cfg.General.DefaultPreset)
	fmt.Printf("    Sampled sizes:  %v\n", cfg.General.Stochastic)
	fmt.Printf("    Seed:           %s\n", seed)
	fmt.Printf("    Workers:        %s\n", workers)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s\n", cfg.Logging.Level)
	fmt.Printf("    Format: %s\n", cfg.Logging.Format)
	fmt.Printf("    Output: %s\n", cfg.Logging.Output)
	fmt.Println()

	if len(cfg.Presets) > 0 {
		fmt.Println("  [Presets]")
		for _, name := range slices.Sorted(maps.Keys(cfg.Presets)) {
			fmt.Printf("    overrides for %s\n", config.NormalizePresetName(name))
		}
		fmt.Println()
	}

	fmt.Println("  Run `fcast setup` to reconfigure.")
	return nil
}
