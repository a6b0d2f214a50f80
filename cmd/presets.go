package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/fcast/internal/cli"
	"github.com/theirongolddev/fcast/internal/config"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List parameter presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(_ *cobra.Command, _ []string) error {
	names := config.PresetNames()

	t := cli.Table{Headers: []string{"Parameter", "Flag"}}
	resolved := make([]config.Preset, 0, len(names))
	for _, name := range names {
		p, err := cfg.ResolvePreset(name)
		if err != nil {
			return err
		}
		resolved = append(resolved, p)
		t.Headers = append(t.Headers, name)
	}

	for _, f := range config.FieldBounds {
		row := []string{f.Label, "--" + flagName(f.Key)}
		for _, p := range resolved {
			row = append(row, strconv.FormatFloat(f.Get(p.Params), 'f', -1, 64))
		}
		t.Rows = append(t.Rows, row)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(t))
	fmt.Println()
	for _, p := range resolved {
		marker := " "
		if p.Name == config.NormalizePresetName(cfg.General.DefaultPreset) {
			marker = "*"
		}
		fmt.Printf("  %s %-12s %s\n", marker, p.Name, p.Title)
	}
	fmt.Println()
	return nil
}
