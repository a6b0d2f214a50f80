package cmd

import (
	"fmt"

	"github.com/theirongolddev/fcast/internal/logging"
	"github.com/theirongolddev/fcast/internal/tui"
	"github.com/theirongolddev/fcast/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	preset, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Log lines on stderr would tear the alt screen.
	logCfg := cfg.Logging
	if logCfg.Output == "" || logCfg.Output == "stderr" || logCfg.Output == "stdout" {
		logCfg.Output = "discard"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	// Force TrueColor so background styling always emits ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cfg, preset.Params, preset.Name)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
