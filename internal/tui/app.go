// Package tui provides the interactive Bubble Tea dashboard for fcast.
package tui

import (
	"context"
	"strings"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/model"
	"github.com/theirongolddev/fcast/internal/pipeline"
	"github.com/theirongolddev/fcast/internal/tui/components"
	"github.com/theirongolddev/fcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ForecastMsg carries a finished single forecast.
type ForecastMsg struct {
	Forecast *model.Forecast
	Err      error
}

// MonteCarloProgressMsg reports trials finished so far.
type MonteCarloProgressMsg struct {
	Current int
	Total   int
}

// MonteCarloDoneMsg carries a finished (or cancelled) Monte Carlo batch.
type MonteCarloDoneMsg struct {
	Result *model.MonteCarloResult
	Err    error
}

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	params     model.Parameters
	presetName string
	stochastic bool

	// Single forecast
	forecast    *model.Forecast
	forecastErr error

	// Monte Carlo: results stream from a worker goroutine through mcSub.
	mc        *model.MonteCarloResult
	mcErr     error
	mcRunning bool
	mcCurrent int
	mcTotal   int
	mcSub     chan tea.Msg
	mcCancel  context.CancelFunc

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model
	table     viewport.Model

	// Parameters tab (huh form)
	form     *huh.Form
	formVals *paramValues
	formErr  error
}

const (
	minTerminalWidth = 72
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard for a starting parameter set.
func NewApp(cfg config.Config, p model.Parameters, presetName string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:        cfg,
		params:     p,
		presetName: presetName,
		stochastic: cfg.General.Stochastic,
		spinner:    sp,
		table:      viewport.New(0, 0),
		mcSub:      make(chan tea.Msg, 1),
	}
	a.resetForm()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.forecastCmd(),
		a.spinner.Tick,
		a.form.Init(),
	)
}

func (a *App) resetForm() {
	a.formVals = newParamValues(a.params, a.stochastic)
	a.form = newParamsForm(a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth()).WithHeight(a.contentHeight())
	}
}

func (a App) forecastCmd() tea.Cmd {
	p := a.params
	opts := pipeline.SingleOptions{Stochastic: a.stochastic}
	if a.stochastic {
		opts.Seed = a.cfg.General.RunSeed()
	}
	return func() tea.Msg {
		fc, err := pipeline.RunSingleForecast(p, opts)
		return ForecastMsg{Forecast: fc, Err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.Width = a.contentWidth()
		a.table.Height = a.contentHeight()
		a.form = a.form.WithWidth(a.contentWidth()).WithHeight(a.contentHeight())
		return a, nil

	case tea.MouseMsg:
		if a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(a.activeTab, msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		if a.activeTab == components.TabTable {
			var cmd tea.Cmd
			a.table, cmd = a.table.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ForecastMsg:
		a.forecast = msg.Forecast
		a.forecastErr = msg.Err
		if msg.Forecast != nil {
			a.table.SetContent(forecastTableContent(msg.Forecast))
			a.table.GotoTop()
		}
		return a, nil

	case MonteCarloProgressMsg:
		a.mcCurrent = msg.Current
		a.mcTotal = msg.Total
		return a, waitForMonteCarloMsg(a.mcSub)

	case MonteCarloDoneMsg:
		a.mcRunning = false
		a.mcCancel = nil
		a.mcErr = msg.Err
		if msg.Result != nil {
			a.mc = msg.Result
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Cursor blinks and other form-internal messages.
	if a.activeTab == components.TabParameters {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.cancelMonteCarlo()
		return a, tea.Quit
	}

	// The form owns the keyboard; esc leaves it without applying.
	if a.activeTab == components.TabParameters && !a.showHelp {
		if key == "esc" {
			a.formErr = nil
			a.resetForm()
			a.activeTab = components.TabForecast
			return a, a.form.Init()
		}
		return a.updateForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		a.cancelMonteCarlo()
		return a, tea.Quit
	case "r":
		a.forecast = nil
		return a, a.forecastCmd()
	case "s":
		a.stochastic = !a.stochastic
		a.forecast = nil
		a.resetForm()
		return a, tea.Batch(a.forecastCmd(), a.form.Init())
	case "m":
		return a.startMonteCarlo()
	case "esc":
		a.cancelMonteCarlo()
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab == components.TabTable {
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		p, err := a.formVals.params(a.cfg, a.params)
		if err != nil {
			a.formErr = err
			a.resetForm()
			return a, a.form.Init()
		}
		a.formErr = nil
		a.params = p
		if a.formVals.preset != "" {
			a.presetName = a.formVals.preset
		} else {
			a.presetName = "custom"
		}
		a.stochastic = a.formVals.stochastic
		a.forecast = nil
		a.mc = nil
		a.resetForm()
		a.activeTab = components.TabForecast
		return a, tea.Batch(a.forecastCmd(), a.form.Init())

	case huh.StateAborted:
		a.resetForm()
		a.activeTab = components.TabForecast
		return a, a.form.Init()
	}

	return a, cmd
}

func (a App) startMonteCarlo() (tea.Model, tea.Cmd) {
	if a.mcRunning {
		return a, nil
	}
	if err := a.params.Validate(); err != nil {
		a.mcErr = err
		return a, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mcRunning = true
	a.mcCancel = cancel
	a.mcErr = nil
	a.mcCurrent = 0
	a.mcTotal = a.params.Iterations
	a.activeTab = components.TabMonteCarlo

	opts := pipeline.MonteCarloOptions{
		Seed:    a.cfg.General.RunSeed(),
		Workers: a.cfg.General.Workers,
	}
	return a, tea.Batch(monteCarloCmd(ctx, a.params, opts, a.mcSub), a.spinner.Tick)
}

func (a *App) cancelMonteCarlo() {
	if a.mcCancel != nil {
		a.mcCancel()
	}
}

// monteCarloCmd runs the batch in a background goroutine. It streams
// MonteCarloProgressMsg updates and a final MonteCarloDoneMsg through sub.
func monteCarloCmd(ctx context.Context, p model.Parameters, opts pipeline.MonteCarloOptions, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			// Non-blocking send so workers aren't stalled; the next update catches up.
			opts.Progress = func(current, total int) {
				select {
				case sub <- MonteCarloProgressMsg{Current: current, Total: total}:
				default:
				}
			}
			res, err := pipeline.RunMonteCarloForecast(ctx, p, opts)
			sub <- MonteCarloDoneMsg{Result: res, Err: err}
		}()

		return <-sub
	}
}

// waitForMonteCarloMsg blocks until the next message from the batch goroutine.
func waitForMonteCarloMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// contentHeight is the space between the tab bar and the status bar.
func (a App) contentHeight() int {
	h := a.height - 2
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
