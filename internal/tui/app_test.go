package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/model"
	"github.com/theirongolddev/fcast/internal/pipeline"
	"github.com/theirongolddev/fcast/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func testApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.Seed = 7
	preset, err := cfg.ResolvePreset(config.PresetColocation)
	if err != nil {
		t.Fatal(err)
	}
	preset.Params.Iterations = 20

	m, _ := NewApp(cfg, preset.Params, preset.Name).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestForecastMsgPopulatesViews(t *testing.T) {
	a := testApp(t)

	msg := a.forecastCmd()()
	fm, ok := msg.(ForecastMsg)
	if !ok || fm.Err != nil {
		t.Fatalf("forecastCmd returned %#v", msg)
	}

	m, _ := a.Update(fm)
	a = m.(App)
	view := a.View()
	for _, want := range []string{"Cumulative profit", "Break-even", "Forecast · 36 months"} {
		if !strings.Contains(view, want) {
			t.Errorf("forecast view missing %q", want)
		}
	}

	m, _ = a.Update(runeKey('t'))
	a = m.(App)
	if a.activeTab != components.TabTable {
		t.Fatalf("activeTab = %d, want table", a.activeTab)
	}
	if !strings.Contains(a.View(), "Monthly Forecast") {
		t.Error("table tab does not show the month table")
	}
}

func TestForecastErrorShowsInvalidFields(t *testing.T) {
	a := testApp(t)
	m, _ := a.Update(ForecastMsg{Err: model.InvalidParameter("months", "between 1 and 120", 0)})
	a = m.(App)

	if view := a.View(); !strings.Contains(view, "months = 0") {
		t.Fatalf("view does not list the invalid field:\n%s", view)
	}
}

func TestMonteCarloCommandStreamsToDone(t *testing.T) {
	a := testApp(t)
	sub := make(chan tea.Msg, 1)
	opts := pipeline.MonteCarloOptions{Seed: 7, Workers: 2}

	msg := monteCarloCmd(context.Background(), a.params, opts, sub)()
	for {
		if _, ok := msg.(MonteCarloDoneMsg); ok {
			break
		}
		if _, ok := msg.(MonteCarloProgressMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		msg = waitForMonteCarloMsg(sub)()
	}

	done := msg.(MonteCarloDoneMsg)
	if done.Err != nil || done.Result == nil || done.Result.Stats.Trials != 20 {
		t.Fatalf("done = %+v", done)
	}

	a.mcRunning = true
	m, _ := a.Update(done)
	a = m.(App)
	if a.mcRunning {
		t.Fatal("mcRunning still set after completion")
	}
	a.activeTab = components.TabMonteCarlo
	view := a.View()
	for _, want := range []string{"Risk of no return", "Total net profit", "±1σ"} {
		if !strings.Contains(view, want) {
			t.Errorf("Monte Carlo view missing %q", want)
		}
	}
}

func TestMonteCarloCancelled(t *testing.T) {
	a := testApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sub := make(chan tea.Msg, 1)
	msg := monteCarloCmd(ctx, a.params, pipeline.MonteCarloOptions{}, sub)()
	for {
		if _, ok := msg.(MonteCarloDoneMsg); ok {
			break
		}
		msg = waitForMonteCarloMsg(sub)()
	}
	done := msg.(MonteCarloDoneMsg)
	if !errors.Is(done.Err, context.Canceled) || done.Result != nil {
		t.Fatalf("done = %+v, want cancellation", done)
	}

	m, _ := a.Update(done)
	a = m.(App)
	a.activeTab = components.TabMonteCarlo
	if !strings.Contains(a.View(), "Cancelled") {
		t.Error("cancelled batch not reported")
	}
}

func TestStartMonteCarloRejectsInvalidParams(t *testing.T) {
	a := testApp(t)
	a.params.Iterations = 0

	m, cmd := a.Update(runeKey('m'))
	a = m.(App)
	if cmd != nil || a.mcRunning {
		t.Fatal("Monte Carlo started with invalid parameters")
	}
	if !errors.Is(a.mcErr, model.ErrInvalidParameter) {
		t.Fatalf("mcErr = %v", a.mcErr)
	}
}

func TestToggleStochasticReruns(t *testing.T) {
	a := testApp(t)
	m, cmd := a.Update(runeKey('s'))
	a = m.(App)
	if !a.stochastic || cmd == nil {
		t.Fatal("s should switch to sampled sizes and rerun")
	}
	if !a.formVals.stochastic {
		t.Fatal("form not rebuilt with the new mode")
	}
}

func TestTabKeysAndHelp(t *testing.T) {
	a := testApp(t)

	m, _ := a.Update(runeKey('c'))
	a = m.(App)
	if a.activeTab != components.TabMonteCarlo {
		t.Fatalf("activeTab = %d, want Monte Carlo", a.activeTab)
	}
	if !strings.Contains(a.View(), "Press m to run 20 trials") {
		t.Error("Monte Carlo tab should prompt before the first run")
	}

	m, _ = a.Update(runeKey('?'))
	a = m.(App)
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	m, _ = a.Update(runeKey('x'))
	a = m.(App)
	if a.showHelp {
		t.Fatal("any key should dismiss help")
	}

	m, _ = a.Update(runeKey('p'))
	a = m.(App)
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if a.activeTab != components.TabForecast {
		t.Fatalf("esc from parameters left activeTab = %d", a.activeTab)
	}
}

func TestParamValuesRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	base := config.DefaultPresets[config.PresetColocation].Params

	v := newParamValues(base, false)
	got, err := v.params(cfg, model.Parameters{})
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if got != base {
		t.Fatalf("round trip = %+v, want %+v", got, base)
	}

	v.preset = config.PresetCloudS3
	got, err = v.params(cfg, base)
	if err != nil {
		t.Fatalf("params with preset: %v", err)
	}
	if got.InitialStorage != 200 {
		t.Fatalf("preset not applied: %+v", got)
	}

	v.preset = ""
	v.fields[3] = "500" // months
	if _, err := v.params(cfg, base); err == nil {
		t.Fatal("accepted months beyond the horizon limit")
	}
}
