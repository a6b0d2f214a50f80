package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/model"

	"github.com/charmbracelet/huh"
)

// paramValues backs the Parameters form. Inputs are strings so the form can
// show what the user typed until it validates.
type paramValues struct {
	preset     string
	fields     []string
	stochastic bool
}

func newParamValues(p model.Parameters, stochastic bool) *paramValues {
	v := &paramValues{
		fields:     make([]string, len(config.FieldBounds)),
		stochastic: stochastic,
	}
	for i, f := range config.FieldBounds {
		v.fields[i] = strconv.FormatFloat(f.Get(p), 'f', -1, 64)
	}
	return v
}

func parseField(f config.Field, s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", f.Label)
	}
	if err := f.Check(x); err != nil {
		return 0, err
	}
	return x, nil
}

// params builds a parameter set from the form. A chosen preset replaces
// the typed values entirely.
func (v *paramValues) params(cfg config.Config, base model.Parameters) (model.Parameters, error) {
	p := base
	if v.preset != "" {
		preset, err := cfg.ResolvePreset(v.preset)
		if err != nil {
			return base, err
		}
		p = preset.Params
	} else {
		for i, f := range config.FieldBounds {
			x, err := parseField(f, v.fields[i])
			if err != nil {
				return base, err
			}
			f.Set(&p, x)
		}
	}
	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}

func newParamsForm(v *paramValues) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Keep the values below", "")}
	for _, name := range config.PresetNames() {
		options = append(options, huh.NewOption(config.DefaultPresets[name].Title, name))
	}

	preset := huh.NewSelect[string]().
		Title("Preset").
		Description("Choosing a preset replaces every value below").
		Options(options...).
		Value(&v.preset)

	mode := huh.NewConfirm().
		Title("Company sizes").
		Affirmative("Sampled").
		Negative("Expected").
		Value(&v.stochastic)

	inputs := make([]huh.Field, len(config.FieldBounds))
	for i, f := range config.FieldBounds {
		inputs[i] = huh.NewInput().
			Title(f.Label).
			Description(fmt.Sprintf("%g to %g", f.Min, f.Max)).
			Value(&v.fields[i]).
			Validate(func(s string) error {
				_, err := parseField(f, s)
				return err
			})
	}

	split := len(inputs) / 2
	return huh.NewForm(
		huh.NewGroup(preset, mode).Title("Scenario"),
		huh.NewGroup(inputs[:split]...).Title("Expenses and revenue"),
		huh.NewGroup(inputs[split:]...).Title("Customers and storage"),
	).WithShowHelp(true)
}
