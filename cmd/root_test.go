package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/fcast/internal/config"
	"github.com/theirongolddev/fcast/internal/model"

	"github.com/spf13/cobra"
)

// paramCommand registers the parameter flags on a fresh command so each
// test sees its own Changed state.
func paramCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cfg = config.DefaultConfig()
	flagPreset = ""

	c := &cobra.Command{Use: "test"}
	c.Flags().StringVarP(&flagPreset, "preset", "p", "", "")
	for _, f := range config.FieldBounds {
		c.Flags().Float64Var(paramFlags[f.Key], flagName(f.Key), 0, "")
	}
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return c
}

func TestResolveParamsDefaultPreset(t *testing.T) {
	preset, err := resolveParams(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveParams: %v", err)
	}
	if preset.Name != config.PresetColocation {
		t.Errorf("preset = %q, want %q", preset.Name, config.PresetColocation)
	}
	if preset.Params != config.DefaultPresets[config.PresetColocation].Params {
		t.Error("default preset params changed without flags")
	}
}

func TestResolveParamsFlagOverrides(t *testing.T) {
	c := paramCommand(t, "--preset", "Cloud Server/S3", "--months", "24", "--price-per-gb", "0.5")
	preset, err := resolveParams(c)
	if err != nil {
		t.Fatalf("resolveParams: %v", err)
	}
	if preset.Name != config.PresetCloudS3 {
		t.Errorf("preset = %q, want %q", preset.Name, config.PresetCloudS3)
	}
	if preset.Params.Months != 24 || preset.Params.PricePerGB != 0.5 {
		t.Errorf("overrides not applied: %+v", preset.Params)
	}
	if preset.Params.InitialStorage != config.DefaultPresets[config.PresetCloudS3].Params.InitialStorage {
		t.Error("untouched field changed")
	}
}

func TestResolveParamsRejectsOutOfRange(t *testing.T) {
	if _, err := resolveParams(paramCommand(t, "--months", "121")); err == nil {
		t.Fatal("accepted a horizon beyond the maximum")
	}
	if _, err := resolveParams(paramCommand(t, "--iterations", "2.5")); err == nil {
		t.Fatal("accepted fractional iterations")
	}
}

func TestResolveParamsCrossFieldValidation(t *testing.T) {
	_, err := resolveParams(paramCommand(t,
		"--min-employees-per-company", "50", "--max-employees-per-company", "10"))
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestResolveParamsUnknownPreset(t *testing.T) {
	if _, err := resolveParams(paramCommand(t, "--preset", "mainframe")); err == nil {
		t.Fatal("accepted an unknown preset")
	}
}
