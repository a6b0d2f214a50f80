package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/theirongolddev/fcast/internal/model"
)

func TestDefaultPresetsAreValid(t *testing.T) {
	for name, p := range DefaultPresets {
		if p.Name != name {
			t.Errorf("preset %q has Name %q", name, p.Name)
		}
		if err := p.Params.Validate(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
	}
}

func TestNormalizePresetName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"colocation", PresetColocation},
		{"  Colocation ", PresetColocation},
		{"Physical Server/Co-location", PresetColocation},
		{"cloud_s3", PresetCloudS3},
		{"Cloud Server/S3", PresetCloudS3},
		{"CLOUD-S3", PresetCloudS3},
		{"something-else", "something-else"},
	}
	for _, tt := range tests {
		if got := NormalizePresetName(tt.raw); got != tt.want {
			t.Errorf("NormalizePresetName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset("Cloud Server/S3")
	if !ok {
		t.Fatal("LookupPreset returned !ok for display title")
	}
	if p.Params.InitialStorage != 200 || p.Params.CostPerGB != 0.02 || p.Params.InitialInvestment != 0 {
		t.Fatalf("cloud preset params = %+v", p.Params)
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Fatal("LookupPreset found an unknown preset")
	}
}

func TestPresetNamesSorted(t *testing.T) {
	want := []string{PresetCloudS3, PresetColocation}
	if got := PresetNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PresetNames() = %v, want %v", got, want)
	}
}

func TestResolvePresetAppliesOverrides(t *testing.T) {
	cfg := DefaultConfig()
	months, price := 48, 0.25
	cfg.Presets = map[string]PresetOverride{
		"Colocation": {Months: &months, PricePerGB: &price},
	}

	p, err := cfg.ResolvePreset("")
	if err != nil {
		t.Fatalf("ResolvePreset: %v", err)
	}
	if p.Params.Months != 48 || p.Params.PricePerGB != 0.25 {
		t.Fatalf("overrides not applied: %+v", p.Params)
	}
	if p.Params.InitialInvestment != 2770 {
		t.Fatalf("unrelated field changed: %v", p.Params.InitialInvestment)
	}
	if DefaultPresets[PresetColocation].Params.Months != 36 {
		t.Fatal("ResolvePreset mutated the built-in preset")
	}

	if _, err := cfg.ResolvePreset("missing"); err == nil {
		t.Fatal("ResolvePreset accepted an unknown preset")
	}
}

func TestFieldBoundsCoverEveryParameter(t *testing.T) {
	p := DefaultPresets[PresetColocation].Params

	var rebuilt model.Parameters
	for _, f := range FieldBounds {
		v := f.Get(p)
		if err := f.Check(v); err != nil {
			t.Errorf("preset value for %s out of bounds: %v", f.Key, err)
		}
		f.Set(&rebuilt, v)
	}
	if rebuilt != p {
		t.Fatalf("rebuilding from fields = %+v, want %+v", rebuilt, p)
	}
}

func TestFieldCheck(t *testing.T) {
	months, ok := lookupField("months")
	if !ok {
		t.Fatal("months field missing")
	}
	if err := months.Check(model.MaxMonths + 1); err == nil {
		t.Error("months accepted a value past the horizon limit")
	}
	if err := months.Check(2.5); err == nil {
		t.Error("months accepted a fractional value")
	}

	acq, _ := lookupField("acquisition_rate")
	if err := acq.Check(0.75); err != nil {
		t.Errorf("acquisition_rate rejected 0.75: %v", err)
	}

	// Validation errors carry the snake_case field names used here.
	bad := DefaultPresets[PresetColocation].Params
	bad.MeanCompanySize = 0
	var ipe *model.InvalidParameterError
	if err := bad.Validate(); !errors.As(err, &ipe) {
		t.Fatalf("Validate error = %v", err)
	}
	if _, ok := lookupField(ipe.Field); !ok {
		t.Fatalf("validation field %q has no input field", ipe.Field)
	}
}

func TestResolvePresetRejectsOutOfRangeOverride(t *testing.T) {
	cfg := DefaultConfig()
	rate := 1e20
	cfg.Presets = map[string]PresetOverride{
		PresetColocation: {AcquisitionRate: &rate},
	}

	if _, err := cfg.ResolvePreset(PresetColocation); err == nil {
		t.Fatal("ResolvePreset accepted acquisition_rate = 1e20")
	}
	// Other presets are unaffected.
	if _, err := cfg.ResolvePreset(PresetCloudS3); err != nil {
		t.Fatalf("ResolvePreset(cloud-s3): %v", err)
	}
}

func TestResolvePresetRejectsDuplicateOverrides(t *testing.T) {
	cfg := DefaultConfig()
	a, b := 12, 24
	cfg.Presets = map[string]PresetOverride{
		"colocation":  {Months: &a},
		"Co-location": {Months: &b},
	}

	for i := 0; i < 5; i++ {
		if _, err := cfg.ResolvePreset(PresetColocation); err == nil {
			t.Fatal("ResolvePreset picked one of two overrides for the same preset")
		}
	}
}

func TestOverrideKeysMatchFields(t *testing.T) {
	f, i := 1.0, 1
	full := PresetOverride{
		InitialInvestment: &f, ColocationExpense: &f, MarketingExpense: &f, Months: &i,
		PricePerGB: &f, CostPerGB: &f, AvgGBPerUser: &f, InitialUsers: &i,
		InitialCompanies: &i, MinEmployeesPerCompany: &i, MaxEmployeesPerCompany: &i,
		MeanCompanySize: &f, AcquisitionRate: &f, InitialStorage: &f, Iterations: &i,
	}

	vals := full.values()
	if len(vals) != len(FieldBounds) {
		t.Fatalf("override sets %d fields, want %d", len(vals), len(FieldBounds))
	}
	for key := range vals {
		if _, ok := lookupField(key); !ok {
			t.Errorf("override key %q has no field", key)
		}
	}

	p, err := full.Apply(model.Parameters{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p.Iterations != 1 || p.AcquisitionRate != 1 {
		t.Fatalf("Apply = %+v", p)
	}
}
