package config

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/theirongolddev/fcast/internal/model"
)

// Built-in preset names.
const (
	PresetColocation = "colocation"
	PresetCloudS3    = "cloud-s3"
)

// Preset is a named parameter set.
type Preset struct {
	Name   string
	Title  string
	Params model.Parameters
}

// DefaultPresets maps preset names to their parameters.
var DefaultPresets = map[string]Preset{
	PresetColocation: {
		Name:  PresetColocation,
		Title: "Physical Server/Co-location",
		Params: model.Parameters{
			InitialInvestment:      2770,
			ColocationExpense:      100,
			MarketingExpense:       50,
			Months:                 36,
			PricePerGB:             0.12,
			AvgGBPerUser:           5,
			InitialUsers:           0,
			InitialCompanies:       1,
			MinEmployeesPerCompany: 5,
			MaxEmployeesPerCompany: 200,
			MeanCompanySize:        20,
			AcquisitionRate:        0.5,
			InitialStorage:         8000,
			CostPerGB:              0.08,
			Iterations:             100,
		},
	},
	PresetCloudS3: {
		Name:  PresetCloudS3,
		Title: "Cloud Server/S3",
		Params: model.Parameters{
			InitialInvestment:      0,
			ColocationExpense:      200,
			MarketingExpense:       50,
			Months:                 36,
			PricePerGB:             0.12,
			AvgGBPerUser:           5,
			InitialUsers:           0,
			InitialCompanies:       1,
			MinEmployeesPerCompany: 5,
			MaxEmployeesPerCompany: 200,
			MeanCompanySize:        20,
			AcquisitionRate:        0.5,
			InitialStorage:         200,
			CostPerGB:              0.02,
			Iterations:             100,
		},
	},
}

var presetAliases = map[string]string{
	"physical-server-co-location": PresetColocation,
	"physical-server-colocation":  PresetColocation,
	"co-location":                 PresetColocation,
	"cloud":                       PresetCloudS3,
	"cloud-server-s3":             PresetCloudS3,
	"s3":                          PresetCloudS3,
}

// NormalizePresetName folds case and separators so that display titles
// and config keys resolve to the same preset.
// e.g., "Cloud Server/S3" -> "cloud-s3"
func NormalizePresetName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "-", "_", "-", "/", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if alias, ok := presetAliases[s]; ok {
		return alias
	}
	return s
}

// LookupPreset returns a built-in preset, normalizing the name first.
func LookupPreset(name string) (Preset, bool) {
	p, ok := DefaultPresets[NormalizePresetName(name)]
	return p, ok
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(DefaultPresets))
	for name := range DefaultPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetOverride holds per-field overrides for a preset.
type PresetOverride struct {
	InitialInvestment      *float64 `toml:"initial_investment,omitempty"`
	ColocationExpense      *float64 `toml:"colocation_expense,omitempty"`
	MarketingExpense       *float64 `toml:"marketing_expense,omitempty"`
	Months                 *int     `toml:"months,omitempty"`
	PricePerGB             *float64 `toml:"price_per_gb,omitempty"`
	CostPerGB              *float64 `toml:"cost_per_gb,omitempty"`
	AvgGBPerUser           *float64 `toml:"avg_gb_per_user,omitempty"`
	InitialUsers           *int     `toml:"initial_users,omitempty"`
	InitialCompanies       *int     `toml:"initial_companies,omitempty"`
	MinEmployeesPerCompany *int     `toml:"min_employees_per_company,omitempty"`
	MaxEmployeesPerCompany *int     `toml:"max_employees_per_company,omitempty"`
	MeanCompanySize        *float64 `toml:"mean_company_size,omitempty"`
	AcquisitionRate        *float64 `toml:"acquisition_rate,omitempty"`
	InitialStorage         *float64 `toml:"initial_storage,omitempty"`
	Iterations             *int     `toml:"iterations,omitempty"`
}

// values returns the set overrides keyed by field key.
func (o PresetOverride) values() map[string]float64 {
	out := make(map[string]float64)
	putF := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}
	putI := func(key string, v *int) {
		if v != nil {
			out[key] = float64(*v)
		}
	}
	putF("initial_investment", o.InitialInvestment)
	putF("colocation_expense", o.ColocationExpense)
	putF("marketing_expense", o.MarketingExpense)
	putI("months", o.Months)
	putF("price_per_gb", o.PricePerGB)
	putF("cost_per_gb", o.CostPerGB)
	putF("avg_gb_per_user", o.AvgGBPerUser)
	putI("initial_users", o.InitialUsers)
	putI("initial_companies", o.InitialCompanies)
	putI("min_employees_per_company", o.MinEmployeesPerCompany)
	putI("max_employees_per_company", o.MaxEmployeesPerCompany)
	putF("mean_company_size", o.MeanCompanySize)
	putF("acquisition_rate", o.AcquisitionRate)
	putF("initial_storage", o.InitialStorage)
	putI("iterations", o.Iterations)
	return out
}

// Apply returns p with every set override copied in. Each value must lie
// within its field's input range.
func (o PresetOverride) Apply(p model.Parameters) (model.Parameters, error) {
	vals := o.values()
	for _, key := range slices.Sorted(maps.Keys(vals)) {
		f, _ := lookupField(key)
		if err := f.Check(vals[key]); err != nil {
			return p, fmt.Errorf("%s: %w", key, err)
		}
		f.Set(&p, vals[key])
	}
	return p, nil
}

// ResolvePreset looks up a built-in preset and layers any [presets.<name>]
// overrides from the config on top. An empty name uses General.DefaultPreset.
// Two config keys naming the same preset are rejected.
func (c Config) ResolvePreset(name string) (Preset, error) {
	if name == "" {
		name = c.General.DefaultPreset
	}
	preset, ok := LookupPreset(name)
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}

	var keys []string
	for key := range c.Presets {
		if NormalizePresetName(key) == preset.Name {
			keys = append(keys, key)
		}
	}
	switch len(keys) {
	case 0:
		return preset, nil
	case 1:
	default:
		slices.Sort(keys)
		return Preset{}, fmt.Errorf("config overrides preset %q more than once: [presets.%s]",
			preset.Name, strings.Join(keys, "], [presets."))
	}

	params, err := c.Presets[keys[0]].Apply(preset.Params)
	if err != nil {
		return Preset{}, fmt.Errorf("[presets.%s] %w", keys[0], err)
	}
	preset.Params = params
	return preset, nil
}

// Field describes one editable parameter with the range its input widget allows.
type Field struct {
	Key     string
	Label   string
	Min     float64
	Max     float64
	Integer bool
	Get     func(p model.Parameters) float64
	Set     func(p *model.Parameters, v float64)
}

// Check reports whether v is inside the field's range.
func (f Field) Check(v float64) error {
	if math.IsNaN(v) || v < f.Min || v > f.Max {
		return fmt.Errorf("%s must be between %g and %g", f.Label, f.Min, f.Max)
	}
	if f.Integer && v != math.Trunc(v) {
		return fmt.Errorf("%s must be a whole number", f.Label)
	}
	return nil
}

func floatField(key, label string, lo, hi float64, ptr func(p *model.Parameters) *float64) Field {
	return Field{
		Key: key, Label: label, Min: lo, Max: hi,
		Get: func(p model.Parameters) float64 { return *ptr(&p) },
		Set: func(p *model.Parameters, v float64) { *ptr(p) = v },
	}
}

func intField(key, label string, lo, hi int, ptr func(p *model.Parameters) *int) Field {
	return Field{
		Key: key, Label: label, Min: float64(lo), Max: float64(hi), Integer: true,
		Get: func(p model.Parameters) float64 { return float64(*ptr(&p)) },
		Set: func(p *model.Parameters, v float64) { *ptr(p) = int(v) },
	}
}

// FieldBounds lists every parameter in input order with the range its
// slider allows.
var FieldBounds = []Field{
	floatField("initial_investment", "Initial investment", 0, 10000, func(p *model.Parameters) *float64 { return &p.InitialInvestment }),
	floatField("colocation_expense", "Colocation expense", 0, 1000, func(p *model.Parameters) *float64 { return &p.ColocationExpense }),
	floatField("marketing_expense", "Marketing expense", 0, 1000, func(p *model.Parameters) *float64 { return &p.MarketingExpense }),
	intField("months", "Months", 1, model.MaxMonths, func(p *model.Parameters) *int { return &p.Months }),
	floatField("price_per_gb", "Price per GB", 0, 10, func(p *model.Parameters) *float64 { return &p.PricePerGB }),
	floatField("avg_gb_per_user", "Avg GB per user", 0, 100, func(p *model.Parameters) *float64 { return &p.AvgGBPerUser }),
	intField("initial_users", "Initial users", 0, 10000, func(p *model.Parameters) *int { return &p.InitialUsers }),
	intField("initial_companies", "Initial companies", 0, 1000, func(p *model.Parameters) *int { return &p.InitialCompanies }),
	intField("min_employees_per_company", "Min employees", 1, 1000, func(p *model.Parameters) *int { return &p.MinEmployeesPerCompany }),
	intField("max_employees_per_company", "Max employees", 1, 1000, func(p *model.Parameters) *int { return &p.MaxEmployeesPerCompany }),
	floatField("mean_company_size", "Mean company size", 1, 100, func(p *model.Parameters) *float64 { return &p.MeanCompanySize }),
	floatField("acquisition_rate", "Acquisition rate", 0, 1, func(p *model.Parameters) *float64 { return &p.AcquisitionRate }),
	floatField("initial_storage", "Initial storage (GB)", 0, 100000, func(p *model.Parameters) *float64 { return &p.InitialStorage }),
	floatField("cost_per_gb", "Cost per GB", 0, 10, func(p *model.Parameters) *float64 { return &p.CostPerGB }),
	intField("iterations", "Iterations", 1, model.MaxIterations, func(p *model.Parameters) *int { return &p.Iterations }),
}

func lookupField(key string) (Field, bool) {
	for _, f := range FieldBounds {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
