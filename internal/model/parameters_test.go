package model

import (
	"errors"
	"math"
	"testing"
)

func validParams() Parameters {
	return Parameters{
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
		Iterations:             1,
	}
}

func TestValidateAcceptsPreset(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Parameters)
		field string
	}{
		{"zero months", func(p *Parameters) { p.Months = 0 }, "months"},
		{"months over cap", func(p *Parameters) { p.Months = MaxMonths + 1 }, "months"},
		{"zero iterations", func(p *Parameters) { p.Iterations = 0 }, "iterations"},
		{"max below min", func(p *Parameters) { p.MaxEmployeesPerCompany = 4 }, "max_employees_per_company"},
		{"min below one", func(p *Parameters) { p.MinEmployeesPerCompany = 0 }, "min_employees_per_company"},
		{"zero mean size", func(p *Parameters) { p.MeanCompanySize = 0 }, "mean_company_size"},
		{"negative price", func(p *Parameters) { p.PricePerGB = -0.01 }, "price_per_gb"},
		{"nan storage", func(p *Parameters) { p.InitialStorage = math.NaN() }, "initial_storage"},
		{"acquisition rate over cap", func(p *Parameters) { p.AcquisitionRate = 1e20 }, "acquisition_rate"},
		{"infinite acquisition rate", func(p *Parameters) { p.AcquisitionRate = math.Inf(1) }, "acquisition_rate"},
		{"negative users", func(p *Parameters) { p.InitialUsers = -1 }, "initial_users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mod(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Validate() = %v, want ErrInvalidParameter", err)
			}
			fields := InvalidFields(err)
			if len(fields) != 1 {
				t.Fatalf("got %d invalid fields, want 1: %v", len(fields), err)
			}
			if fields[0].Field != tt.field {
				t.Errorf("field = %q, want %q", fields[0].Field, tt.field)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	p := validParams()
	p.Months = 0
	p.Iterations = 0
	p.MeanCompanySize = -1

	fields := InvalidFields(p.Validate())
	if len(fields) != 3 {
		t.Fatalf("got %d invalid fields, want 3", len(fields))
	}
	want := map[string]bool{"months": true, "iterations": true, "mean_company_size": true}
	for _, f := range fields {
		if !want[f.Field] {
			t.Errorf("unexpected field %q", f.Field)
		}
	}
}

func TestAggregateSentinels(t *testing.T) {
	s := AggregateStatistics{ROI: math.NaN(), AverageBreakEvenMonth: math.NaN()}
	if s.HasROI() {
		t.Error("HasROI() = true for NaN ROI")
	}
	if s.HasBreakEven() {
		t.Error("HasBreakEven() = true with no break-even trials")
	}

	s = AggregateStatistics{ROI: 12.5, AverageBreakEvenMonth: 5, BreakEvenTrials: 3}
	if !s.HasROI() || !s.HasBreakEven() {
		t.Error("sentinels misreported for defined values")
	}
}
