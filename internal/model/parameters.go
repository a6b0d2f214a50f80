// Package model defines domain types for fcast forecasts.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Horizon and batch limits enforced by Validate.
const (
	MaxMonths     = 120
	MaxIterations = 10000
	// MaxAcquisitionRate keeps new companies per month small enough to
	// sample one by one: rate * 10/e at the saturation peak.
	MaxAcquisitionRate = 10.0
)

// Parameters is the input record for one forecast run.
// It is passed by value and never mutated by the pipeline.
type Parameters struct {
	InitialInvestment float64
	ColocationExpense float64
	MarketingExpense  float64
	Months            int

	PricePerGB   float64
	CostPerGB    float64
	AvgGBPerUser float64

	InitialUsers     int
	InitialCompanies int

	MinEmployeesPerCompany int
	MaxEmployeesPerCompany int
	MeanCompanySize        float64
	AcquisitionRate        float64

	// InitialStorage is the provisioned capacity in GB before overage billing.
	InitialStorage float64

	// Iterations is the number of Monte Carlo trials.
	Iterations int
}

// MonthlyExpense is the flat per-month outgoing.
func (p Parameters) MonthlyExpense() float64 {
	return p.ColocationExpense + p.MarketingExpense
}

// EmployeeRangeWidth is the number of distinct company sizes in
// [MinEmployeesPerCompany, MaxEmployeesPerCompany].
func (p Parameters) EmployeeRangeWidth() int {
	return p.MaxEmployeesPerCompany - p.MinEmployeesPerCompany + 1
}

// ErrInvalidParameter is matched by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the offending field and the constraint it broke.
type InvalidParameterError struct {
	Field      string
	Constraint string
	Value      any
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: must be %s", e.Field, e.Value, e.Constraint)
}

// Is lets errors.Is(err, ErrInvalidParameter) match.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// InvalidParameter builds an *InvalidParameterError.
func InvalidParameter(field, constraint string, value any) error {
	return &InvalidParameterError{Field: field, Constraint: constraint, Value: value}
}

// InvalidFields extracts every *InvalidParameterError from err,
// including ones aggregated with errors.Join.
func InvalidFields(err error) []*InvalidParameterError {
	if err == nil {
		return nil
	}
	var out []*InvalidParameterError
	var walk func(error)
	walk = func(e error) {
		if ipe, ok := e.(*InvalidParameterError); ok {
			out = append(out, ipe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := u.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

// Validate checks every field and reports all violations at once.
func (p Parameters) Validate() error {
	var errs []error

	nonNegative := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, InvalidParameter(field, "a finite number", v))
			return
		}
		if v < 0 {
			errs = append(errs, InvalidParameter(field, ">= 0", v))
		}
	}

	nonNegative("initial_investment", p.InitialInvestment)
	nonNegative("colocation_expense", p.ColocationExpense)
	nonNegative("marketing_expense", p.MarketingExpense)
	nonNegative("price_per_gb", p.PricePerGB)
	nonNegative("cost_per_gb", p.CostPerGB)
	nonNegative("avg_gb_per_user", p.AvgGBPerUser)
	nonNegative("initial_storage", p.InitialStorage)

	if math.IsNaN(p.AcquisitionRate) || p.AcquisitionRate < 0 || p.AcquisitionRate > MaxAcquisitionRate {
		errs = append(errs, InvalidParameter("acquisition_rate", fmt.Sprintf("between 0 and %g", MaxAcquisitionRate), p.AcquisitionRate))
	}
	if p.Months < 1 || p.Months > MaxMonths {
		errs = append(errs, InvalidParameter("months", fmt.Sprintf("between 1 and %d", MaxMonths), p.Months))
	}
	if p.Iterations < 1 || p.Iterations > MaxIterations {
		errs = append(errs, InvalidParameter("iterations", fmt.Sprintf("between 1 and %d", MaxIterations), p.Iterations))
	}
	if p.InitialUsers < 0 {
		errs = append(errs, InvalidParameter("initial_users", ">= 0", p.InitialUsers))
	}
	if p.InitialCompanies < 0 {
		errs = append(errs, InvalidParameter("initial_companies", ">= 0", p.InitialCompanies))
	}
	if p.MinEmployeesPerCompany < 1 {
		errs = append(errs, InvalidParameter("min_employees_per_company", ">= 1", p.MinEmployeesPerCompany))
	}
	if p.MaxEmployeesPerCompany < p.MinEmployeesPerCompany {
		errs = append(errs, InvalidParameter("max_employees_per_company",
			fmt.Sprintf(">= min_employees_per_company (%d)", p.MinEmployeesPerCompany), p.MaxEmployeesPerCompany))
	}
	if math.IsNaN(p.MeanCompanySize) || math.IsInf(p.MeanCompanySize, 0) || p.MeanCompanySize <= 0 {
		errs = append(errs, InvalidParameter("mean_company_size", "> 0", p.MeanCompanySize))
	}

	return errors.Join(errs...)
}
