package pipeline

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/theirongolddev/fcast/internal/model"
)

// SaturationScale damps acquisition as the company base grows:
// new = companies * rate * exp(-companies / SaturationScale).
const SaturationScale = 10.0

// maxNewCompanies bounds new companies in any month for a valid acquisition
// rate, since c * exp(-c/S) peaks at S/e.
var maxNewCompanies = int(math.Ceil(model.MaxAcquisitionRate * SaturationScale / math.E))

// GrowthOptions selects how new users are derived from new companies.
type GrowthOptions struct {
	// Stochastic samples one company size per whole new company.
	// When false, the expected company size is used instead.
	Stochastic bool
	// Rand is required when Stochastic is set.
	Rand *rand.Rand
}

// EmployeeDistribution is the company-size PMF over [Min, Min+len(PMF)-1].
type EmployeeDistribution struct {
	Min int
	PMF []float64
	CDF []float64
}

// NewEmployeeDistribution builds the size PMF with weight exp(-i/mean) for
// offset i from the minimum size. Anchoring at the minimum only rescales every
// weight by the same factor, so the normalized PMF is unchanged, and the first
// weight is always 1 which keeps the sum away from underflow.
func NewEmployeeDistribution(p model.Parameters) EmployeeDistribution {
	width := p.EmployeeRangeWidth()
	if width <= 0 {
		panic(fmt.Sprintf("pipeline: employee range width %d after validation", width))
	}

	weights := make([]float64, width)
	sum := 0.0
	for i := range weights {
		weights[i] = math.Exp(-float64(i) / p.MeanCompanySize)
		sum += weights[i]
	}

	d := EmployeeDistribution{
		Min: p.MinEmployeesPerCompany,
		PMF: make([]float64, width),
		CDF: make([]float64, width),
	}
	acc := 0.0
	for i, w := range weights {
		d.PMF[i] = w / sum
		acc += d.PMF[i]
		d.CDF[i] = acc
	}
	return d
}

// Mean is the expected company size.
func (d EmployeeDistribution) Mean() float64 {
	mean := 0.0
	for i, pr := range d.PMF {
		mean += pr * float64(d.Min+i)
	}
	return mean
}

// Sample draws one company size by inverse-CDF lookup.
func (d EmployeeDistribution) Sample(r *rand.Rand) int {
	u := r.Float64()
	idx := sort.SearchFloat64s(d.CDF, u)
	// Rounding can leave the last CDF entry a hair under 1.
	if idx >= len(d.CDF) {
		idx = len(d.CDF) - 1
	}
	return d.Min + idx
}

// Grow advances companies and users month by month.
func Grow(p model.Parameters, opts GrowthOptions) (model.GrowthSeries, error) {
	if err := p.Validate(); err != nil {
		return model.GrowthSeries{}, err
	}
	if opts.Stochastic && opts.Rand == nil {
		return model.GrowthSeries{}, fmt.Errorf("stochastic growth needs a random source")
	}
	return grow(p, opts), nil
}

// grow assumes validated parameters.
func grow(p model.Parameters, opts GrowthOptions) model.GrowthSeries {
	g := model.GrowthSeries{
		Companies: make([]float64, p.Months),
		Users:     make([]float64, p.Months),
	}
	g.Companies[0] = float64(p.InitialCompanies)
	g.Users[0] = float64(p.InitialUsers)

	dist := NewEmployeeDistribution(p)
	expected := dist.Mean()

	for m := 1; m < p.Months; m++ {
		prev := g.Companies[m-1]
		newCompanies := prev * p.AcquisitionRate * math.Exp(-prev/SaturationScale)
		g.Companies[m] = prev + newCompanies

		var newUsers float64
		if opts.Stochastic {
			if !(newCompanies >= 0 && newCompanies <= float64(maxNewCompanies)) {
				panic(fmt.Sprintf("pipeline: %g new companies in month %d after validation", newCompanies, m))
			}
			n := int(math.Floor(newCompanies))
			for i := 0; i < n; i++ {
				newUsers += float64(dist.Sample(opts.Rand))
			}
		} else {
			newUsers = newCompanies * expected
		}
		g.Users[m] = g.Users[m-1] + newUsers
	}

	return g
}
