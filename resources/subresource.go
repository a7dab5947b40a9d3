package resources

import (
	"fmt"
	"math"
	"sort"
)

// smallNumber - Threshold under which an annual production is treated as
// zero when forming weighted averages.
const smallNumber float64 = 1e-6

// SubResource - One deposit or site group within a resource. Implementations
// differ in how production responds to price.
type SubResource interface {
	// Name - Returns the subresource name.
	Name() string

	// CompleteInit - Sizes the period vectors. Called once per model run
	// before any supply calculation.
	CompleteInit(maxPeriods int)

	// CumulSupply - Computes cumulative production up to and including the
	// period at the given price.
	CumulSupply(price float64, period int)

	// AnnualSupply - Computes annual production for the period. CumulSupply
	// for the period has already run when this is called.
	AnnualSupply(period int, price, prevPrice float64)

	// CumulativeProduction - Returns cumulative production for a period.
	CumulativeProduction(period int) float64

	// AnnualProduction - Returns annual production for a period.
	AnnualProduction(period int) float64

	// Available - Returns the resource remaining in a period.
	Available(period int) float64

	// Variance - Returns the supply variance of the subresource.
	Variance() float64

	// AverageCapacityFactor - Returns the average capacity factor of the
	// subresource.
	AverageCapacityFactor() float64
}

// Grade - One cost step of a graded subresource: a quantity that becomes
// economic once the market price covers its extraction cost.
type Grade struct {
	Name           string
	Available      float64
	ExtractionCost float64
}

// GradedSubResource - A depletable deposit described by extraction cost
// grades. Cumulative production at a price is the total quantity in all
// grades whose cost the price covers; annual production is the increase in
// cumulative production since the previous period.
type GradedSubResource struct {
	name       string
	grades     []Grade
	total      float64
	cumulProd  []float64
	annualProd []float64
	available  []float64
}

// NewGradedSubResource - Returns a graded subresource over the given cost
// grades.
//
// It returns:
//   - s is a pointer to the new subresource
//   - err is a standard error if name is empty, no grades are given or a
//     grade has a negative quantity or cost
func NewGradedSubResource(name string, grades []Grade) (s *GradedSubResource, err error) {
	if name == "" {
		err = fmt.Errorf("subresource name can not be empty")
		return
	}
	if len(grades) == 0 {
		err = fmt.Errorf("subresource %s needs at least one grade", name)
		return
	}

	total := 0.0
	sorted := append([]Grade(nil), grades...)
	for _, grade := range sorted {
		if grade.Available < 0 || grade.ExtractionCost < 0 {
			err = fmt.Errorf("grade %s of subresource %s has negative quantity or cost", grade.Name, name)
			return
		}
		total += grade.Available
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ExtractionCost < sorted[j].ExtractionCost })

	s = &GradedSubResource{name: name, grades: sorted, total: total}
	return
}

// Name - Returns the subresource name.
func (G *GradedSubResource) Name() string { return G.name }

// CompleteInit - Sizes the period vectors.
func (G *GradedSubResource) CompleteInit(maxPeriods int) {
	G.cumulProd = make([]float64, maxPeriods)
	G.annualProd = make([]float64, maxPeriods)
	G.available = make([]float64, maxPeriods)
}

// CumulSupply - Cumulative production is the quantity in all grades whose
// extraction cost is covered by the price.
func (G *GradedSubResource) CumulSupply(price float64, period int) {
	cumul := 0.0
	for _, grade := range G.grades {
		if grade.ExtractionCost > price {
			break
		}
		cumul += grade.Available
	}

	// A deposit never un-produces: cumulative production can not drop below
	// the previous period even if the price does.
	if period > 0 && cumul < G.cumulProd[period-1] {
		cumul = G.cumulProd[period-1]
	}
	G.cumulProd[period] = cumul
}

// AnnualSupply - Annual production is the growth in cumulative production
// since the previous period.
func (G *GradedSubResource) AnnualSupply(period int, price, prevPrice float64) {
	if period == 0 {
		G.annualProd[period] = G.cumulProd[period]
	} else {
		G.annualProd[period] = math.Max(G.cumulProd[period]-G.cumulProd[period-1], 0)
	}
	G.available[period] = math.Max(G.total-G.cumulProd[period], 0)
}

// CumulativeProduction - Returns cumulative production for a period.
func (G *GradedSubResource) CumulativeProduction(period int) float64 { return G.cumulProd[period] }

// AnnualProduction - Returns annual production for a period.
func (G *GradedSubResource) AnnualProduction(period int) float64 { return G.annualProd[period] }

// Available - Returns the quantity still in the ground in a period.
func (G *GradedSubResource) Available(period int) float64 { return G.available[period] }

// Variance - Depletable supply carries no variance.
func (G *GradedSubResource) Variance() float64 { return 0 }

// AverageCapacityFactor - Depletable supply has full capacity.
func (G *GradedSubResource) AverageCapacityFactor() float64 { return 1 }

// RenewableSubResource - A non-depleting site whose annual output scales
// with price around a base price, capped at the site's maximum annual
// output.
type RenewableSubResource struct {
	name            string
	maxAnnual       float64
	basePrice       float64
	priceElasticity float64
	variance        float64
	capacityFactor  float64
	cumulProd       []float64
	annualProd      []float64
	available       []float64
}

// NewRenewableSubResource - Returns a renewable subresource.
//   - maxAnnual is the maximum annual output of the site
//   - basePrice is the price at which the site produces its full output
//   - priceElasticity shapes output response below the base price
//   - variance and capacityFactor describe the intermittency of the site
//
// It returns:
//   - s is a pointer to the new subresource
//   - err is a standard error on an empty name or non-positive maxAnnual or basePrice
func NewRenewableSubResource(name string, maxAnnual, basePrice, priceElasticity, variance, capacityFactor float64) (s *RenewableSubResource, err error) {
	if name == "" {
		err = fmt.Errorf("subresource name can not be empty")
		return
	}
	if maxAnnual <= 0 {
		err = fmt.Errorf("subresource %s must have a positive maximum annual output", name)
		return
	}
	if basePrice <= 0 {
		err = fmt.Errorf("subresource %s must have a positive base price", name)
		return
	}

	s = &RenewableSubResource{
		name:            name,
		maxAnnual:       maxAnnual,
		basePrice:       basePrice,
		priceElasticity: priceElasticity,
		variance:        variance,
		capacityFactor:  capacityFactor,
	}
	return
}

// Name - Returns the subresource name.
func (R *RenewableSubResource) Name() string { return R.name }

// CompleteInit - Sizes the period vectors.
func (R *RenewableSubResource) CompleteInit(maxPeriods int) {
	R.cumulProd = make([]float64, maxPeriods)
	R.annualProd = make([]float64, maxPeriods)
	R.available = make([]float64, maxPeriods)
}

// CumulSupply - A renewable site does not deplete, cumulative production
// for a period is just that period's output. The real computation happens
// in AnnualSupply; this keeps the bookkeeping consistent for callers that
// sum cumulative production.
func (R *RenewableSubResource) CumulSupply(price float64, period int) {
	R.cumulProd[period] = R.annualAt(price)
}

// AnnualSupply - Output scales with price relative to the base price and is
// capped at the site maximum.
func (R *RenewableSubResource) AnnualSupply(period int, price, prevPrice float64) {
	R.annualProd[period] = R.annualAt(price)
	R.available[period] = R.maxAnnual - R.annualProd[period]
}

// annualAt - Returns annual output at a price.
func (R *RenewableSubResource) annualAt(price float64) float64 {
	if price <= 0 {
		return 0
	}
	produced := R.maxAnnual * math.Pow(price/R.basePrice, R.priceElasticity)
	return math.Min(produced, R.maxAnnual)
}

// CumulativeProduction - Returns cumulative production for a period.
func (R *RenewableSubResource) CumulativeProduction(period int) float64 { return R.cumulProd[period] }

// AnnualProduction - Returns annual production for a period.
func (R *RenewableSubResource) AnnualProduction(period int) float64 { return R.annualProd[period] }

// Available - Returns the unused site capacity in a period.
func (R *RenewableSubResource) Available(period int) float64 { return R.available[period] }

// Variance - Returns the supply variance of the site.
func (R *RenewableSubResource) Variance() float64 { return R.variance }

// AverageCapacityFactor - Returns the average capacity factor of the site.
func (R *RenewableSubResource) AverageCapacityFactor() float64 { return R.capacityFactor }

// FixedSubResource - A site producing a fixed quantity per period no matter
// the price.
type FixedSubResource struct {
	name       string
	quantities []float64
	cumulProd  []float64
	annualProd []float64
}

// NewFixedSubResource - Returns a fixed-output subresource.
//   - quantities is the output per model period; missing trailing periods
//     produce the last given quantity
//
// It returns:
//   - s is a pointer to the new subresource
//   - err is a standard error on an empty name or no quantities
func NewFixedSubResource(name string, quantities []float64) (s *FixedSubResource, err error) {
	if name == "" {
		err = fmt.Errorf("subresource name can not be empty")
		return
	}
	if len(quantities) == 0 {
		err = fmt.Errorf("subresource %s needs at least one quantity", name)
		return
	}

	s = &FixedSubResource{name: name, quantities: append([]float64(nil), quantities...)}
	return
}

// Name - Returns the subresource name.
func (F *FixedSubResource) Name() string { return F.name }

// CompleteInit - Sizes the period vectors.
func (F *FixedSubResource) CompleteInit(maxPeriods int) {
	F.cumulProd = make([]float64, maxPeriods)
	F.annualProd = make([]float64, maxPeriods)
}

// CumulSupply - Accumulates the fixed output over periods.
func (F *FixedSubResource) CumulSupply(price float64, period int) {
	cumul := 0.0
	for p := 0; p <= period; p++ {
		cumul += F.quantityFor(p)
	}
	F.cumulProd[period] = cumul
}

// AnnualSupply - Output is the configured quantity for the period.
func (F *FixedSubResource) AnnualSupply(period int, price, prevPrice float64) {
	F.annualProd[period] = F.quantityFor(period)
}

// quantityFor - Returns the configured quantity for a period, holding the
// last given quantity for later periods.
func (F *FixedSubResource) quantityFor(period int) float64 {
	if period >= len(F.quantities) {
		return F.quantities[len(F.quantities)-1]
	}
	return F.quantities[period]
}

// CumulativeProduction - Returns cumulative production for a period.
func (F *FixedSubResource) CumulativeProduction(period int) float64 { return F.cumulProd[period] }

// AnnualProduction - Returns annual production for a period.
func (F *FixedSubResource) AnnualProduction(period int) float64 { return F.annualProd[period] }

// Available - Fixed output has no meaningful remaining stock.
func (F *FixedSubResource) Available(period int) float64 { return 0 }

// Variance - Fixed supply carries no variance.
func (F *FixedSubResource) Variance() float64 { return 0 }

// AverageCapacityFactor - Fixed supply has full capacity.
func (F *FixedSubResource) AverageCapacityFactor() float64 { return 1 }
