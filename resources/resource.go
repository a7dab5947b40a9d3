// Package resources implements the natural-resource supply side of the
// model. A resource owns a set of subresources (deposits or sites), creates
// the market its good trades in and responds to the market price with annual
// production.
package resources

import (
	"fmt"

	"github.com/anantjoshi01/gcam-core/marketplace"
	"github.com/anantjoshi01/gcam-core/modeltime"
)

// calSupplyNotFixed - Market info flag stating that supplies of this good
// are not fixed by calibration.
const calSupplyNotFixed float64 = -1

// Resource - Interface for all resource sector implementations.
type Resource interface {
	// Name - Returns the resource (and good) name.
	Name() string

	// CompleteInit - Finishes setup once per model run: initializes
	// subresources and creates the resource's market.
	CompleteInit(regionName string, market *marketplace.Marketplace, time *modeltime.Modeltime) error

	// CalcSupply - Computes annual production for the period at the current
	// market price and adds it to market supply.
	CalcSupply(regionName string, period int)

	// AnnualProduction - Returns total annual production across
	// subresources for a period.
	AnnualProduction(period int) float64

	// CumulativeProduction - Returns total cumulative production across
	// subresources for a period.
	CumulativeProduction(period int) float64

	// Available - Returns the total remaining resource for a period.
	Available(period int) float64

	// Price - Returns the resource price for a period.
	Price(period int) float64

	// SetCalibratedSupplyInfo - Flags in market info that supplies are not
	// fixed for the period.
	SetCalibratedSupplyInfo(regionName string, period int)
}

// resourceBase - State and behavior shared by all resource sector types.
type resourceBase struct {
	name         string
	marketName   string
	prices       []float64
	available    []float64
	annualProd   []float64
	cumulProd    []float64
	subResources []SubResource
	market       *marketplace.Marketplace
}

// newResourceBase - Returns the shared base after input validation.
func newResourceBase(name, marketName string, prices []float64, subResources []SubResource) (base resourceBase, err error) {
	if name == "" {
		err = fmt.Errorf("resource name can not be empty")
		return
	}
	if marketName == "" {
		err = fmt.Errorf("resource %s must name the market it trades in", name)
		return
	}
	if len(subResources) == 0 {
		err = fmt.Errorf("resource %s needs at least one subresource", name)
		return
	}

	base = resourceBase{
		name:         name,
		marketName:   marketName,
		prices:       append([]float64(nil), prices...),
		subResources: subResources,
	}
	return
}

// Name - Returns the resource name.
func (R *resourceBase) Name() string { return R.name }

// CompleteInit - Sizes period vectors, initializes subresources and sets up
// the market. Only called once per model run; markets are not necessarily
// set before this runs.
func (R *resourceBase) CompleteInit(regionName string, market *marketplace.Marketplace, time *modeltime.Modeltime) error {
	if market == nil || time == nil {
		return fmt.Errorf("resource %s needs a marketplace and a modeltime", R.name)
	}

	maxPeriods := time.MaxPeriods()
	R.available = make([]float64, maxPeriods)
	R.annualProd = make([]float64, maxPeriods)
	R.cumulProd = make([]float64, maxPeriods)
	if len(R.prices) < maxPeriods {
		// Hold the last read-in price for periods without one.
		last := 1.0
		if len(R.prices) > 0 {
			last = R.prices[len(R.prices)-1]
		}
		for len(R.prices) < maxPeriods {
			R.prices = append(R.prices, last)
		}
	}

	for _, sub := range R.subResources {
		sub.CompleteInit(maxPeriods)
	}

	R.market = market
	R.setMarket(regionName, maxPeriods)
	return nil
}

// setMarket - Creates the market for the resource's good and flags it to be
// solved in every period after the base period.
func (R *resourceBase) setMarket(regionName string, maxPeriods int) {
	if R.market.CreateMarket(regionName, R.marketName, R.name, marketplace.Normal) {
		R.market.SetPriceVector(R.name, regionName, R.prices)
		for period := 1; period < maxPeriods; period++ {
			R.market.SetMarketToSolve(R.name, regionName, period)
		}
	}
}

// CalcSupply - Reads the market price, computes annual supply and adds it
// to the market.
func (R *resourceBase) CalcSupply(regionName string, period int) {
	price := R.market.GetPrice(R.name, regionName, period)
	prevPrice := price
	if period > 0 {
		prevPrice = R.market.GetPrice(R.name, regionName, period-1)
	}

	R.annualSupply(regionName, period, price, prevPrice)
	R.market.AddToSupply(R.name, regionName, R.annualProd[period], period)
}

// cumulSupply - Sums cumulative production over subresources at a price.
func (R *resourceBase) cumulSupply(price float64, period int) {
	R.cumulProd[period] = 0
	R.prices[period] = price
	for _, sub := range R.subResources {
		sub.CumulSupply(price, period)
		R.cumulProd[period] += sub.CumulativeProduction(period)
	}
}

// annualSupply - Sums annual production and availability over subresources.
func (R *resourceBase) annualSupply(regionName string, period int, price, prevPrice float64) {
	R.annualProd[period] = 0
	R.available[period] = 0

	R.cumulSupply(price, period)

	for _, sub := range R.subResources {
		sub.AnnualSupply(period, price, prevPrice)
		R.annualProd[period] += sub.AnnualProduction(period)
		R.available[period] += sub.Available(period)
	}
}

// AnnualProduction - Returns total annual production for a period.
func (R *resourceBase) AnnualProduction(period int) float64 { return R.annualProd[period] }

// CumulativeProduction - Returns total cumulative production for a period.
func (R *resourceBase) CumulativeProduction(period int) float64 { return R.cumulProd[period] }

// Available - Returns the total remaining resource for a period.
func (R *resourceBase) Available(period int) float64 { return R.available[period] }

// Price - Returns the resource price for a period.
func (R *resourceBase) Price(period int) float64 { return R.prices[period] }

// SetCalibratedSupplyInfo - Flags that supplies are not fixed for the
// period. This will need to change once resource supplies are calibrated.
func (R *resourceBase) SetCalibratedSupplyInfo(regionName string, period int) {
	info := R.market.GetMarketInfo(R.name, regionName, period, true)
	if info != nil {
		info.SetDouble("calSupply", calSupplyNotFixed)
	}
}

// DepletableResource - A resource whose deposits run down as they are
// produced, described by extraction cost grades.
type DepletableResource struct {
	resourceBase
}

// NewDepletableResource - Returns a depletable resource over graded
// subresources.
//
// It returns:
//   - r is a pointer to the new resource
//   - err is a standard error on invalid inputs
func NewDepletableResource(name, marketName string, prices []float64, subResources []SubResource) (r *DepletableResource, err error) {
	base, err := newResourceBase(name, marketName, prices, subResources)
	if err != nil {
		return
	}

	r = &DepletableResource{resourceBase: base}
	return
}

// FixedResource - A resource producing read-in quantities no matter the
// price.
type FixedResource struct {
	resourceBase
}

// NewFixedResource - Returns a fixed-output resource.
//
// It returns:
//   - r is a pointer to the new resource
//   - err is a standard error on invalid inputs
func NewFixedResource(name, marketName string, prices []float64, subResources []SubResource) (r *FixedResource, err error) {
	base, err := newResourceBase(name, marketName, prices, subResources)
	if err != nil {
		return
	}

	r = &FixedResource{resourceBase: base}
	return
}

// RenewableResource - A non-depleting resource. On top of the base supply
// behavior it computes the production-weighted variance and capacity factor
// of its sites and publishes them in market info for consumers that must
// handle intermittency.
type RenewableResource struct {
	resourceBase
	resourceVariance       []float64
	resourceCapacityFactor []float64
}

// NewRenewableResource - Returns a renewable resource.
//
// It returns:
//   - r is a pointer to the new resource
//   - err is a standard error on invalid inputs
func NewRenewableResource(name, marketName string, prices []float64, subResources []SubResource) (r *RenewableResource, err error) {
	base, err := newResourceBase(name, marketName, prices, subResources)
	if err != nil {
		return
	}

	r = &RenewableResource{resourceBase: base}
	return
}

// CompleteInit - Extends the base initialization with the variance and
// capacity factor vectors.
func (R *RenewableResource) CompleteInit(regionName string, market *marketplace.Marketplace, time *modeltime.Modeltime) error {
	if err := R.resourceBase.CompleteInit(regionName, market, time); err != nil {
		return err
	}

	R.resourceVariance = make([]float64, time.MaxPeriods())
	R.resourceCapacityFactor = make([]float64, time.MaxPeriods())
	return nil
}

// CalcSupply - Reads the market price, computes annual supply including the
// weighted intermittency measures and adds production to the market.
func (R *RenewableResource) CalcSupply(regionName string, period int) {
	price := R.market.GetPrice(R.name, regionName, period)
	prevPrice := price
	if period > 0 {
		prevPrice = R.market.GetPrice(R.name, regionName, period-1)
	}

	R.annualSupply(regionName, period, price, prevPrice)
	R.market.AddToSupply(R.name, regionName, R.annualProd[period], period)
}

// annualSupply - Adds to the base behavior a production-weighted average
// variance and capacity factor over the subresources, published in market
// info.
func (R *RenewableResource) annualSupply(regionName string, period int, price, prevPrice float64) {
	R.cumulSupply(price, period)

	R.annualProd[period] = 0
	R.available[period] = 0
	R.resourceVariance[period] = 0
	R.resourceCapacityFactor[period] = 0

	for _, sub := range R.subResources {
		sub.AnnualSupply(period, price, prevPrice)
		R.annualProd[period] += sub.AnnualProduction(period)
		R.available[period] += sub.Available(period)
		R.resourceVariance[period] += sub.AnnualProduction(period) * sub.Variance()
		R.resourceCapacityFactor[period] += sub.AnnualProduction(period) * sub.AverageCapacityFactor()
	}

	if R.annualProd[period] > smallNumber {
		R.resourceVariance[period] /= R.annualProd[period]
		R.resourceCapacityFactor[period] /= R.annualProd[period]
	}

	info := R.market.GetMarketInfo(R.name, regionName, period, true)
	if info != nil {
		info.SetDouble("resourceVariance", R.resourceVariance[period])
		info.SetDouble("resourceCapacityFactor", R.resourceCapacityFactor[period])
	}
}
