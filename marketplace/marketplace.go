// Package marketplace implements the market container and the price solver
// of the model. Every good traded anywhere in a scenario has exactly one
// Market per market region; model components read prices from it and add
// their supplies and demands to it, and the solver adjusts prices until the
// markets flagged for solving clear.
//
// Markets are stored in a chained hash map keyed by market region and good,
// with a second map translating each model region to its market region, so
// regions can share one market for a good.
package marketplace

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/anantjoshi01/gcam-core/hashmap"
	"github.com/anantjoshi01/gcam-core/internal/observability"
)

// NoMarketPrice - Price returned for a good that has no market. It is large
// enough to choke off any demand formulation that sees it.
const NoMarketPrice float64 = math.MaxFloat64

// Marketplace - The container of all markets in one scenario.
type Marketplace struct {
	maxPeriods   int
	markets      *hashmap.Map[string, *Market]
	regionLookup *hashmap.Map[string, string]
	metrics      observability.MetricsRecorder
	logger       *slog.Logger
}

// New - Returns a new Marketplace for the given number of model periods.
//
// It returns:
//   - m is a pointer to the new Marketplace
//   - err is a standard error if maxPeriods is below 1
func New(maxPeriods int) (m *Marketplace, err error) {
	if maxPeriods < 1 {
		err = fmt.Errorf("maxPeriods must be a positive value higher than 0 (zero)")
		return
	}

	m = &Marketplace{
		maxPeriods:   maxPeriods,
		markets:      hashmap.NewStringMap[*Market](),
		regionLookup: hashmap.NewStringMap[string](),
		metrics:      observability.NoopMetrics{},
		logger:       slog.Default(),
	}
	m.markets.SetStatsRecorder(observability.TableStats("markets", m.metrics))

	return
}

// SetMetricsRecorder - Attaches a metrics recorder used for solver and
// table metrics. A nil recorder restores the no-op recorder.
func (M *Marketplace) SetMetricsRecorder(metrics observability.MetricsRecorder) {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	M.metrics = metrics
	M.markets.SetStatsRecorder(observability.TableStats("markets", metrics))
}

// CreateMarket - Creates a market for a good in a market region unless one
// already exists, and maps the model region onto it. Several model regions
// can share one market by naming the same market region.
//   - regionName is the model region joining the market
//   - marketName is the market region the good trades in
//   - goodName is the traded good
//   - marketType is the kind of market to create
//
// It returns:
//   - created is true if a new market was created, false if the region
//     joined an existing one
func (M *Marketplace) CreateMarket(regionName, marketName, goodName string, marketType MarketType) (created bool) {
	marketKey := marketKey(marketName, goodName)

	if M.markets.Find(marketKey) == M.markets.End() {
		M.markets.Insert(marketKey, newMarket(goodName, marketName, marketType, M.maxPeriods))
		created = true
	}

	M.regionLookup.Insert(regionKey(regionName, goodName), marketKey)
	return
}

// SetPriceVector - Sets the full period price vector of a market. Periods
// beyond the market's range are ignored.
func (M *Marketplace) SetPriceVector(goodName, regionName string, prices []float64) {
	market := M.market(goodName, regionName)
	if market == nil {
		return
	}

	for period, price := range prices {
		if period >= M.maxPeriods {
			break
		}
		market.prices[period] = price
	}
}

// SetMarketToSolve - Flags a market to be cleared by the solver in the
// given period.
func (M *Marketplace) SetMarketToSolve(goodName, regionName string, period int) {
	market := M.market(goodName, regionName)
	if market == nil {
		return
	}
	market.toSolve[period] = true
}

// GetPrice - Returns the market price of a good for a model region and
// period, or NoMarketPrice if the good has no market there.
func (M *Marketplace) GetPrice(goodName, regionName string, period int) float64 {
	market := M.market(goodName, regionName)
	if market == nil {
		return NoMarketPrice
	}
	return market.prices[period]
}

// SetPrice - Sets the market price of a good for a period.
func (M *Marketplace) SetPrice(goodName, regionName string, price float64, period int) {
	market := M.market(goodName, regionName)
	if market == nil {
		return
	}
	market.prices[period] = price
}

// AddToSupply - Adds a quantity to the market supply of a good for a
// period. Supplies accumulate within one solver iteration and are zeroed
// between iterations.
func (M *Marketplace) AddToSupply(goodName, regionName string, quantity float64, period int) {
	market := M.market(goodName, regionName)
	if market == nil {
		return
	}
	market.supplies[period] += quantity
}

// AddToDemand - Adds a quantity to the market demand of a good for a
// period.
func (M *Marketplace) AddToDemand(goodName, regionName string, quantity float64, period int) {
	market := M.market(goodName, regionName)
	if market == nil {
		return
	}
	market.demands[period] += quantity
}

// GetSupply - Returns the accumulated market supply of a good for a period.
func (M *Marketplace) GetSupply(goodName, regionName string, period int) float64 {
	market := M.market(goodName, regionName)
	if market == nil {
		return 0
	}
	return market.supplies[period]
}

// GetDemand - Returns the accumulated market demand of a good for a period.
func (M *Marketplace) GetDemand(goodName, regionName string, period int) float64 {
	market := M.market(goodName, regionName)
	if market == nil {
		return 0
	}
	return market.demands[period]
}

// GetMarketInfo - Returns the Info attached to a market period. With
// mustExist the market has to be present, otherwise nil is returned and a
// warning logged.
func (M *Marketplace) GetMarketInfo(goodName, regionName string, period int, mustExist bool) *Info {
	market := M.market(goodName, regionName)
	if market == nil {
		if mustExist {
			M.logger.Warn("market info requested for missing market",
				slog.String("good", goodName),
				slog.String("region", regionName),
			)
		}
		return nil
	}
	return market.info(period)
}

// NullSuppliesAndDemands - Zeroes the supply and demand of every market for
// a period so the next solver iteration accumulates from scratch.
func (M *Marketplace) NullSuppliesAndDemands(period int) {
	for it := M.markets.Begin(); it != M.markets.End(); it = it.Next() {
		market := it.Value()
		market.supplies[period] = 0
		market.demands[period] = 0
	}
}

// market - Resolves a good and model region to its market, or nil when the
// region never joined a market for the good.
func (M *Marketplace) market(goodName, regionName string) *Market {
	keyIt := M.regionLookup.FindConst(regionKey(regionName, goodName))
	if keyIt == M.regionLookup.ConstEnd() {
		M.logger.Warn("no market for good in region",
			slog.String("good", goodName),
			slog.String("region", regionName),
		)
		return nil
	}

	marketIt := M.markets.FindConst(keyIt.Value())
	if marketIt == M.markets.ConstEnd() {
		panic(fmt.Sprintf("marketplace: region lookup names missing market %q", keyIt.Value()))
	}
	return marketIt.Value()
}

// marketKey - Returns the market map key for a market region and good.
func marketKey(marketName, goodName string) string {
	return marketName + "|" + goodName
}

// regionKey - Returns the region lookup key for a model region and good.
func regionKey(regionName, goodName string) string {
	return regionName + "|" + goodName
}
