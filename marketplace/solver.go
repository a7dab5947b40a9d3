package marketplace

import (
	"context"
	"log/slog"
	"math"
)

// SolverConfig - Tuning knobs for the price adjustment solver.
//   - MaxIterations is the cap on price adjustment rounds per period
//   - Tolerance is the relative excess demand under which a market counts as cleared
//   - Damping scales the price step taken per round
type SolverConfig struct {
	MaxIterations int
	Tolerance     float64
	Damping       float64
}

// DefaultSolverConfig - Returns the solver configuration used unless a
// scenario overrides it.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MaxIterations: 100,
		Tolerance:     1e-3,
		Damping:       0.25,
	}
}

// minTradeVolume - Floor applied to the trade volume when normalizing
// excess demand, keeping empty markets from dividing by zero.
const minTradeVolume float64 = 1e-9

// minSolvedPrice - Floor applied to prices during adjustment so a price can
// never be driven to zero or below.
const minSolvedPrice float64 = 1e-6

// Solve - Clears the markets flagged for solving in a period. calc must
// recompute and add all supplies and demands for the period from current
// prices; it is called once per adjustment round after supplies and demands
// have been zeroed.
//
// Prices move against excess demand: excess demand raises the price, excess
// supply lowers it. The round loop stops when every flagged market's
// relative excess demand is within the configured tolerance.
//
// It returns:
//   - converged is true if all flagged markets cleared within the iteration cap
//   - iterations is the number of adjustment rounds taken
func (M *Marketplace) Solve(ctx context.Context, period int, config SolverConfig, calc func(period int)) (converged bool, iterations int) {
	for iterations = 1; iterations <= config.MaxIterations; iterations++ {
		M.NullSuppliesAndDemands(period)
		calc(period)

		worst := 0.0
		for it := M.markets.Begin(); it != M.markets.End(); it = it.Next() {
			market := it.Value()
			if !market.toSolve[period] {
				continue
			}

			M.metrics.RecordSolverIteration(ctx, marketKey(market.marketName, market.good))

			excess := market.demands[period] - market.supplies[period]
			volume := math.Max(market.demands[period]+market.supplies[period], minTradeVolume)
			relative := math.Abs(excess) / volume
			if relative > worst {
				worst = relative
			}
			if relative <= config.Tolerance {
				continue
			}

			price := market.prices[period] * (1 + config.Damping*excess/volume)
			market.prices[period] = math.Max(price, minSolvedPrice)
		}

		if worst <= config.Tolerance {
			converged = true
			break
		}
	}
	if iterations > config.MaxIterations {
		iterations = config.MaxIterations
	}

	for it := M.markets.Begin(); it != M.markets.End(); it = it.Next() {
		market := it.Value()
		if market.toSolve[period] {
			M.metrics.RecordMarketCleared(ctx, marketKey(market.marketName, market.good), period, converged)
		}
	}

	if !converged {
		M.logger.Warn("solver hit iteration cap without clearing all markets",
			slog.Int("period", period),
			slog.Int("iterations", iterations),
		)
	}

	return
}
