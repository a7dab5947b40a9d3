// Package scenario wires a model run together: it builds the modeltime,
// marketplace and resource sectors from a configuration, runs each period
// through the solver and exposes the results for output.
package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anantjoshi01/gcam-core/internal/observability"
	"github.com/anantjoshi01/gcam-core/marketplace"
	"github.com/anantjoshi01/gcam-core/modeltime"
	"github.com/anantjoshi01/gcam-core/resources"
)

// demand - Fixed final demand for a good, holding the last quantity for
// periods beyond the read-in data.
type demand struct {
	good       string
	quantities []float64
}

// quantityFor - Returns the demand quantity for a period.
func (D demand) quantityFor(period int) float64 {
	if period >= len(D.quantities) {
		return D.quantities[len(D.quantities)-1]
	}
	return D.quantities[period]
}

// region - One model region holding its resource sectors and demands.
type region struct {
	name      string
	resources []resources.Resource
	demands   []demand
}

// Scenario - One configured model run.
type Scenario struct {
	name    string
	time    *modeltime.Modeltime
	market  *marketplace.Marketplace
	regions []*region
	solver  marketplace.SolverConfig
	logger  *slog.Logger
}

// New - Builds a Scenario from a configuration and completes the
// initialization of every resource sector, which creates all markets.
//
// It returns:
//   - s is a pointer to the new Scenario
//   - err is a standard error if the configuration does not build
func New(config Config) (s *Scenario, err error) {
	time, err := modeltime.New(config.Years)
	if err != nil {
		err = fmt.Errorf("scenario %s: %w", config.Name, err)
		return
	}

	market, err := marketplace.New(time.MaxPeriods())
	if err != nil {
		err = fmt.Errorf("scenario %s: %w", config.Name, err)
		return
	}

	solver := marketplace.DefaultSolverConfig()
	if config.Solver != nil {
		if config.Solver.MaxIterations > 0 {
			solver.MaxIterations = config.Solver.MaxIterations
		}
		if config.Solver.Tolerance > 0 {
			solver.Tolerance = config.Solver.Tolerance
		}
		if config.Solver.Damping > 0 {
			solver.Damping = config.Solver.Damping
		}
	}

	s = &Scenario{
		name:   config.Name,
		time:   time,
		market: market,
		solver: solver,
		logger: slog.Default(),
	}

	for _, regionConfig := range config.Regions {
		var reg *region
		reg, err = buildRegion(regionConfig)
		if err != nil {
			err = fmt.Errorf("scenario %s: %w", config.Name, err)
			s = nil
			return
		}
		s.regions = append(s.regions, reg)
	}

	for _, reg := range s.regions {
		for _, resource := range reg.resources {
			if err = resource.CompleteInit(reg.name, market, time); err != nil {
				err = fmt.Errorf("scenario %s: %w", config.Name, err)
				s = nil
				return
			}
		}
	}

	return
}

// buildRegion - Constructs one region's resources and demands.
func buildRegion(config RegionConfig) (reg *region, err error) {
	reg = &region{name: config.Name}

	for _, resourceConfig := range config.Resources {
		var resource resources.Resource
		resource, err = buildResource(resourceConfig)
		if err != nil {
			err = fmt.Errorf("region %s: %w", config.Name, err)
			reg = nil
			return
		}
		reg.resources = append(reg.resources, resource)
	}

	for _, demandConfig := range config.Demands {
		reg.demands = append(reg.demands, demand{
			good:       demandConfig.Good,
			quantities: append([]float64(nil), demandConfig.Quantities...),
		})
	}

	return
}

// buildResource - Constructs one resource sector from its configuration.
func buildResource(config ResourceConfig) (resource resources.Resource, err error) {
	var subs []resources.SubResource

	switch config.Type {
	case "depletable":
		for _, subConfig := range config.SubResources {
			grades := make([]resources.Grade, 0, len(subConfig.Grades))
			for _, gradeConfig := range subConfig.Grades {
				grades = append(grades, resources.Grade{
					Name:           gradeConfig.Name,
					Available:      gradeConfig.Available,
					ExtractionCost: gradeConfig.Cost,
				})
			}
			var sub resources.SubResource
			sub, err = resources.NewGradedSubResource(subConfig.Name, grades)
			if err != nil {
				return
			}
			subs = append(subs, sub)
		}
		return resources.NewDepletableResource(config.Name, config.Market, config.Prices, subs)

	case "fixed":
		for _, subConfig := range config.SubResources {
			var sub resources.SubResource
			sub, err = resources.NewFixedSubResource(subConfig.Name, subConfig.Quantities)
			if err != nil {
				return
			}
			subs = append(subs, sub)
		}
		return resources.NewFixedResource(config.Name, config.Market, config.Prices, subs)

	case "renewable":
		for _, subConfig := range config.SubResources {
			var sub resources.SubResource
			sub, err = resources.NewRenewableSubResource(subConfig.Name, subConfig.MaxAnnual,
				subConfig.BasePrice, subConfig.PriceElasticity, subConfig.Variance, subConfig.CapacityFactor)
			if err != nil {
				return
			}
			subs = append(subs, sub)
		}
		return resources.NewRenewableResource(config.Name, config.Market, config.Prices, subs)

	default:
		err = fmt.Errorf("resource %s has unknown type %q", config.Name, config.Type)
		return
	}
}

// SetMetricsRecorder - Attaches a metrics recorder to the scenario's
// marketplace.
func (S *Scenario) SetMetricsRecorder(metrics observability.MetricsRecorder) {
	S.market.SetMetricsRecorder(metrics)
}

// Name - Returns the scenario name.
func (S *Scenario) Name() string { return S.name }

// Modeltime - Returns the period to year mapping of the run.
func (S *Scenario) Modeltime() *modeltime.Modeltime { return S.time }

// Marketplace - Returns the marketplace of the run.
func (S *Scenario) Marketplace() *marketplace.Marketplace { return S.market }

// RunPeriod - Clears all markets for one period. Supplies are recomputed
// from prices and demands re-added on every solver round.
//
// It returns:
//   - converged is true if all solved markets cleared
func (S *Scenario) RunPeriod(ctx context.Context, period int) (converged bool) {
	converged, iterations := S.market.Solve(ctx, period, S.solver, func(period int) {
		for _, reg := range S.regions {
			for _, d := range reg.demands {
				S.market.AddToDemand(d.good, reg.name, d.quantityFor(period), period)
			}
			for _, resource := range reg.resources {
				resource.CalcSupply(reg.name, period)
			}
		}
	})

	S.logger.Info("period solved",
		slog.String("scenario", S.name),
		slog.Int("period", period),
		slog.Int("year", S.time.PeriodToYear(period)),
		slog.Int("iterations", iterations),
		slog.Bool("converged", converged),
	)

	return
}

// Run - Clears all markets for every period in sequence.
//
// It returns:
//   - converged is true if every period cleared
func (S *Scenario) Run(ctx context.Context) (converged bool) {
	converged = true
	for period := 0; period < S.time.MaxPeriods(); period++ {
		if !S.RunPeriod(ctx, period) {
			converged = false
		}
	}
	return
}

// EachResource - Calls visit for every resource sector with its region
// name, in configuration order. Used by the output writers.
func (S *Scenario) EachResource(visit func(regionName string, resource resources.Resource)) {
	for _, reg := range S.regions {
		for _, resource := range reg.resources {
			visit(reg.name, resource)
		}
	}
}
