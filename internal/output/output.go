// Package output writes model results to files: a CSV rendition for quick
// inspection and a SQLite store for downstream analysis. Both sinks share
// one flat record shape, one row per region, variable and period.
package output

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anantjoshi01/gcam-core/resources"
	"github.com/anantjoshi01/gcam-core/scenario"
)

// Record - One result value of a model run.
type Record struct {
	RunID    string
	Scenario string
	Region   string
	Variable string
	Sector   string
	Unit     string
	Period   int
	Year     int
	Value    float64
}

// NewRunID - Returns a fresh short run identifier used to group the records
// of one model run.
func NewRunID() string {
	return fmt.Sprintf("run-%s", uuid.New().String()[:8])
}

// Collect - Builds the result records of a finished run: production, price,
// cumulative production and remaining availability per resource and period.
func Collect(runID string, s *scenario.Scenario) []Record {
	var records []Record

	time := s.Modeltime()
	s.EachResource(func(regionName string, resource resources.Resource) {
		for period := 0; period < time.MaxPeriods(); period++ {
			year := time.PeriodToYear(period)
			base := Record{
				RunID:    runID,
				Scenario: s.Name(),
				Region:   regionName,
				Sector:   resource.Name(),
				Period:   period,
				Year:     year,
			}

			production := base
			production.Variable = "production"
			production.Unit = "EJ"
			production.Value = resource.AnnualProduction(period)
			records = append(records, production)

			price := base
			price.Variable = "price"
			price.Unit = "$/GJ"
			price.Value = resource.Price(period)
			records = append(records, price)

			cumulative := base
			cumulative.Variable = "cumulative-production"
			cumulative.Unit = "EJ"
			cumulative.Value = resource.CumulativeProduction(period)
			records = append(records, cumulative)

			available := base
			available.Variable = "available"
			available.Unit = "EJ"
			available.Value = resource.Available(period)
			records = append(records, available)
		}
	})

	return records
}
