// Package modeltime maps model periods to calendar years. A scenario runs
// over a fixed sequence of periods, numbered from 0, each standing for one
// calendar year in which markets are cleared.
package modeltime

import (
	"fmt"
)

// Modeltime - The period to year mapping for one scenario. Instances are
// immutable after construction.
type Modeltime struct {
	years []int
}

// New - Returns a Modeltime over the given calendar years, one period per
// year in sequence order.
//
// It returns:
//   - m is a pointer to the new Modeltime
//   - err is a standard error if years is empty or not strictly increasing
func New(years []int) (m *Modeltime, err error) {
	if len(years) == 0 {
		err = fmt.Errorf("modeltime needs at least one year")
		return
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			err = fmt.Errorf("years must be strictly increasing, got %d after %d", years[i], years[i-1])
			return
		}
	}

	m = &Modeltime{years: append([]int(nil), years...)}
	return
}

// MaxPeriods - Returns the number of model periods.
func (M *Modeltime) MaxPeriods() int {
	return len(M.years)
}

// PeriodToYear - Returns the calendar year for a period. An out of range
// period is a caller bug and panics.
func (M *Modeltime) PeriodToYear(period int) int {
	if period < 0 || period >= len(M.years) {
		panic(fmt.Sprintf("modeltime: period %d out of range [0,%d)", period, len(M.years)))
	}
	return M.years[period]
}

// YearToPeriod - Returns the period for a calendar year.
//
// It returns:
//   - period is the matching period
//   - err is a standard error if the year is not a model year
func (M *Modeltime) YearToPeriod(year int) (period int, err error) {
	for i, y := range M.years {
		if y == year {
			period = i
			return
		}
	}

	err = fmt.Errorf("%d is not a model year", year)
	return
}
