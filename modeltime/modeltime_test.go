package modeltime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("creates a period per year", func(t *testing.T) {
		// Execute
		m, err := New([]int{1990, 2005, 2020})

		// Check
		assert.NoError(t, err, "creates modeltime")
		assert.Equal(t, 3, m.MaxPeriods(), "three periods")
		assert.Equal(t, 2005, m.PeriodToYear(1), "period maps to year")
	})

	t.Run("error when years are empty", func(t *testing.T) {
		// Execute
		_, err := New(nil)

		// Check
		assert.Error(t, err, "empty years rejected")
	})

	t.Run("error when years are not increasing", func(t *testing.T) {
		// Execute
		_, err := New([]int{1990, 1990})

		// Check
		assert.Error(t, err, "non-increasing years rejected")
	})
}

func TestYearToPeriod(t *testing.T) {
	t.Run("maps model years back to periods", func(t *testing.T) {
		// Prepare
		m, err := New([]int{1990, 2005, 2020})
		assert.NoError(t, err, "creates modeltime")

		// Execute
		period, err := m.YearToPeriod(2020)

		// Check
		assert.NoError(t, err, "known year found")
		assert.Equal(t, 2, period, "correct period")
	})

	t.Run("error for non-model year", func(t *testing.T) {
		// Prepare
		m, err := New([]int{1990, 2005})
		assert.NoError(t, err, "creates modeltime")

		// Execute
		_, err = m.YearToPeriod(2000)

		// Check
		assert.Error(t, err, "unknown year rejected")
	})
}

func TestPeriodToYear(t *testing.T) {
	t.Run("panics on out of range period", func(t *testing.T) {
		// Prepare
		m, err := New([]int{1990})
		assert.NoError(t, err, "creates modeltime")

		// Check
		assert.Panics(t, func() { m.PeriodToYear(5) }, "out of range period is a caller bug")
	})
}
