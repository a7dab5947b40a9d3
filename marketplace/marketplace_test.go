package marketplace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("creates marketplace", func(t *testing.T) {
		// Execute
		m, err := New(4)

		// Check
		assert.NoError(t, err, "creates marketplace")
		assert.NotNil(t, m, "marketplace returned")
	})

	t.Run("error when periods below one", func(t *testing.T) {
		// Execute
		_, err := New(0)

		// Check
		assert.Error(t, err, "zero periods rejected")
	})
}

func TestCreateMarket(t *testing.T) {
	t.Run("creates a market once per market region and good", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")

		// Execute
		first := m.CreateMarket("USA", "global", "coal", Normal)
		second := m.CreateMarket("China", "global", "coal", Normal)

		// Check
		assert.True(t, first, "first region creates the market")
		assert.False(t, second, "second region joins the existing market")
	})

	t.Run("regions sharing a market see the same price", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "global", "coal", Normal)
		m.CreateMarket("China", "global", "coal", Normal)

		// Execute
		m.SetPrice("coal", "USA", 3.5, 0)

		// Check
		assert.Equal(t, 3.5, m.GetPrice("coal", "China", 0), "shared market shares prices")
	})
}

func TestPriceSupplyDemand(t *testing.T) {
	t.Run("accumulates supply and demand per period", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "gas", Normal)

		// Execute
		m.AddToSupply("gas", "USA", 2.0, 1)
		m.AddToSupply("gas", "USA", 3.0, 1)
		m.AddToDemand("gas", "USA", 4.0, 1)

		// Check
		assert.Equal(t, 5.0, m.GetSupply("gas", "USA", 1), "supplies accumulate")
		assert.Equal(t, 4.0, m.GetDemand("gas", "USA", 1), "demands accumulate")
		assert.Equal(t, 0.0, m.GetSupply("gas", "USA", 0), "other periods untouched")
	})

	t.Run("price vector is applied per period", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "gas", Normal)

		// Execute
		m.SetPriceVector("gas", "USA", []float64{1.0, 2.0, 3.0})

		// Check
		assert.Equal(t, 1.0, m.GetPrice("gas", "USA", 0), "period 0 price set")
		assert.Equal(t, 2.0, m.GetPrice("gas", "USA", 1), "period 1 price set")
	})

	t.Run("missing market reports the no-market price", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")

		// Execute
		price := m.GetPrice("unobtainium", "USA", 0)

		// Check
		assert.Equal(t, NoMarketPrice, price, "no market gives sentinel price")
	})

	t.Run("null resets supplies and demands for a period", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "gas", Normal)
		m.AddToSupply("gas", "USA", 2.0, 0)
		m.AddToDemand("gas", "USA", 3.0, 0)

		// Execute
		m.NullSuppliesAndDemands(0)

		// Check
		assert.Equal(t, 0.0, m.GetSupply("gas", "USA", 0), "supply zeroed")
		assert.Equal(t, 0.0, m.GetDemand("gas", "USA", 0), "demand zeroed")
	})
}

func TestGetMarketInfo(t *testing.T) {
	t.Run("stores values per market period", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "wind", Normal)

		// Execute
		m.GetMarketInfo("wind", "USA", 1, true).SetDouble("resourceVariance", 0.2)

		// Check
		value, found := m.GetMarketInfo("wind", "USA", 1, true).GetDouble("resourceVariance")
		assert.True(t, found, "value stored")
		assert.Equal(t, 0.2, value, "value readable")

		_, found = m.GetMarketInfo("wind", "USA", 0, true).GetDouble("resourceVariance")
		assert.False(t, found, "other period info independent")
	})

	t.Run("nil for missing market", func(t *testing.T) {
		// Prepare
		m, err := New(2)
		assert.NoError(t, err, "creates marketplace")

		// Check
		assert.Nil(t, m.GetMarketInfo("wind", "USA", 0, true), "missing market gives nil info")
	})
}

func TestSolve(t *testing.T) {
	t.Run("clears a market with linear supply against fixed demand", func(t *testing.T) {
		// Prepare
		// Supply is 2*price, demand fixed at 10, so the clearing price is 5.
		m, err := New(1)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "coal", Normal)
		m.SetPriceVector("coal", "USA", []float64{1.0})
		m.SetMarketToSolve("coal", "USA", 0)

		config := DefaultSolverConfig()
		config.MaxIterations = 500

		// Execute
		converged, iterations := m.Solve(context.Background(), 0, config, func(period int) {
			price := m.GetPrice("coal", "USA", period)
			m.AddToSupply("coal", "USA", 2*price, period)
			m.AddToDemand("coal", "USA", 10, period)
		})

		// Check
		assert.True(t, converged, "market clears")
		assert.Greater(t, iterations, 1, "clearing takes multiple rounds")
		assert.InDelta(t, 5.0, m.GetPrice("coal", "USA", 0), 0.05, "price near equilibrium")
		assert.InDelta(t, 10.0, m.GetSupply("coal", "USA", 0), 0.1, "supply meets demand")
	})

	t.Run("reports failure when the market cannot clear", func(t *testing.T) {
		// Prepare
		// Supply never responds to price, so excess demand persists.
		m, err := New(1)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "coal", Normal)
		m.SetPriceVector("coal", "USA", []float64{1.0})
		m.SetMarketToSolve("coal", "USA", 0)

		config := DefaultSolverConfig()
		config.MaxIterations = 10

		// Execute
		converged, iterations := m.Solve(context.Background(), 0, config, func(period int) {
			m.AddToSupply("coal", "USA", 1, period)
			m.AddToDemand("coal", "USA", 10, period)
		})

		// Check
		assert.False(t, converged, "market cannot clear")
		assert.Equal(t, 10, iterations, "iteration cap respected")
	})

	t.Run("markets not flagged for solving keep their price", func(t *testing.T) {
		// Prepare
		m, err := New(1)
		assert.NoError(t, err, "creates marketplace")
		m.CreateMarket("USA", "USA", "coal", Normal)
		m.SetPriceVector("coal", "USA", []float64{7.0})

		// Execute
		converged, _ := m.Solve(context.Background(), 0, DefaultSolverConfig(), func(period int) {
			m.AddToDemand("coal", "USA", 10, period)
		})

		// Check
		assert.True(t, converged, "nothing to solve counts as cleared")
		assert.Equal(t, 7.0, m.GetPrice("coal", "USA", 0), "unflagged market price untouched")
	})
}
