package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const referenceYAML = `
name: reference
years: [1990, 2005]
solver:
  max_iterations: 1000
  tolerance: 0.001
regions:
  - name: USA
    demands:
      - good: wind
        quantities: [20, 40]
    resources:
      - name: wind
        type: renewable
        market: USA
        prices: [1.0, 1.0]
        subresources:
          - name: plains
            max_annual: 100
            base_price: 4.0
            price_elasticity: 1.0
            variance: 0.3
            capacity_factor: 0.35
`

func TestFromYAML(t *testing.T) {
	t.Run("parses a full scenario", func(t *testing.T) {
		// Execute
		config, err := FromYAML([]byte(referenceYAML))

		// Check
		assert.NoError(t, err, "parses scenario")
		assert.Equal(t, "reference", config.Name, "name parsed")
		assert.Equal(t, []int{1990, 2005}, config.Years, "years parsed")
		assert.Equal(t, 1000, config.Solver.MaxIterations, "solver override parsed")
		assert.Len(t, config.Regions, 1, "one region")
		assert.Equal(t, "renewable", config.Regions[0].Resources[0].Type, "resource type parsed")
		assert.Equal(t, 100.0, config.Regions[0].Resources[0].SubResources[0].MaxAnnual, "site maximum parsed")
	})

	t.Run("error on malformed yaml", func(t *testing.T) {
		// Execute
		_, err := FromYAML([]byte("name: [unclosed"))

		// Check
		assert.Error(t, err, "malformed yaml rejected")
	})

	t.Run("error on missing name", func(t *testing.T) {
		// Execute
		_, err := FromYAML([]byte("years: [1990]\nregions: [{name: USA}]"))

		// Check
		assert.Error(t, err, "missing scenario name rejected")
	})

	t.Run("error on unknown resource type", func(t *testing.T) {
		// Prepare
		data := `
name: broken
years: [1990]
regions:
  - name: USA
    resources:
      - name: coal
        type: magical
        market: USA
`

		// Execute
		_, err := FromYAML([]byte(data))

		// Check
		assert.Error(t, err, "unknown resource type rejected")
	})

	t.Run("error on demand without quantities", func(t *testing.T) {
		// Prepare
		data := `
name: broken
years: [1990]
regions:
  - name: USA
    demands:
      - good: coal
`

		// Execute
		_, err := FromYAML([]byte(data))

		// Check
		assert.Error(t, err, "empty demand rejected")
	})
}

func TestFromFile(t *testing.T) {
	t.Run("error when file is missing", func(t *testing.T) {
		// Execute
		_, err := FromFile("no-such-scenario.yaml")

		// Check
		assert.Error(t, err, "missing file reported")
	})
}
