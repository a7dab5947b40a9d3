package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config - A scenario definition as read from input data.
type Config struct {
	Name    string         `yaml:"name"`
	Years   []int          `yaml:"years"`
	Solver  *SolverConfig  `yaml:"solver,omitempty"`
	Regions []RegionConfig `yaml:"regions"`
}

// SolverConfig - Optional overrides for the price solver.
type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	Damping       float64 `yaml:"damping"`
}

// RegionConfig - One model region with its resources and final demands.
type RegionConfig struct {
	Name      string           `yaml:"name"`
	Demands   []DemandConfig   `yaml:"demands"`
	Resources []ResourceConfig `yaml:"resources"`
}

// DemandConfig - Fixed final demand for a good per model period. Missing
// trailing periods repeat the last given quantity.
type DemandConfig struct {
	Good       string    `yaml:"good"`
	Quantities []float64 `yaml:"quantities"`
}

// ResourceConfig - One resource sector. Type selects the implementation:
// "depletable", "fixed" or "renewable".
type ResourceConfig struct {
	Name         string              `yaml:"name"`
	Type         string              `yaml:"type"`
	Market       string              `yaml:"market"`
	Prices       []float64           `yaml:"prices"`
	SubResources []SubResourceConfig `yaml:"subresources"`
}

// SubResourceConfig - One deposit or site of a resource. Which fields apply
// depends on the resource type.
type SubResourceConfig struct {
	Name string `yaml:"name"`

	// Depletable resources.
	Grades []GradeConfig `yaml:"grades,omitempty"`

	// Fixed resources.
	Quantities []float64 `yaml:"quantities,omitempty"`

	// Renewable resources.
	MaxAnnual       float64 `yaml:"max_annual,omitempty"`
	BasePrice       float64 `yaml:"base_price,omitempty"`
	PriceElasticity float64 `yaml:"price_elasticity,omitempty"`
	Variance        float64 `yaml:"variance,omitempty"`
	CapacityFactor  float64 `yaml:"capacity_factor,omitempty"`
}

// GradeConfig - One extraction cost step of a depletable subresource.
type GradeConfig struct {
	Name      string  `yaml:"name"`
	Available float64 `yaml:"available"`
	Cost      float64 `yaml:"cost"`
}

// FromFile - Loads a scenario configuration from a YAML file.
//
// It returns:
//   - config is the parsed configuration
//   - err is a standard error if the file can not be read or parsed
func FromFile(path string) (config Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read scenario file: %w", err)
		return
	}

	return FromYAML(data)
}

// FromYAML - Parses YAML data into a scenario configuration.
//
// It returns:
//   - config is the parsed configuration
//   - err is a standard error if the data can not be parsed or fails validation
func FromYAML(data []byte) (config Config, err error) {
	if err = yaml.Unmarshal(data, &config); err != nil {
		err = fmt.Errorf("parse scenario yaml: %w", err)
		return
	}

	err = config.validate()
	return
}

// validate - Checks the configuration for structural problems that would
// surface as confusing errors deeper in the model.
func (C Config) validate() error {
	if C.Name == "" {
		return fmt.Errorf("scenario name can not be empty")
	}
	if len(C.Years) == 0 {
		return fmt.Errorf("scenario %s needs at least one model year", C.Name)
	}
	if len(C.Regions) == 0 {
		return fmt.Errorf("scenario %s needs at least one region", C.Name)
	}

	for _, region := range C.Regions {
		if region.Name == "" {
			return fmt.Errorf("scenario %s has a region without a name", C.Name)
		}
		for _, resource := range region.Resources {
			switch resource.Type {
			case "depletable", "fixed", "renewable":
			default:
				return fmt.Errorf("resource %s in region %s has unknown type %q",
					resource.Name, region.Name, resource.Type)
			}
		}
		for _, demand := range region.Demands {
			if demand.Good == "" {
				return fmt.Errorf("region %s has a demand without a good", region.Name)
			}
			if len(demand.Quantities) == 0 {
				return fmt.Errorf("demand for %s in region %s has no quantities", demand.Good, region.Name)
			}
		}
	}

	return nil
}
