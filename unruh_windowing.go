package dofbench

import (
	"fmt"
	"math"
)

// UnruhWindowingConfig controls thermal windowing.
type UnruhWindowingConfig struct {
	WindowCoupling float64      `yaml:"window_coupling"` // w: suppression per unit Unruh temperature
	Thermo         ThermoConfig `yaml:"thermo"`
}

// DefaultUnruhWindowingConfig returns the canonical constants.
func DefaultUnruhWindowingConfig() UnruhWindowingConfig {
	return UnruhWindowingConfig{
		WindowCoupling: 1.0,
		Thermo:         DefaultThermoConfig(),
	}
}

// UnruhWindowing implements Mechanism. Effective acceleration from boost
// and load raises an Unruh-like temperature T_U = (ŝ²+λ̂)/2π; thermal noise
// closes the window of coherent modes as N = exp(-w·T_U).
type UnruhWindowing struct {
	cfg UnruhWindowingConfig
}

func NewUnruhWindowing(cfg UnruhWindowingConfig) *UnruhWindowing {
	return &UnruhWindowing{cfg: cfg}
}

func (m *UnruhWindowing) ID() string { return UnruhWindowingID }

// Config returns the constants in use.
func (m *UnruhWindowing) Config() UnruhWindowingConfig { return m.cfg }

// UnruhTemperature returns T_U for cfg.
func (m *UnruhWindowing) UnruhTemperature(cfg Configuration) float64 {
	return (cfg.Smear*cfg.Smear + cfg.Load) / (2 * math.Pi)
}

func (m *UnruhWindowing) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", UnruhWindowingID, err)
	}
	n := math.Exp(-m.cfg.WindowCoupling * m.UnruhTemperature(cfg))
	return Derive(cfg, n, m.cfg.Thermo), nil
}
