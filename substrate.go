package dofbench

import (
	"math"
)

// Configuration holds the two load parameters of one scenario.
//
// It is a value type: mechanisms receive a copy and never mutate it.
// Mechanism-specific constants live on each mechanism's config struct.
type Configuration struct {
	Smear float64 `yaml:"smear"` // ŝ: kinematic smear, v/c
	Load  float64 `yaml:"load"`  // λ̂: gravitational load, 1 - lapse
}

// Rest is the unloaded configuration (ŝ=0, λ̂=0).
var Rest = Configuration{}

// Validate checks both parameters lie in [0,1).
func (c Configuration) Validate() error {
	if !inUnitInterval(c.Smear) {
		return &DomainError{Param: "smear", Value: c.Smear}
	}
	if !inUnitInterval(c.Load) {
		return &DomainError{Param: "load", Value: c.Load}
	}
	return nil
}

// CapacityOK reports whether ŝ² + λ̂² ≤ 1, the substrate's capacity budget.
// Configurations outside it are still computable; sweeps use it to trim
// the plotted surface.
func (c Configuration) CapacityOK() bool {
	return c.Smear*c.Smear+c.Load*c.Load <= 1.0
}

func inUnitInterval(x float64) bool {
	return !math.IsNaN(x) && x >= 0 && x < 1
}

// ThermodynamicOutput is what a mechanism computes for one configuration.
type ThermodynamicOutput struct {
	DoFFraction float64 `yaml:"dof_fraction"` // N: accessible fraction of modes
	Entropy     float64 `yaml:"entropy"`      // S = -ln N
	Temperature float64 `yaml:"temperature"`  // T = 1/(1-N), capped
	GammaStd    float64 `yaml:"gamma_std"`    // Γ_std: mechanism-independent SR×GR factor
	GammaDoF    float64 `yaml:"gamma_dof"`    // Γ_DoF = 1/N
}

// ThermoConfig controls the derived thermodynamic columns.
type ThermoConfig struct {
	// TemperatureCeiling caps T near N=1, where 1/(1-N) diverges.
	TemperatureCeiling float64 `yaml:"temperature_ceiling"`
}

// DefaultThermoConfig returns the canonical ceiling.
func DefaultThermoConfig() ThermoConfig {
	return ThermoConfig{TemperatureCeiling: 1e6}
}

// StandardGamma is the kinematic dilation factor shared by every mechanism:
//
//	Γ_std = 1/sqrt(1-ŝ²) · 1/(1-λ̂)
//
// The first factor is special relativity; the second is the inverse lapse
// N = 1-λ̂. It depends on the configuration only.
func StandardGamma(cfg Configuration) float64 {
	sr := 1.0 / math.Sqrt(1-cfg.Smear*cfg.Smear)
	gr := 1.0 / (1 - cfg.Load)
	return sr * gr
}

// Derive fills the secondary columns for DoF fraction n at cfg.
// Mechanisms call this after computing n; they must validate cfg first.
func Derive(cfg Configuration, n float64, th ThermoConfig) ThermodynamicOutput {
	ceiling := th.TemperatureCeiling
	if ceiling <= 0 {
		ceiling = DefaultThermoConfig().TemperatureCeiling
	}

	temperature := ceiling
	if n < 1 {
		temperature = math.Min(1/(1-n), ceiling)
	}

	gammaDoF := math.Inf(1)
	if n > 0 {
		gammaDoF = 1 / n
	}

	var entropy float64 // avoids -0 at n=1
	if n < 1 {
		entropy = -math.Log(n) // +Inf at n=0
	}

	return ThermodynamicOutput{
		DoFFraction: n,
		Entropy:     entropy,
		Temperature: temperature,
		GammaStd:    StandardGamma(cfg),
		GammaDoF:    gammaDoF,
	}
}
