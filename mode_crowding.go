package dofbench

import (
	"fmt"
	"math"
)

// ModeCrowdingConfig controls redshift-driven mode crowding.
//
// Boost and redshift compress the spacing between neighbouring modes. A
// mode is only dynamically distinct while its spacing exceeds the
// substrate's resolution bandwidth, so compression crowds modes out of the
// resolvable window.
//
// The canonical constants are NOT normalized: spacing 0.1 against a
// resolution of 0.2439 leaves N=0.41 at rest (Γ_DoF=2.439 while Γ_std=1).
// This is the known calibration defect and is kept as a regression fixture.
type ModeCrowdingConfig struct {
	ModeSpacing      float64      `yaml:"mode_spacing"`      // δω: unloaded spacing between modes
	Resolution       float64      `yaml:"resolution"`        // Δω: smallest resolvable spacing
	CrowdingExponent float64      `yaml:"crowding_exponent"` // γ: N = (δω·z/Δω)^γ
	Thermo           ThermoConfig `yaml:"thermo"`
}

// DefaultModeCrowdingConfig returns the canonical (mis-calibrated) constants.
func DefaultModeCrowdingConfig() ModeCrowdingConfig {
	return ModeCrowdingConfig{
		ModeSpacing:      0.1,
		Resolution:       0.2439,
		CrowdingExponent: 1.0,
		Thermo:           DefaultThermoConfig(),
	}
}

// ModeCrowding implements Mechanism.
type ModeCrowding struct {
	cfg ModeCrowdingConfig
}

func NewModeCrowding(cfg ModeCrowdingConfig) *ModeCrowding {
	return &ModeCrowding{cfg: cfg}
}

func (m *ModeCrowding) ID() string { return ModeCrowdingID }

// Config returns the constants the mechanism was built with.
func (m *ModeCrowding) Config() ModeCrowdingConfig { return m.cfg }

// Redshift is the spacing compression z = (1-λ̂)·sqrt(1-ŝ²).
func (m *ModeCrowding) Redshift(cfg Configuration) float64 {
	return (1 - cfg.Load) * math.Sqrt(1-cfg.Smear*cfg.Smear)
}

func (m *ModeCrowding) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", ModeCrowdingID, err)
	}
	if m.cfg.Resolution <= 0 {
		return Derive(cfg, 1, m.cfg.Thermo), nil // everything resolvable
	}

	ratio := m.cfg.ModeSpacing * m.Redshift(cfg) / m.cfg.Resolution
	n := math.Min(1, math.Pow(ratio, m.cfg.CrowdingExponent))
	return Derive(cfg, n, m.cfg.Thermo), nil
}
