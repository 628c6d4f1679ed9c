package dofbench

import (
	"fmt"
	"math"
)

// CausalDiamondConfig controls causal-diamond throttling.
//
// The local causal diamond (what can influence a voxel within one proper
// tick) shrinks under boost and redshift; fewer nodes fit inside, so fewer
// independent modes are addressable per tick.
type CausalDiamondConfig struct {
	MotionCompression    float64      `yaml:"motion_compression"`    // m: boost narrows the diamond by m·ŝ²
	CurvatureCompression float64      `yaml:"curvature_compression"` // c: redshift squeezes it by c·λ̂
	VolumeExponent       float64      `yaml:"volume_exponent"`       // e: N = V^e (2/3 sits between surface and bulk modes)
	MinVolume            float64      `yaml:"min_volume"`            // Floor that prevents total collapse
	Thermo               ThermoConfig `yaml:"thermo"`
}

// DefaultCausalDiamondConfig returns the canonical constants.
func DefaultCausalDiamondConfig() CausalDiamondConfig {
	return CausalDiamondConfig{
		MotionCompression:    1.0,
		CurvatureCompression: 1.0,
		VolumeExponent:       2.0 / 3.0,
		MinVolume:            0.01,
		Thermo:               DefaultThermoConfig(),
	}
}

// CausalDiamond implements Mechanism.
type CausalDiamond struct {
	cfg CausalDiamondConfig
}

func NewCausalDiamond(cfg CausalDiamondConfig) *CausalDiamond {
	return &CausalDiamond{cfg: cfg}
}

func (m *CausalDiamond) ID() string { return CausalDiamondID }

// Config returns the constants the mechanism was built with.
func (m *CausalDiamond) Config() CausalDiamondConfig { return m.cfg }

// Volume returns the accessible diamond volume relative to the unloaded one.
//
//	V = max((1 - m·ŝ²)·(1 - c·λ̂), Vmin)
func (m *CausalDiamond) Volume(cfg Configuration) float64 {
	motion := 1.0 - m.cfg.MotionCompression*cfg.Smear*cfg.Smear
	curvature := 1.0 - m.cfg.CurvatureCompression*cfg.Load
	return math.Max(motion*curvature, m.cfg.MinVolume)
}

func (m *CausalDiamond) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", CausalDiamondID, err)
	}
	n := math.Pow(m.Volume(cfg), m.cfg.VolumeExponent)
	return Derive(cfg, n, m.cfg.Thermo), nil
}
