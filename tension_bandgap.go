package dofbench

import (
	"fmt"
	"math"
)

// modeTolerance absorbs float drift in the evenly spaced spectrum so the
// top mode counts as "at or below" an unshifted gap edge.
const modeTolerance = 1e-9

// TensionBandgapConfig controls tension-induced bandgaps.
//
// Load adds isotropic tension to the string/voxel web and smear adds
// tension along the motion axis. Tension stiffens the web and pulls the gap
// edge down through a fixed spectrum; modes above the edge freeze out.
type TensionBandgapConfig struct {
	FreqMin         float64      `yaml:"freq_min"`         // Lowest mode frequency (natural units)
	FreqMax         float64      `yaml:"freq_max"`         // Highest mode frequency
	Modes           int          `yaml:"modes"`            // Evenly spaced modes in [FreqMin, FreqMax]
	TensionCoupling float64      `yaml:"tension_coupling"` // κ: tension per unit load
	Thermo          ThermoConfig `yaml:"thermo"`
}

// DefaultTensionBandgapConfig returns the canonical 100-mode spectrum on [0.1, 10].
func DefaultTensionBandgapConfig() TensionBandgapConfig {
	return TensionBandgapConfig{
		FreqMin:         0.1,
		FreqMax:         10.0,
		Modes:           100,
		TensionCoupling: 1.0,
		Thermo:          DefaultThermoConfig(),
	}
}

// TensionBandgap implements Mechanism.
type TensionBandgap struct {
	cfg         TensionBandgapConfig
	frequencies []float64
}

func NewTensionBandgap(cfg TensionBandgapConfig) *TensionBandgap {
	if cfg.Modes < 1 {
		cfg.Modes = 1
	}
	freqs := make([]float64, cfg.Modes)
	if cfg.Modes == 1 {
		freqs[0] = cfg.FreqMax
	} else {
		step := (cfg.FreqMax - cfg.FreqMin) / float64(cfg.Modes-1)
		for i := range freqs {
			freqs[i] = cfg.FreqMin + float64(i)*step
		}
	}
	return &TensionBandgap{cfg: cfg, frequencies: freqs}
}

func (m *TensionBandgap) ID() string { return TensionBandgapID }

// Config returns the constants the mechanism was built with.
func (m *TensionBandgap) Config() TensionBandgapConfig { return m.cfg }

// Tension returns the effective tension magnitude, the trace/3 of
//
//	diag(κλ̂, κλ̂, κλ̂ + κŝ²)
func (m *TensionBandgap) Tension(cfg Configuration) float64 {
	isotropic := m.cfg.TensionCoupling * cfg.Load
	anisotropic := m.cfg.TensionCoupling * cfg.Smear * cfg.Smear
	return (3*isotropic + anisotropic) / 3.0
}

// GapFrequency is the bandgap edge: ω_gap = ω_max / sqrt(1 + T).
func (m *TensionBandgap) GapFrequency(cfg Configuration) float64 {
	return m.cfg.FreqMax / math.Sqrt(1+m.Tension(cfg))
}

// Accessible reports, per spectrum mode, whether it lies at or below the gap.
func (m *TensionBandgap) Accessible(cfg Configuration) []bool {
	gap := m.GapFrequency(cfg)
	out := make([]bool, len(m.frequencies))
	for i, f := range m.frequencies {
		out[i] = f <= gap+modeTolerance
	}
	return out
}

func (m *TensionBandgap) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", TensionBandgapID, err)
	}

	accessible := 0
	for _, ok := range m.Accessible(cfg) {
		if ok {
			accessible++
		}
	}
	n := float64(accessible) / float64(len(m.frequencies))
	return Derive(cfg, n, m.cfg.Thermo), nil
}
