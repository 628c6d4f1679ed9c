package dofbench

import (
	"fmt"
	"math"
)

// latticeLinks is the coordination number of the 6-connected cubic lattice.
const latticeLinks = 6

// ConnectivityPruningConfig controls link pruning on the voxel lattice.
type ConnectivityPruningConfig struct {
	AxialLinks float64      `yaml:"axial_links"` // Links along the boost axis (of 6)
	PruneRate  float64      `yaml:"prune_rate"`  // ρ: fraction of links pruned per unit load
	Thermo     ThermoConfig `yaml:"thermo"`
}

// DefaultConnectivityPruningConfig returns the canonical constants.
func DefaultConnectivityPruningConfig() ConnectivityPruningConfig {
	return ConnectivityPruningConfig{
		AxialLinks: 2,
		PruneRate:  0.5,
		Thermo:     DefaultThermoConfig(),
	}
}

// ConnectivityPruning implements Mechanism. Each voxel keeps its six
// neighbour links; the two along the boost axis are Lorentz-stretched and
// carry weight sqrt(1-ŝ²), and load prunes a fraction ρ·λ̂ of all links.
type ConnectivityPruning struct {
	cfg ConnectivityPruningConfig
}

func NewConnectivityPruning(cfg ConnectivityPruningConfig) *ConnectivityPruning {
	cfg.AxialLinks = math.Max(0, math.Min(cfg.AxialLinks, latticeLinks))
	return &ConnectivityPruning{cfg: cfg}
}

func (m *ConnectivityPruning) ID() string { return ConnectivityPruningID }

// Config returns the constants in use.
func (m *ConnectivityPruning) Config() ConnectivityPruningConfig { return m.cfg }

// EffectiveLinks returns the weighted number of live links per voxel.
func (m *ConnectivityPruning) EffectiveLinks(cfg Configuration) float64 {
	transverse := latticeLinks - m.cfg.AxialLinks
	axial := m.cfg.AxialLinks * math.Sqrt(1-cfg.Smear*cfg.Smear)
	surviving := math.Max(0, 1-m.cfg.PruneRate*cfg.Load)
	return (transverse + axial) * surviving
}

func (m *ConnectivityPruning) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", ConnectivityPruningID, err)
	}
	n := m.EffectiveLinks(cfg) / latticeLinks
	return Derive(cfg, n, m.cfg.Thermo), nil
}
