package dofbench

import (
	"fmt"
	"math"
)

// Axis selects the load parameter a sweep varies.
type Axis string

const (
	AxisSmear Axis = "smear"
	AxisLoad  Axis = "load"
)

// ParseAxis accepts "smear" or "load".
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisSmear, AxisLoad:
		return Axis(s), nil
	}
	return "", fmt.Errorf("unknown axis %q (want smear or load)", s)
}

// monotoneSlack absorbs float noise when checking N(x+h) ≤ N(x).
const monotoneSlack = 1e-12

// SweepConfig controls a load-parameter sweep.
type SweepConfig struct {
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
	Step          float64 `yaml:"step"`
	ZeroTolerance float64 `yaml:"zero_tolerance"` // Floor at or below this counts as collapse
}

// DefaultSweepConfig samples [0, 0.95] in steps of 0.05.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Min:           0.0,
		Max:           0.95,
		Step:          0.05,
		ZeroTolerance: 1e-9,
	}
}

// values returns the sample points. Counting steps instead of accumulating
// keeps the grid free of drift.
func (c SweepConfig) values() []float64 {
	if c.Step <= 0 || c.Max < c.Min {
		return []float64{c.Min}
	}
	steps := int(math.Floor((c.Max-c.Min)/c.Step + 1e-9))
	out := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, c.Min+float64(i)*c.Step)
	}
	return out
}

// SweepPoint is one sample of a sweep or surface.
type SweepPoint struct {
	Config      Configuration `yaml:",inline"`
	DoFFraction float64       `yaml:"dof_fraction"`
	GammaStd    float64       `yaml:"gamma_std"`
	GammaDoF    float64       `yaml:"gamma_dof"`
}

// Sweep samples m along axis with the other parameter held at fixed.
// Points the mechanism rejects are skipped.
func Sweep(m Mechanism, axis Axis, fixed float64, cfg SweepConfig) []SweepPoint {
	var points []SweepPoint
	for _, x := range cfg.values() {
		c := Configuration{Smear: x, Load: fixed}
		if axis == AxisLoad {
			c = Configuration{Smear: fixed, Load: x}
		}
		out, err := m.Compute(c)
		if err != nil {
			continue
		}
		points = append(points, SweepPoint{
			Config:      c,
			DoFFraction: out.DoFFraction,
			GammaStd:    out.GammaStd,
			GammaDoF:    out.GammaDoF,
		})
	}
	return points
}

// MonotoneViolation is a step where N increased along the sweep.
type MonotoneViolation struct {
	From, To SweepPoint
}

// SweepAnalysis summarizes the shape of N along a sweep.
type SweepAnalysis struct {
	MechanismID     string              `yaml:"mechanism"`
	Axis            Axis                `yaml:"axis"`
	Fixed           float64             `yaml:"fixed"`
	Points          []SweepPoint        `yaml:"points"`
	Violations      []MonotoneViolation `yaml:"-"`
	Monotone        bool                `yaml:"monotone"`
	Floor           float64             `yaml:"floor"`            // min N over the sweep
	FloorAt         float64             `yaml:"floor_at"`         // Swept value where the floor occurs
	BoundedAway     bool                `yaml:"bounded_away"`     // Floor > ZeroTolerance
	GammaDivergence float64             `yaml:"gamma_divergence"` // max |Γ_DoF - Γ_std| over the sweep
}

// AnalyzeSweep sweeps m and reports monotonicity, the floor and whether N
// stays bounded away from zero.
func AnalyzeSweep(m Mechanism, axis Axis, fixed float64, cfg SweepConfig) SweepAnalysis {
	points := Sweep(m, axis, fixed, cfg)
	a := SweepAnalysis{
		MechanismID: m.ID(),
		Axis:        axis,
		Fixed:       fixed,
		Points:      points,
		Monotone:    true,
		Floor:       math.Inf(1),
	}

	for i, p := range points {
		if p.DoFFraction < a.Floor {
			a.Floor = p.DoFFraction
			a.FloorAt = sweptValue(p.Config, axis)
		}
		if d := math.Abs(p.GammaDoF - p.GammaStd); d > a.GammaDivergence {
			a.GammaDivergence = d
		}
		if i > 0 && p.DoFFraction > points[i-1].DoFFraction+monotoneSlack {
			a.Monotone = false
			a.Violations = append(a.Violations, MonotoneViolation{From: points[i-1], To: p})
		}
	}

	if len(points) == 0 {
		a.Floor = 0
	}
	a.BoundedAway = a.Floor > cfg.ZeroTolerance
	return a
}

func sweptValue(c Configuration, axis Axis) float64 {
	if axis == AxisLoad {
		return c.Load
	}
	return c.Smear
}

// Surface samples m over the 2-D grid cfg×cfg, keeping only points inside
// the capacity region ŝ² + λ̂² ≤ 1. Rows vary λ̂ slowest.
func Surface(m Mechanism, cfg SweepConfig) []SweepPoint {
	var points []SweepPoint
	values := cfg.values()
	for _, load := range values {
		for _, smear := range values {
			c := Configuration{Smear: smear, Load: load}
			if !c.CapacityOK() {
				continue
			}
			out, err := m.Compute(c)
			if err != nil {
				continue
			}
			points = append(points, SweepPoint{
				Config:      c,
				DoFFraction: out.DoFFraction,
				GammaStd:    out.GammaStd,
				GammaDoF:    out.GammaDoF,
			})
		}
	}
	return points
}
