package dofbench

import (
	"math"
)

// Benchmark is the reference dilation curve the candidate forms are fit to.
//
// Value must be pure. A NaN, infinite or non-positive value is reported as
// an error wrapping ErrOutOfDomain so the evaluator can drop that point.
type Benchmark interface {
	Name() string
	Value(cfg Configuration) (float64, error)
}

// SchwarzschildName is the name reported by Schwarzschild.
const SchwarzschildName = "schwarzschild"

// Schwarzschild is the static-observer time-dilation factor for a clock
// moving at v/c = ŝ at radius r outside a mass with Schwarzschild radius r_s.
//
// λ̂ is read as one minus the lapse, so the compactness is
//
//	r_s/r = 1 - (1-λ̂)²
//
// and the horizon sits at λ̂ = 1. The factor is
//
//	B = 1/sqrt(1-ŝ²) · 1/sqrt(1 - r_s/r)
type Schwarzschild struct{}

func (Schwarzschild) Name() string { return SchwarzschildName }

// Compactness returns r_s/r for cfg.
func (Schwarzschild) Compactness(cfg Configuration) float64 {
	lapse := 1 - cfg.Load
	return 1 - lapse*lapse
}

func (s Schwarzschild) Value(cfg Configuration) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	sr := 1 / math.Sqrt(1-cfg.Smear*cfg.Smear)
	gr := 1 / math.Sqrt(1-s.Compactness(cfg))
	return checkBenchmark(sr * gr)
}

// BenchmarkFunc adapts a plain function into a Benchmark. Configurations
// are validated before F is called.
type BenchmarkFunc struct {
	Label string
	F     func(cfg Configuration) float64
}

func (b BenchmarkFunc) Name() string { return b.Label }

func (b BenchmarkFunc) Value(cfg Configuration) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	return checkBenchmark(b.F(cfg))
}

func checkBenchmark(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, &DomainError{Param: "benchmark", Value: v}
	}
	return v, nil
}
