package dofbench

import (
	"fmt"
	"math"
)

// invPhi is 1/φ, the golden-section shrink factor.
var invPhi = (math.Sqrt(5) - 1) / 2

// ScanConfig controls the one-parameter minimizer.
type ScanConfig struct {
	Lo, Hi     float64 // Search interval
	Steps      int     // Coarse grid steps across [Lo, Hi]
	Iterations int     // Golden-section refinements inside the best bracket
}

// DefaultScanConfig returns the interval and resolution used by the
// exponential and power-law forms.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Lo:         -20,
		Hi:         20,
		Steps:      4000,
		Iterations: 200,
	}
}

// Minimize1D finds the minimizer of g on [Lo, Hi].
//
// A coarse scan locates the best grid point (first one wins on ties), then
// golden-section search refines inside the two neighbouring cells. The
// result is exactly reproducible for a given g. Non-finite objective values
// are skipped; if every grid point is non-finite the fit is degenerate.
func Minimize1D(g func(float64) float64, cfg ScanConfig) (float64, error) {
	if cfg.Steps < 1 || !(cfg.Hi > cfg.Lo) {
		return 0, fmt.Errorf("invalid scan [%g, %g] in %d steps", cfg.Lo, cfg.Hi, cfg.Steps)
	}
	h := (cfg.Hi - cfg.Lo) / float64(cfg.Steps)

	best, bestVal := math.NaN(), math.Inf(1)
	for i := 0; i <= cfg.Steps; i++ {
		x := cfg.Lo + float64(i)*h
		v := g(x)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < bestVal {
			best, bestVal = x, v
		}
	}
	if math.IsNaN(best) {
		return 0, fmt.Errorf("objective not finite anywhere on [%g, %g]: %w", cfg.Lo, cfg.Hi, ErrFitDegenerate)
	}

	a := math.Max(cfg.Lo, best-h)
	b := math.Min(cfg.Hi, best+h)
	for i := 0; i < cfg.Iterations; i++ {
		c := b - invPhi*(b-a)
		d := a + invPhi*(b-a)
		if g(c) < g(d) {
			b = d
		} else {
			a = c
		}
	}

	return (a + b) / 2, nil
}
