package dofbench

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains thresholds for mechanism properties.
type AssertionConfig struct {
	// Rest-state tolerance on N, Γ_std and Γ_DoF
	NormalizationTolerance float64

	// Tolerance when comparing Γ_std across mechanisms
	GammaTolerance float64

	// Sweep used for monotonicity checks
	Sweep SweepConfig

	// Fixed value of the other parameter during monotonicity sweeps
	FixedValues []float64
}

// DefaultAssertionConfig returns the thresholds used by the package tests.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		NormalizationTolerance: DefaultNormalizationTolerance,
		GammaTolerance:         1e-12,
		Sweep:                  DefaultSweepConfig(),
		FixedValues:            []float64{0, 0.3, 0.6},
	}
}

// AssertNormalized verifies N = 1 and Γ_std = Γ_DoF = 1 at rest.
//
// Mathematical property:
//
//	N(0,0) = 1  ⇒  Γ_DoF(0,0) = Γ_std(0,0) = 1
func AssertNormalized(t *testing.T, m Mechanism, cfg AssertionConfig) {
	t.Helper()

	rest, err := m.Compute(Rest)
	if err != nil {
		t.Fatalf("%s failed at rest: %v", m.ID(), err)
	}

	if err := NewNormalizationConstraint(cfg.NormalizationTolerance).Validate(m.ID(), rest); err != nil {
		t.Errorf("Normalization violated: %v\n"+
			"Mechanism constants are calibrated against the wrong reference.", err)
		return
	}

	t.Logf("✓ %s normalized: N=%.6f, Γ_std=%.6f, Γ_DoF=%.6f",
		m.ID(), rest.DoFFraction, rest.GammaStd, rest.GammaDoF)
}

// AssertMonotoneDoF verifies N never increases along either load axis.
//
// Mathematical property:
//
//	∂N/∂ŝ ≤ 0 and ∂N/∂λ̂ ≤ 0 on [0,1)²
func AssertMonotoneDoF(t *testing.T, m Mechanism, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, axis := range []Axis{AxisSmear, AxisLoad} {
		for _, fixed := range cfg.FixedValues {
			a := AnalyzeSweep(m, axis, fixed, cfg.Sweep)
			for _, v := range a.Violations {
				failures = append(failures, fmt.Sprintf(
					"  %s sweep (fixed=%.2f): N %.6f → %.6f at ŝ=%.2f λ̂=%.2f",
					axis, fixed, v.From.DoFFraction, v.To.DoFFraction,
					v.To.Config.Smear, v.To.Config.Load))
			}
		}
	}

	if len(failures) > 0 {
		t.Errorf("%s DoF not monotone:\n%v", m.ID(), failures)
		return
	}

	t.Logf("✓ %s monotone non-increasing in ŝ and λ̂", m.ID())
}

// AssertGammaStdShared verifies Γ_std depends on the configuration only.
func AssertGammaStdShared(t *testing.T, ms []Mechanism, scenarios []Scenario, cfg AssertionConfig) {
	t.Helper()

	for _, s := range scenarios {
		want := StandardGamma(s.Configuration)
		for _, m := range ms {
			out, err := m.Compute(s.Configuration)
			if err != nil {
				t.Errorf("%s/%s: %v", m.ID(), s.Name, err)
				continue
			}
			if math.Abs(out.GammaStd-want) > cfg.GammaTolerance {
				t.Errorf("%s/%s: Γ_std=%.12f, other mechanisms report %.12f",
					m.ID(), s.Name, out.GammaStd, want)
			}
		}
		t.Logf("✓ %-15s Γ_std=%.6f shared by %d mechanisms", s.Name, want, len(ms))
	}
}

// PrintRanking outputs a ranking table to the test log.
func PrintRanking(t *testing.T, table RankingTable) {
	t.Helper()

	t.Logf("\n=== Ranking vs %s ===", table.Benchmark)
	for i, g := range table.Groups {
		t.Logf("[%d] %s", i+1, g.MechanismID)
		t.Logf("    Form          MSE            k  AIC        BIC")
		t.Logf("    ------------  -------------  -  ---------  ---------")
		for _, r := range g.Results {
			aic, bic := math.NaN(), math.NaN()
			if r.Criteria != nil {
				aic, bic = r.Criteria.AIC, r.Criteria.BIC
			}
			t.Logf("    %-12s  %.10f  %d  %9.4f  %9.4f", r.FormID, r.MSE, r.ParamCount, aic, bic)
		}
		for _, w := range g.Warnings {
			t.Logf("    ⚠ %s", w)
		}
	}

	if best, ok := table.Best(); ok {
		t.Logf("\nBest: %s/%s (MSE %.6g)", best.MechanismID, best.FormID, best.MSE)
	}
}
