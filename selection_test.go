package dofbench

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestInformationCriteria verifies AIC/BIC against the closed form.
func TestInformationCriteria(t *testing.T) {
	sse, n, k := 0.02, 4, 2

	c := InformationCriteria(sse, n, k)

	sigma2 := sse / float64(n)
	ll := -float64(n) / 2 * (math.Log(2*math.Pi*sigma2) + 1)
	if !approx(c.LogLikelihood, ll, 1e-12) {
		t.Errorf("lnL: got %v, expected %v", c.LogLikelihood, ll)
	}
	if !approx(c.AIC, 2*float64(k)-2*ll, 1e-12) {
		t.Errorf("AIC: got %v", c.AIC)
	}
	if !approx(c.BIC, float64(k)*math.Log(float64(n))-2*ll, 1e-12) {
		t.Errorf("BIC: got %v", c.BIC)
	}

	t.Logf("✓ AIC=%.4f BIC=%.4f", c.AIC, c.BIC)
}

// TestInformationCriteria_ExactFit verifies the variance floor keeps scores finite.
func TestInformationCriteria_ExactFit(t *testing.T) {
	c := InformationCriteria(0, 4, 3)
	if math.IsInf(c.AIC, 0) || math.IsNaN(c.AIC) {
		t.Errorf("AIC should be finite for an exact fit, got %v", c.AIC)
	}

	if z := InformationCriteria(1, 0, 1); z != (Criteria{}) {
		t.Errorf("No points should give zero criteria, got %+v", z)
	}
}

func canonicalPoints(t *testing.T, id string) ([]float64, []float64) {
	t.Helper()

	m, err := Lookup(id)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	var ns, bs []float64
	for _, r := range RunScenarios(m, CanonicalScenarios()) {
		b, err := Schwarzschild{}.Value(r.Config)
		if err != nil {
			t.Fatalf("Benchmark failed: %v", err)
		}
		ns = append(ns, r.Output.DoFFraction)
		bs = append(bs, b)
	}
	return ns, bs
}

// TestCrossValidate_Reproducible verifies folds depend only on the seed.
func TestCrossValidate_Reproducible(t *testing.T) {
	ns, bs := canonicalPoints(t, CausalDiamondID)
	f := Exponential{Scan: DefaultScanConfig()}

	a := CrossValidate(f, ns, bs, 4, 42)
	b := CrossValidate(f, ns, bs, 4, 42)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("CV differs for the same seed:\n%s", diff)
	}

	if a.Folds != 4 || a.Skipped != 0 {
		t.Errorf("Expected 4 folds, none skipped; got %+v", a)
	}
	if !(a.Mean > 0) || a.StdDev < 0 {
		t.Errorf("Unexpected CV summary: %+v", a)
	}

	t.Logf("✓ CV held-out MSE %.6f ± %.6f (seed %d)", a.Mean, a.StdDev, a.Seed)
}

// TestCrossValidate_ClampsAndSkips verifies folds clamp to the point count and
// degenerate training sets are skipped.
func TestCrossValidate_ClampsAndSkips(t *testing.T) {
	ns, bs := canonicalPoints(t, TensionBandgapID)

	cv := CrossValidate(Linear{}, ns, bs, 10, 1)
	if cv.Folds != len(ns) {
		t.Errorf("Folds should clamp to %d, got %d", len(ns), cv.Folds)
	}

	// Leave-one-out on 4 points leaves 3 training points; a quadratic still
	// fits exactly, a cubic-sized form cannot.
	cv = CrossValidate(fixedForm{id: "wide", params: 4}, ns, bs, 4, 1)
	if cv.Skipped != 4 || cv.Mean != 0 {
		t.Errorf("Every fold should be skipped, got %+v", cv)
	}

	if cv := CrossValidate(Linear{}, ns, bs, 1, 1); cv.Folds != 1 || cv.Mean != 0 {
		t.Errorf("A single fold should not run, got %+v", cv)
	}
}

// TestBootstrap_Reproducible verifies the CI depends only on the seed.
func TestBootstrap_Reproducible(t *testing.T) {
	ns, bs := canonicalPoints(t, CausalDiamondID)
	f := PowerLaw{Scan: DefaultScanConfig()}

	a := Bootstrap(f, ns, bs, 100, 9)
	b := Bootstrap(f, ns, bs, 100, 9)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Bootstrap differs for the same seed:\n%s", diff)
	}

	if a.Lower > a.Upper || a.Lower < 0 {
		t.Errorf("Invalid interval: [%v, %v]", a.Lower, a.Upper)
	}
	if a.Skipped != 0 {
		t.Errorf("One-parameter form should fit every resample, skipped %d", a.Skipped)
	}

	t.Logf("✓ Bootstrap 95%% CI [%.6f, %.6f] (seed %d)", a.Lower, a.Upper, a.Seed)
}

// TestBootstrap_Disabled verifies zero resamples leaves the CI empty.
func TestBootstrap_Disabled(t *testing.T) {
	ci := Bootstrap(Linear{}, []float64{1, 0.5}, []float64{1, 2}, 0, 3)
	if ci.Lower != 0 || ci.Upper != 0 || ci.Resamples != 0 {
		t.Errorf("Expected empty CI, got %+v", ci)
	}
}
