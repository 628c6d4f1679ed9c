package dofbench

import (
	"errors"
	"math"
	"testing"
)

// TestMinimize1D_Parabola verifies scan + golden section finds an interior minimum.
func TestMinimize1D_Parabola(t *testing.T) {
	g := func(x float64) float64 { return (x - 1.234) * (x - 1.234) }

	x, err := Minimize1D(g, DefaultScanConfig())
	if err != nil {
		t.Fatalf("Minimize1D failed: %v", err)
	}
	if !approx(x, 1.234, 1e-8) {
		t.Errorf("Minimizer: got %.10f, expected 1.234", x)
	}

	t.Logf("✓ Minimizer: %.10f", x)
}

// TestMinimize1D_Boundary verifies minima at the interval edge are found.
func TestMinimize1D_Boundary(t *testing.T) {
	x, err := Minimize1D(func(x float64) float64 { return x }, DefaultScanConfig())
	if err != nil {
		t.Fatalf("Minimize1D failed: %v", err)
	}
	if !approx(x, -20, 1e-8) {
		t.Errorf("Minimizer: got %.10f, expected -20", x)
	}
}

// TestMinimize1D_NotFinite verifies an objective with no finite value is degenerate.
func TestMinimize1D_NotFinite(t *testing.T) {
	_, err := Minimize1D(func(float64) float64 { return math.NaN() }, DefaultScanConfig())
	if !errors.Is(err, ErrFitDegenerate) {
		t.Errorf("Expected ErrFitDegenerate, got %v", err)
	}

	if _, err := Minimize1D(math.Abs, ScanConfig{Lo: 1, Hi: 1, Steps: 10}); err == nil {
		t.Error("Expected error for empty interval")
	}
}

// TestPolyFit_ExactRecovery verifies QR least squares recovers known coefficients.
func TestPolyFit_ExactRecovery(t *testing.T) {
	ns := []float64{0.2, 0.4, 0.6, 0.8, 1.0}

	bs := make([]float64, len(ns))
	for i, n := range ns {
		bs[i] = 2*n*n - 3*n + 0.5
	}
	p, err := Quadratic{}.Fit(ns, bs)
	if err != nil {
		t.Fatalf("Quadratic fit failed: %v", err)
	}
	for i, want := range []float64{2, -3, 0.5} {
		if !approx(p[i], want, 1e-10) {
			t.Errorf("Quadratic θ[%d]: got %.12f, expected %.12f", i, p[i], want)
		}
	}

	for i, n := range ns {
		bs[i] = -1.5*n + 4
	}
	p, err = Linear{}.Fit(ns, bs)
	if err != nil {
		t.Fatalf("Linear fit failed: %v", err)
	}
	if !approx(p[0], -1.5, 1e-10) || !approx(p[1], 4, 1e-10) {
		t.Errorf("Linear θ: got %v, expected [-1.5 4]", p)
	}

	t.Logf("✓ Recovered quadratic and linear coefficients")
}

// TestPolyFit_Degenerate verifies too few distinct N values fail the fit.
func TestPolyFit_Degenerate(t *testing.T) {
	_, err := Linear{}.Fit([]float64{0.5, 0.5, 0.5}, []float64{1, 2, 3})
	if !errors.Is(err, ErrFitDegenerate) {
		t.Errorf("Linear: expected ErrFitDegenerate, got %v", err)
	}

	_, err = Quadratic{}.Fit([]float64{0.1, 0.2}, []float64{1, 2})
	if !errors.Is(err, ErrFitDegenerate) {
		t.Errorf("Quadratic: expected ErrFitDegenerate, got %v", err)
	}
}

// TestScanFit_RecoversExponent verifies one-parameter forms recover a planted value.
func TestScanFit_RecoversExponent(t *testing.T) {
	ns := []float64{1, 0.9, 0.7, 0.5}

	cases := []struct {
		form Form
		want float64
	}{
		{Exponential{Scan: DefaultScanConfig()}, -1.75},
		{PowerLaw{Scan: DefaultScanConfig()}, -2.5},
		{Exponential{}, 0.8}, // zero ScanConfig falls back to defaults
	}

	for _, tc := range cases {
		bs := make([]float64, len(ns))
		for i, n := range ns {
			bs[i] = tc.form.Predict(n, []float64{tc.want})
		}
		p, err := tc.form.Fit(ns, bs)
		if err != nil {
			t.Fatalf("%s fit failed: %v", tc.form.ID(), err)
		}
		if !approx(p[0], tc.want, 1e-6) {
			t.Errorf("%s: got %.8f, expected %.8f", tc.form.ID(), p[0], tc.want)
		}
		t.Logf("✓ %-11s recovered %.6f", tc.form.ID(), p[0])
	}
}

// TestPowerLaw_Accepts verifies the power-law domain.
func TestPowerLaw_Accepts(t *testing.T) {
	pl := PowerLaw{}
	if pl.Accepts(0) || pl.Accepts(-0.1) {
		t.Error("Power-law must reject N ≤ 0")
	}
	if !pl.Accepts(1e-12) {
		t.Error("Power-law must accept small positive N")
	}

	if _, err := pl.Fit(nil, nil); !errors.Is(err, ErrFitDegenerate) {
		t.Errorf("Empty fit: expected ErrFitDegenerate, got %v", err)
	}
}

// TestStandardForms verifies ids, order and parameter counts.
func TestStandardForms(t *testing.T) {
	want := []struct {
		id string
		k  int
	}{
		{LinearID, 2},
		{QuadraticID, 3},
		{ExponentialID, 1},
		{PowerLawID, 1},
	}

	forms := StandardForms()
	if len(forms) != len(want) {
		t.Fatalf("Expected %d forms, got %d", len(want), len(forms))
	}
	for i, f := range forms {
		if f.ID() != want[i].id || f.ParamCount() != want[i].k {
			t.Errorf("Form %d: got %s/%d, expected %s/%d", i, f.ID(), f.ParamCount(), want[i].id, want[i].k)
		}
		if got, err := FormByID(f.ID()); err != nil || got.ID() != f.ID() {
			t.Errorf("FormByID(%q) = %v, %v", f.ID(), got, err)
		}
	}

	if _, err := FormByID("logistic"); err == nil {
		t.Error("Expected error for unknown form")
	}
}
