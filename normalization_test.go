package dofbench

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// TestNormalizationConstraint_Valid verifies a calibrated rest state passes.
func TestNormalizationConstraint_Valid(t *testing.T) {
	c := NewNormalizationConstraint(0)
	if c.Tolerance != DefaultNormalizationTolerance {
		t.Errorf("Default tolerance: got %v", c.Tolerance)
	}

	rest := ThermodynamicOutput{DoFFraction: 1, GammaStd: 1, GammaDoF: 1}
	if err := c.Validate("ok", rest); err != nil {
		t.Errorf("Calibrated rest rejected: %v", err)
	}

	within := ThermodynamicOutput{DoFFraction: 1 - 1e-7, GammaStd: 1, GammaDoF: 1 / (1 - 1e-7)}
	if err := c.Validate("ok", within); err != nil {
		t.Errorf("Deviation within tolerance rejected: %v", err)
	}

	t.Logf("✓ Tolerance %.0e accepts deviation %.1e", c.Tolerance, c.Deviation(within))
}

// TestNormalizationConstraint_Violation verifies deviations are reported with context.
func TestNormalizationConstraint_Violation(t *testing.T) {
	c := NewNormalizationConstraint(1e-6)

	cases := []struct {
		name string
		out  ThermodynamicOutput
	}{
		{"N below 1", ThermodynamicOutput{DoFFraction: 0.9, GammaStd: 1, GammaDoF: 1 / 0.9}},
		{"Γ_std off", ThermodynamicOutput{DoFFraction: 1, GammaStd: 1.01, GammaDoF: 1}},
		{"NaN", ThermodynamicOutput{DoFFraction: math.NaN(), GammaStd: 1, GammaDoF: math.NaN()}},
	}

	for _, tc := range cases {
		err := c.Validate("probe", tc.out)
		if !errors.Is(err, ErrNormalizationViolation) {
			t.Errorf("%s: expected ErrNormalizationViolation, got %v", tc.name, err)
			continue
		}
		if !strings.Contains(err.Error(), "probe mis-calibrated at rest") {
			t.Errorf("%s: message missing mechanism id: %v", tc.name, err)
		}
		t.Logf("✓ %s: %v", tc.name, err)
	}

	if d := c.Deviation(cases[2].out); !math.IsInf(d, 1) {
		t.Errorf("NaN deviation should be +Inf, got %v", d)
	}
}

// TestCheckNormalization_Catalog verifies only mode-crowding is mis-calibrated.
func TestCheckNormalization_Catalog(t *testing.T) {
	for _, m := range catalogMechanisms() {
		err := CheckNormalization(m, DefaultNormalizationTolerance)
		if m.ID() == ModeCrowdingID {
			if !errors.Is(err, ErrNormalizationViolation) {
				t.Errorf("%s: expected violation, got %v", m.ID(), err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected violation: %v", m.ID(), err)
		}
	}
}

// TestCheckNormalization_ComputeError verifies a failure at rest is surfaced.
func TestCheckNormalization_ComputeError(t *testing.T) {
	err := CheckNormalization(rejectAll{}, DefaultNormalizationTolerance)
	if !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("Expected ErrOutOfDomain, got %v", err)
	}
	if errors.Is(err, ErrNormalizationViolation) {
		t.Error("Compute failure should not be reported as a violation")
	}
}
