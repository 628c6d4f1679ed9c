package dofbench

import (
	"fmt"
	"math"
)

// DefaultNormalizationTolerance bounds |N-1|, |Γ_std-1| and |Γ_DoF-1| at rest.
const DefaultNormalizationTolerance = 1e-6

// NormalizationConstraint enforces the rest-state calibration law.
//
// A correctly normalized mechanism returns, at ŝ=0 and λ̂=0:
//
//	N = 1,  Γ_std = 1,  Γ_DoF = 1/N = 1
//
// Anything else means the mechanism's constants were tuned against the
// wrong reference and its loaded values cannot be compared with Γ_std.
type NormalizationConstraint struct {
	Tolerance float64
}

// NewNormalizationConstraint creates a constraint with the given tolerance.
// A non-positive tolerance falls back to DefaultNormalizationTolerance.
func NewNormalizationConstraint(tol float64) NormalizationConstraint {
	if tol <= 0 {
		tol = DefaultNormalizationTolerance
	}
	return NormalizationConstraint{Tolerance: tol}
}

// Validate checks a rest-state output against the constraint.
func (c NormalizationConstraint) Validate(id string, rest ThermodynamicOutput) error {
	if c.Deviation(rest) > c.Tolerance {
		return &NormalizationError{
			MechanismID: id,
			DoFFraction: rest.DoFFraction,
			GammaStd:    rest.GammaStd,
			GammaDoF:    rest.GammaDoF,
			Tolerance:   c.Tolerance,
		}
	}
	return nil
}

// Deviation returns the largest of |N-1|, |Γ_std-1| and |Γ_DoF-1|.
// NaN deviations are reported as +Inf.
func (c NormalizationConstraint) Deviation(rest ThermodynamicOutput) float64 {
	worst := 0.0
	for _, v := range []float64{rest.DoFFraction, rest.GammaStd, rest.GammaDoF} {
		d := math.Abs(v - 1)
		if math.IsNaN(d) {
			return math.Inf(1)
		}
		worst = math.Max(worst, d)
	}
	return worst
}

// CheckNormalization computes m at rest and validates it.
//
// It returns a *NormalizationError (matching ErrNormalizationViolation)
// for mis-calibrated mechanisms, and the Compute error if m fails at rest.
func CheckNormalization(m Mechanism, tol float64) error {
	rest, err := m.Compute(Rest)
	if err != nil {
		return fmt.Errorf("%s at rest: %w", m.ID(), err)
	}
	return NewNormalizationConstraint(tol).Validate(m.ID(), rest)
}
