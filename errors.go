package dofbench

import (
	"errors"
	"fmt"
)

// Error taxonomy. Match with errors.Is; the typed errors below wrap these.
var (
	// ErrOutOfDomain: a load parameter (or benchmark value) left [0,1).
	// Reaching ŝ=1 or λ̂=1 is the light-speed / horizon limit and the model
	// is undefined there.
	ErrOutOfDomain = errors.New("out of domain")

	// ErrNormalizationViolation: a mechanism does not return N=1 and
	// Γ_std=Γ_DoF=1 at rest.
	ErrNormalizationViolation = errors.New("normalization violation")

	// ErrFitDegenerate: a candidate form is undefined at a required point
	// or has too few usable points to determine its parameters.
	ErrFitDegenerate = errors.New("fit degenerate")

	// ErrIOFailure: an output artifact could not be written.
	ErrIOFailure = errors.New("io failure")

	// ErrNoValidFits: every form failed for a mechanism.
	ErrNoValidFits = errors.New("no valid fits")
)

// DomainError reports which parameter left the model domain.
type DomainError struct {
	Param string  // "smear", "load" or "benchmark"
	Value float64 // Offending value
}

func (e *DomainError) Error() string {
	switch e.Param {
	case "smear":
		return fmt.Sprintf("smear ŝ=%.6g outside [0,1): speed-of-light limit", e.Value)
	case "load":
		return fmt.Sprintf("load λ̂=%.6g outside [0,1): horizon limit", e.Value)
	default:
		return fmt.Sprintf("%s=%.6g not finite and positive", e.Param, e.Value)
	}
}

func (e *DomainError) Unwrap() error { return ErrOutOfDomain }

// NormalizationError carries the rest-state values of a mis-calibrated mechanism.
type NormalizationError struct {
	MechanismID string
	DoFFraction float64
	GammaStd    float64
	GammaDoF    float64
	Tolerance   float64
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf(
		"%s mis-calibrated at rest: N=%.4f, Γ_std=%.4f, Γ_DoF=%.4f (want 1.000 ± %.0e)",
		e.MechanismID, e.DoFFraction, e.GammaStd, e.GammaDoF, e.Tolerance)
}

func (e *NormalizationError) Unwrap() error { return ErrNormalizationViolation }
