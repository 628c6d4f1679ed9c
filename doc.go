// Package dofbench evaluates degree-of-freedom (DoF) reduction mechanisms
// against a relativistic dilation benchmark.
//
// # Overview
//
// A discrete network substrate under load loses accessible vibrational
// modes. dofbench models that loss with competing mechanisms, each mapping
// two load parameters to a DoF fraction N, and asks which scaling function
// B(N) best reproduces the Schwarzschild time-dilation factor.
//
// # Architecture
//
// The package components:
//
//   - substrate  - Configuration (ŝ, λ̂), Γ_std, thermodynamic derivation
//   - mechanisms - Causal-Diamond, Tension-Bandgap, Mode-Crowding,
//     Connectivity-Pruning, Unruh-Windowing
//   - scenario   - Canonical grid and order-preserving runner
//   - benchmark  - Reference curve (Schwarzschild)
//   - forms      - Linear, Quadratic, Exponential, Power-law candidates
//   - evaluator  - MSE ranking, AIC/BIC, k-fold CV, bootstrap CI
//   - sweep      - Monotonicity and floor analysis, capacity-region surface
//   - assertions - Test helpers for mechanism properties
//
// # Quick Start
//
// Rank every catalog mechanism on the canonical grid:
//
//	var ms []dofbench.Mechanism
//	for _, e := range dofbench.Catalog() {
//	    ms = append(ms, e.New())
//	}
//
//	table, err := dofbench.EvaluateAll(ms,
//	    dofbench.CanonicalScenarios(),
//	    dofbench.Schwarzschild{},
//	    dofbench.StandardForms(),
//	    dofbench.DefaultEvaluatorConfig())
//	if err != nil {
//	    log.Print(err) // Partial failures; table holds the rest
//	}
//
//	best, _ := table.Best()
//	fmt.Printf("%s/%s MSE=%.4g\n", best.MechanismID, best.FormID, best.MSE)
//
// # Load Parameters
//
//   - ŝ (smear): kinematic load, the v/c of the substrate region
//   - λ̂ (load):  gravitational load, one minus the lapse
//
// Both live in [0,1). ŝ=1 is the light-speed limit and λ̂=1 the horizon;
// mechanisms reject them with ErrOutOfDomain.
//
// The mechanism-independent dilation is
//
//	Γ_std = 1/sqrt(1-ŝ²) · 1/(1-λ̂)
//
// and each mechanism predicts Γ_DoF = 1/N. A correctly calibrated
// mechanism has N=1 (so Γ_DoF = Γ_std = 1) at rest.
//
// # Adding a Mechanism
//
// Implement Mechanism, or wrap a function:
//
//	m := dofbench.MechanismFunc{
//	    Name: "my-mechanism",
//	    DoF:  func(c dofbench.Configuration) float64 { return 1 - c.Load/2 },
//	}
//
// The runner and evaluator never change.
//
// # Testing
//
//	func TestMyMechanism(t *testing.T) {
//	    cfg := dofbench.DefaultAssertionConfig()
//	    dofbench.AssertNormalized(t, m, cfg)
//	    dofbench.AssertMonotoneDoF(t, m, cfg)
//	}
package dofbench
