package dofbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Form is a candidate scaling function B(N; θ).
//
// Fit receives only points the form Accepts and returns θ̂ minimizing the
// sum of squared residuals. A form that cannot determine its parameters
// returns an error wrapping ErrFitDegenerate.
type Form interface {
	ID() string
	ParamCount() int
	Accepts(n float64) bool
	Predict(n float64, params []float64) float64
	Fit(ns, bs []float64) ([]float64, error)
}

// Form ids.
const (
	LinearID      = "linear"
	QuadraticID   = "quadratic"
	ExponentialID = "exponential"
	PowerLawID    = "power-law"
)

// StandardForms returns the four candidate forms in ranking order.
func StandardForms() []Form {
	return []Form{
		Linear{},
		Quadratic{},
		Exponential{Scan: DefaultScanConfig()},
		PowerLaw{Scan: DefaultScanConfig()},
	}
}

// FormByID returns the standard form with the given id.
func FormByID(id string) (Form, error) {
	for _, f := range StandardForms() {
		if f.ID() == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown form %q", id)
}

// SSE returns the sum of squared residuals of f(·; params) against bs.
func SSE(f Form, ns, bs, params []float64) float64 {
	var sse float64
	for i, n := range ns {
		r := f.Predict(n, params) - bs[i]
		sse += r * r
	}
	return sse
}

// Linear is B = a·N + b.
type Linear struct{}

func (Linear) ID() string { return LinearID }
func (Linear) ParamCount() int { return 2 }
func (Linear) Accepts(float64) bool { return true }
func (Linear) Predict(n float64, p []float64) float64 {
	return p[0]*n + p[1]
}

func (l Linear) Fit(ns, bs []float64) ([]float64, error) {
	return polyFit(ns, bs, l.ParamCount())
}

// Quadratic is B = a·N² + b·N + c.
type Quadratic struct{}

func (Quadratic) ID() string { return QuadraticID }
func (Quadratic) ParamCount() int { return 3 }
func (Quadratic) Accepts(float64) bool { return true }
func (Quadratic) Predict(n float64, p []float64) float64 {
	return (p[0]*n+p[1])*n + p[2]
}

func (q Quadratic) Fit(ns, bs []float64) ([]float64, error) {
	return polyFit(ns, bs, q.ParamCount())
}

// polyFit solves the least-squares problem for a polynomial with k
// coefficients (highest power first) via QR on the Vandermonde matrix.
func polyFit(ns, bs []float64, k int) ([]float64, error) {
	if d := distinct(ns); d < k {
		return nil, fmt.Errorf("%d distinct N values for %d parameters: %w", d, k, ErrFitDegenerate)
	}

	x := mat.NewDense(len(ns), k, nil)
	for i, n := range ns {
		p := 1.0
		for j := k - 1; j >= 0; j-- {
			x.Set(i, j, p)
			p *= n
		}
	}
	y := mat.NewVecDense(len(bs), append([]float64(nil), bs...))

	var theta mat.VecDense
	if err := theta.SolveVec(x, y); err != nil {
		return nil, fmt.Errorf("least squares: %v: %w", err, ErrFitDegenerate)
	}

	params := make([]float64, k)
	for j := range params {
		params[j] = theta.AtVec(j)
	}
	return params, nil
}

// distinct counts distinct values of ns.
func distinct(ns []float64) int {
	seen := make(map[float64]struct{}, len(ns))
	for _, n := range ns {
		seen[n] = struct{}{}
	}
	return len(seen)
}

// Exponential is B = exp(-α·(1-N)). It equals 1 at N=1 for every α.
type Exponential struct {
	Scan ScanConfig
}

func (Exponential) ID() string { return ExponentialID }
func (Exponential) ParamCount() int { return 1 }
func (Exponential) Accepts(float64) bool { return true }
func (Exponential) Predict(n float64, p []float64) float64 {
	return math.Exp(-p[0] * (1 - n))
}

func (e Exponential) Fit(ns, bs []float64) ([]float64, error) {
	return scanFit(e, e.Scan, ns, bs)
}

// PowerLaw is B = N^γ. Points with N ≤ 0 are not accepted.
type PowerLaw struct {
	Scan ScanConfig
}

func (PowerLaw) ID() string { return PowerLawID }
func (PowerLaw) ParamCount() int { return 1 }
func (PowerLaw) Accepts(n float64) bool { return n > 0 }
func (PowerLaw) Predict(n float64, p []float64) float64 {
	return math.Pow(n, p[0])
}

func (pl PowerLaw) Fit(ns, bs []float64) ([]float64, error) {
	return scanFit(pl, pl.Scan, ns, bs)
}

// scanFit fits a one-parameter form with Minimize1D.
func scanFit(f Form, scan ScanConfig, ns, bs []float64) ([]float64, error) {
	if len(ns) == 0 {
		return nil, fmt.Errorf("no usable points: %w", ErrFitDegenerate)
	}
	if scan.Steps == 0 {
		scan = DefaultScanConfig()
	}

	objective := func(a float64) float64 {
		return SSE(f, ns, bs, []float64{a})
	}
	best, err := Minimize1D(objective, scan)
	if err != nil {
		return nil, err
	}
	return []float64{best}, nil
}
