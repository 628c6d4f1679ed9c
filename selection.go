package dofbench

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// varianceFloor keeps ln(σ̂²) finite for exact fits.
const varianceFloor = 1e-15

// PCG stream selectors, so fold assignment and resampling never share a
// sequence for the same seed.
const (
	foldStream      = 0x6b666f6c64 // "kfold"
	bootstrapStream = 0x626f6f74   // "boot"
)

// Criteria holds the information criteria of one fit.
type Criteria struct {
	AIC           float64 `yaml:"aic"`
	BIC           float64 `yaml:"bic"`
	LogLikelihood float64 `yaml:"log_likelihood"`
}

// InformationCriteria scores a least-squares fit under a Gaussian error
// model with the ML variance σ̂² = SSE/n:
//
//	ln L̂ = -n/2 · (ln(2πσ̂²) + 1)
//	AIC  = 2k - 2 ln L̂
//	BIC  = k ln n - 2 ln L̂
func InformationCriteria(sse float64, n, k int) Criteria {
	if n <= 0 {
		return Criteria{}
	}
	fn := float64(n)
	sigma2 := math.Max(sse/fn, varianceFloor)
	ll := -fn / 2 * (math.Log(2*math.Pi*sigma2) + 1)
	return Criteria{
		AIC:           2*float64(k) - 2*ll,
		BIC:           float64(k)*math.Log(fn) - 2*ll,
		LogLikelihood: ll,
	}
}

// CrossValidation summarizes k-fold held-out MSE.
type CrossValidation struct {
	Folds   int     `yaml:"folds"`
	Seed    uint64  `yaml:"seed"`
	Mean    float64 `yaml:"mean"`
	StdDev  float64 `yaml:"stddev"`
	Skipped int     `yaml:"skipped"` // Folds whose training set could not be fit
}

// CrossValidate runs k-fold CV of form f over the points (ns, bs).
//
// Points are shuffled by a PCG stream seeded with seed and dealt round-robin
// into folds. folds is clamped to len(ns). A fold whose training set is
// degenerate for f is skipped and counted.
func CrossValidate(f Form, ns, bs []float64, folds int, seed uint64) CrossValidation {
	n := len(ns)
	folds = min(folds, n)
	cv := CrossValidation{Folds: folds, Seed: seed}
	if folds < 2 {
		return cv
	}

	rng := rand.New(rand.NewPCG(seed, foldStream))
	perm := rng.Perm(n)

	var scores []float64
	for k := 0; k < folds; k++ {
		var trainN, trainB, testN, testB []float64
		for pos, idx := range perm {
			if pos%folds == k {
				testN = append(testN, ns[idx])
				testB = append(testB, bs[idx])
			} else {
				trainN = append(trainN, ns[idx])
				trainB = append(trainB, bs[idx])
			}
		}

		if distinct(trainN) < f.ParamCount() {
			cv.Skipped++
			continue
		}
		params, err := f.Fit(trainN, trainB)
		if err != nil {
			cv.Skipped++
			continue
		}
		mse := SSE(f, testN, testB, params) / float64(len(testN))
		if !finite(mse) {
			cv.Skipped++
			continue
		}
		scores = append(scores, mse)
	}

	cv.Mean, cv.StdDev = meanStdDev(scores)
	return cv
}

// BootstrapCI is a percentile confidence interval for the MSE.
type BootstrapCI struct {
	Resamples int     `yaml:"resamples"`
	Seed      uint64  `yaml:"seed"`
	Lower     float64 `yaml:"lower"` // 2.5% quantile
	Upper     float64 `yaml:"upper"` // 97.5% quantile
	Skipped   int     `yaml:"skipped"`
}

// Bootstrap resamples (ns, bs) with replacement, refits f on each resample
// and returns the 95% empirical interval of the resample MSEs.
func Bootstrap(f Form, ns, bs []float64, resamples int, seed uint64) BootstrapCI {
	ci := BootstrapCI{Resamples: resamples, Seed: seed}
	n := len(ns)
	if resamples <= 0 || n == 0 {
		return ci
	}

	rng := rand.New(rand.NewPCG(seed, bootstrapStream))
	sampleN := make([]float64, n)
	sampleB := make([]float64, n)

	mses := make([]float64, 0, resamples)
	for r := 0; r < resamples; r++ {
		for i := range sampleN {
			j := rng.IntN(n)
			sampleN[i], sampleB[i] = ns[j], bs[j]
		}
		if distinct(sampleN) < f.ParamCount() {
			ci.Skipped++
			continue
		}
		params, err := f.Fit(sampleN, sampleB)
		if err != nil {
			ci.Skipped++
			continue
		}
		mse := SSE(f, sampleN, sampleB, params) / float64(n)
		if !finite(mse) {
			ci.Skipped++
			continue
		}
		mses = append(mses, mse)
	}

	if len(mses) == 0 {
		return ci
	}
	sort.Float64s(mses)
	ci.Lower = stat.Quantile(0.025, stat.Empirical, mses, nil)
	ci.Upper = stat.Quantile(0.975, stat.Empirical, mses, nil)
	return ci
}

// meanStdDev returns the mean and sample standard deviation, with zero
// spread for fewer than two values.
func meanStdDev(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
