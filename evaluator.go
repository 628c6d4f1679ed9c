package dofbench

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// EvaluatorConfig controls fitting and model selection.
type EvaluatorConfig struct {
	TieEpsilon             float64      // MSEs closer than this tie; fewer parameters wins
	Criteria               bool         // Compute AIC/BIC
	Folds                  int          // k-fold CV when ≥ 2
	Bootstrap              int          // Bootstrap resamples when > 0
	Seed                   uint64       // Seed for CV folds and bootstrap resampling
	NormalizationTolerance float64      // Rest-state tolerance
	Logger                 *slog.Logger // nil discards
}

// DefaultEvaluatorConfig returns the canonical settings.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		TieEpsilon:             1e-6,
		Criteria:               true,
		Folds:                  4,
		Bootstrap:              0,
		Seed:                   42,
		NormalizationTolerance: DefaultNormalizationTolerance,
	}
}

func (c EvaluatorConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Exclusion records a scenario point dropped from one fit (Form set) or
// from every fit of a mechanism (Form empty).
type Exclusion struct {
	Scenario string `yaml:"scenario"`
	Form     string `yaml:"form,omitempty"`
	Reason   string `yaml:"reason"`
	Err      error  `yaml:"-"`
}

// FitResult is one (mechanism, form) fit. It is never mutated after
// Evaluate returns it.
type FitResult struct {
	MechanismID string           `yaml:"mechanism"`
	FormID      string           `yaml:"form"`
	Parameters  []float64        `yaml:"parameters"`
	ParamCount  int              `yaml:"param_count"`
	MSE         float64          `yaml:"mse"`
	Points      int              `yaml:"points"`
	Exclusions  []Exclusion      `yaml:"exclusions,omitempty"`
	Criteria    *Criteria        `yaml:"criteria,omitempty"`
	CV          *CrossValidation `yaml:"cross_validation,omitempty"`
	Bootstrap   *BootstrapCI     `yaml:"bootstrap,omitempty"`
}

// FormFailure records a form that produced no result for a mechanism.
type FormFailure struct {
	FormID string
	Err    error
}

// MechanismRanking groups one mechanism's fits in ranking order.
type MechanismRanking struct {
	MechanismID   string
	Results       []FitResult // Ascending MSE, ties by parameter count then form order
	Failures      []FormFailure
	Exclusions    []Exclusion // Scenarios dropped from every fit
	Warnings      []string
	Normalization error // *NormalizationError, or nil
	Outputs       []ScenarioResult
}

// Best returns the top fit of the group.
func (g MechanismRanking) Best() (FitResult, bool) {
	if len(g.Results) == 0 {
		return FitResult{}, false
	}
	return g.Results[0], true
}

// RankingTable is the evaluator's output: groups ordered by best MSE.
// It is a derived view and can be rebuilt from the same inputs at any time.
type RankingTable struct {
	Benchmark string
	Forms     []string
	Groups    []MechanismRanking
}

// Best returns the overall best fit.
func (t RankingTable) Best() (FitResult, bool) {
	if len(t.Groups) == 0 {
		return FitResult{}, false
	}
	return t.Groups[0].Best()
}

// Flatten returns every fit, group by group, in ranking order.
func (t RankingTable) Flatten() []FitResult {
	var out []FitResult
	for _, g := range t.Groups {
		out = append(out, g.Results...)
	}
	return out
}

// Group returns the ranking for one mechanism id.
func (t RankingTable) Group(id string) (MechanismRanking, bool) {
	for _, g := range t.Groups {
		if g.MechanismID == id {
			return g, true
		}
	}
	return MechanismRanking{}, false
}

// Evaluate runs m over scenarios, fits every form to b and ranks the fits.
//
// Out-of-domain scenarios and failing benchmark points are excluded and
// annotated. A form that fails is recorded in Failures. The returned error
// wraps ErrNoValidFits when no form produced a result; the table still
// carries the group so the caller can report why.
func Evaluate(m Mechanism, scenarios []Scenario, b Benchmark, forms []Form, cfg EvaluatorConfig) (RankingTable, error) {
	table := RankingTable{Benchmark: b.Name(), Forms: formIDs(forms)}
	group, err := evaluateMechanism(m, scenarios, b, forms, cfg)
	table.Groups = []MechanismRanking{group}
	return table, err
}

// EvaluateAll evaluates every mechanism. Failures are collected with
// errors.Join and do not stop the others; the table holds the successes,
// ordered by best MSE.
func EvaluateAll(ms []Mechanism, scenarios []Scenario, b Benchmark, forms []Form, cfg EvaluatorConfig) (RankingTable, error) {
	table := RankingTable{Benchmark: b.Name(), Forms: formIDs(forms)}

	var errs []error
	for _, m := range ms {
		group, err := evaluateMechanism(m, scenarios, b, forms, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		table.Groups = append(table.Groups, group)
	}

	sort.SliceStable(table.Groups, func(i, j int) bool {
		return table.Groups[i].Results[0].MSE < table.Groups[j].Results[0].MSE
	})

	return table, errors.Join(errs...)
}

func evaluateMechanism(m Mechanism, scenarios []Scenario, b Benchmark, forms []Form, cfg EvaluatorConfig) (MechanismRanking, error) {
	log := cfg.logger().With("mechanism", m.ID())
	group := MechanismRanking{MechanismID: m.ID()}

	group.Outputs = RunScenarios(m, scenarios)

	if err := CheckNormalization(m, cfg.NormalizationTolerance); err != nil {
		group.Normalization = err
		group.Warnings = append(group.Warnings, err.Error())
		log.Warn("normalization", "err", err)
	}

	var names []string
	var ns, bs []float64
	for _, r := range group.Outputs {
		if !r.OK() {
			group.Exclusions = append(group.Exclusions, Exclusion{Scenario: r.Name, Reason: r.Err.Error(), Err: r.Err})
			continue
		}
		n := r.Output.DoFFraction
		if !finite(n) {
			err := fmt.Errorf("N=%v not finite: %w", n, ErrFitDegenerate)
			group.Exclusions = append(group.Exclusions, Exclusion{Scenario: r.Name, Reason: err.Error(), Err: err})
			continue
		}
		v, err := b.Value(r.Config)
		if err != nil {
			err = fmt.Errorf("%s benchmark: %w", b.Name(), err)
			group.Exclusions = append(group.Exclusions, Exclusion{Scenario: r.Name, Reason: err.Error(), Err: err})
			continue
		}
		names = append(names, r.Name)
		ns = append(ns, n)
		bs = append(bs, v)
	}
	for _, e := range group.Exclusions {
		log.Debug("scenario excluded", "scenario", e.Scenario, "reason", e.Reason)
	}

	if len(ns) == 0 {
		return group, fmt.Errorf("%s: no usable scenarios: %w", m.ID(), ErrNoValidFits)
	}

	if cfg.Folds >= 2 || cfg.Bootstrap > 0 {
		log.Debug("resampling", "seed", cfg.Seed, "folds", cfg.Folds, "bootstrap", cfg.Bootstrap)
	}

	type ranked struct {
		res   FitResult
		order int
	}
	var fits []ranked
	for i, f := range forms {
		res, err := fitForm(m.ID(), f, names, ns, bs, cfg)
		if err != nil {
			group.Failures = append(group.Failures, FormFailure{FormID: f.ID(), Err: err})
			log.Debug("fit failed", "form", f.ID(), "err", err)
			continue
		}
		log.Debug("fit", "form", f.ID(), "mse", res.MSE, "params", res.Parameters)
		fits = append(fits, ranked{res: res, order: i})
	}

	eps := cfg.TieEpsilon
	sort.SliceStable(fits, func(i, j int) bool {
		x, y := fits[i], fits[j]
		if math.Abs(x.res.MSE-y.res.MSE) > eps {
			return x.res.MSE < y.res.MSE
		}
		if x.res.ParamCount != y.res.ParamCount {
			return x.res.ParamCount < y.res.ParamCount
		}
		return x.order < y.order
	})
	for _, f := range fits {
		group.Results = append(group.Results, f.res)
	}

	if len(group.Results) == 0 {
		errs := []error{fmt.Errorf("%s: %w", m.ID(), ErrNoValidFits)}
		for _, f := range group.Failures {
			errs = append(errs, fmt.Errorf("%s/%s: %w", m.ID(), f.FormID, f.Err))
		}
		return group, errors.Join(errs...)
	}

	return group, nil
}

// fitForm fits one form to the mechanism's usable points.
func fitForm(mechanismID string, f Form, names []string, ns, bs []float64, cfg EvaluatorConfig) (FitResult, error) {
	res := FitResult{
		MechanismID: mechanismID,
		FormID:      f.ID(),
		ParamCount:  f.ParamCount(),
	}

	var fn, fb []float64
	for i, n := range ns {
		if !f.Accepts(n) {
			err := fmt.Errorf("N=%g outside %s domain: %w", n, f.ID(), ErrFitDegenerate)
			res.Exclusions = append(res.Exclusions, Exclusion{Scenario: names[i], Form: f.ID(), Reason: err.Error(), Err: err})
			continue
		}
		fn = append(fn, n)
		fb = append(fb, bs[i])
	}
	if len(fn) == 0 {
		return FitResult{}, fmt.Errorf("no points in %s domain: %w", f.ID(), ErrFitDegenerate)
	}

	params, err := f.Fit(fn, fb)
	if err != nil {
		return FitResult{}, err
	}

	sse := SSE(f, fn, fb, params)
	if !finite(sse) {
		return FitResult{}, fmt.Errorf("objective %v at optimum: %w", sse, ErrFitDegenerate)
	}

	res.Parameters = params
	res.Points = len(fn)
	res.MSE = sse / float64(len(fn))

	if cfg.Criteria {
		c := InformationCriteria(sse, len(fn), f.ParamCount())
		res.Criteria = &c
	}
	if cfg.Folds >= 2 {
		cv := CrossValidate(f, fn, fb, cfg.Folds, cfg.Seed)
		res.CV = &cv
	}
	if cfg.Bootstrap > 0 {
		ci := Bootstrap(f, fn, fb, cfg.Bootstrap, cfg.Seed)
		res.Bootstrap = &ci
	}

	return res, nil
}

func formIDs(forms []Form) []string {
	ids := make([]string, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.ID())
	}
	return ids
}
