package dofbench

// Scenario is one named configuration on the evaluation grid.
type Scenario struct {
	Name          string `yaml:"name"`
	Configuration `yaml:",inline"`
}

// Canonical scenario names.
const (
	ScenarioRest          = "rest"
	ScenarioHighVelocity  = "high-velocity"
	ScenarioStrongGravity = "strong-gravity"
	ScenarioCombined      = "combined"
)

// CanonicalScenarios returns the four-point grid every mechanism is scored on.
//
//	rest            ŝ=0    λ̂=0
//	high-velocity   ŝ=0.5  λ̂=0
//	strong-gravity  ŝ=0    λ̂=0.5
//	combined        ŝ=0.3  λ̂=0.4
func CanonicalScenarios() []Scenario {
	return []Scenario{
		{Name: ScenarioRest, Configuration: Configuration{Smear: 0, Load: 0}},
		{Name: ScenarioHighVelocity, Configuration: Configuration{Smear: 0.5, Load: 0}},
		{Name: ScenarioStrongGravity, Configuration: Configuration{Smear: 0, Load: 0.5}},
		{Name: ScenarioCombined, Configuration: Configuration{Smear: 0.3, Load: 0.4}},
	}
}

// ScenarioResult holds one mechanism's output for one scenario. Err is set
// (and Output zero) when the mechanism rejected the configuration.
type ScenarioResult struct {
	Name   string
	Config Configuration
	Output ThermodynamicOutput
	Err    error
}

// OK reports whether the scenario produced an output.
func (r ScenarioResult) OK() bool { return r.Err == nil }

// RunScenarios evaluates m on every scenario, preserving order.
// Failures are recorded per scenario and never stop the run.
func RunScenarios(m Mechanism, scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))

	for _, s := range scenarios {
		out, err := m.Compute(s.Configuration)
		results = append(results, ScenarioResult{
			Name:   s.Name,
			Config: s.Configuration,
			Output: out,
			Err:    err,
		})
	}

	return results
}
