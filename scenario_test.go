package dofbench

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCanonicalScenarios verifies the grid contents and order.
func TestCanonicalScenarios(t *testing.T) {
	want := []Scenario{
		{Name: "rest", Configuration: Configuration{Smear: 0, Load: 0}},
		{Name: "high-velocity", Configuration: Configuration{Smear: 0.5, Load: 0}},
		{Name: "strong-gravity", Configuration: Configuration{Smear: 0, Load: 0.5}},
		{Name: "combined", Configuration: Configuration{Smear: 0.3, Load: 0.4}},
	}

	if diff := cmp.Diff(want, CanonicalScenarios()); diff != "" {
		t.Errorf("Canonical grid mismatch (-want +got):\n%s", diff)
	}

	for _, s := range CanonicalScenarios() {
		if err := s.Validate(); err != nil {
			t.Errorf("%s: %v", s.Name, err)
		}
		if !s.CapacityOK() {
			t.Errorf("%s outside the capacity region", s.Name)
		}
	}
}

// TestRunScenarios_PreservesOrder verifies results follow input order and
// failures stay in place.
func TestRunScenarios_PreservesOrder(t *testing.T) {
	scenarios := []Scenario{
		{Name: "combined", Configuration: Configuration{Smear: 0.3, Load: 0.4}},
		{Name: "light-speed", Configuration: Configuration{Smear: 1, Load: 0}},
		{Name: "rest", Configuration: Rest},
	}

	results := RunScenarios(NewCausalDiamond(DefaultCausalDiamondConfig()), scenarios)
	if len(results) != len(scenarios) {
		t.Fatalf("Expected %d results, got %d", len(scenarios), len(results))
	}

	for i, r := range results {
		if r.Name != scenarios[i].Name || r.Config != scenarios[i].Configuration {
			t.Errorf("Result %d: got %s, expected %s", i, r.Name, scenarios[i].Name)
		}
	}

	if !results[0].OK() || !results[2].OK() {
		t.Error("In-domain scenarios should succeed")
	}
	if results[1].OK() || !errors.Is(results[1].Err, ErrOutOfDomain) {
		t.Errorf("light-speed: expected ErrOutOfDomain, got %v", results[1].Err)
	}
	if results[1].Output != (ThermodynamicOutput{}) {
		t.Errorf("Failed scenario should carry a zero output, got %+v", results[1].Output)
	}

	t.Logf("✓ %d scenarios, order preserved, 1 excluded", len(results))
}

// TestRunScenarios_Empty verifies an empty grid yields no results.
func TestRunScenarios_Empty(t *testing.T) {
	if got := RunScenarios(NewUnruhWindowing(DefaultUnruhWindowingConfig()), nil); len(got) != 0 {
		t.Errorf("Expected no results, got %d", len(got))
	}
}

// TestConfiguration_Validate verifies domain boundaries.
func TestConfiguration_Validate(t *testing.T) {
	valid := []Configuration{Rest, {Smear: 0.999999, Load: 0}, {Smear: 0, Load: 0.999999}}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("%+v rejected: %v", c, err)
		}
	}

	invalid := []Configuration{{Smear: 1}, {Load: 1}, {Smear: -1e-9}, {Load: 2}}
	for _, c := range invalid {
		if err := c.Validate(); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("%+v accepted", c)
		}
	}

	if (Configuration{Smear: 0.8, Load: 0.7}).CapacityOK() {
		t.Error("ŝ²+λ̂² = 1.13 should exceed capacity")
	}
}
