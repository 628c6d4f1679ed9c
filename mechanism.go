package dofbench

import (
	"fmt"
	"sort"
)

// Mechanism maps a load configuration to a DoF fraction and its derived
// thermodynamic quantities.
//
// Compute must be pure and deterministic, and must return an error wrapping
// ErrOutOfDomain for configurations outside [0,1)². New mechanisms implement
// this interface; the scenario runner and evaluator never change.
type Mechanism interface {
	ID() string
	Compute(cfg Configuration) (ThermodynamicOutput, error)
}

// MechanismFunc adapts a DoF function into a Mechanism. Domain validation
// and the thermodynamic columns are handled by the adapter.
type MechanismFunc struct {
	Name   string
	DoF    func(cfg Configuration) float64
	Thermo ThermoConfig
}

func (f MechanismFunc) ID() string { return f.Name }

func (f MechanismFunc) Compute(cfg Configuration) (ThermodynamicOutput, error) {
	if err := cfg.Validate(); err != nil {
		return ThermodynamicOutput{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	return Derive(cfg, f.DoF(cfg), f.Thermo), nil
}

// Mechanism ids used by the catalog and the CLI selector.
const (
	CausalDiamondID       = "causal-diamond"
	TensionBandgapID      = "tension-bandgap"
	ModeCrowdingID        = "mode-crowding"
	ConnectivityPruningID = "connectivity-pruning"
	UnruhWindowingID      = "unruh-windowing"
)

// CatalogEntry describes one registered mechanism with its canonical constants.
type CatalogEntry struct {
	ID          string
	Description string
	New         func() Mechanism
}

var catalog = []CatalogEntry{
	{
		ID:          CausalDiamondID,
		Description: "accessible causal-diamond volume shrinks with boost and redshift",
		New:         func() Mechanism { return NewCausalDiamond(DefaultCausalDiamondConfig()) },
	},
	{
		ID:          TensionBandgapID,
		Description: "load-induced tension opens a bandgap that freezes out high modes",
		New:         func() Mechanism { return NewTensionBandgap(DefaultTensionBandgapConfig()) },
	},
	{
		ID:          ModeCrowdingID,
		Description: "redshift crowds modes below the resolvable window (mis-calibrated at rest)",
		New:         func() Mechanism { return NewModeCrowding(DefaultModeCrowdingConfig()) },
	},
	{
		ID:          ConnectivityPruningID,
		Description: "boost-axis links stretch and load prunes the 6-connected lattice",
		New:         func() Mechanism { return NewConnectivityPruning(DefaultConnectivityPruningConfig()) },
	},
	{
		ID:          UnruhWindowingID,
		Description: "thermal window from effective acceleration suppresses modes",
		New:         func() Mechanism { return NewUnruhWindowing(DefaultUnruhWindowingConfig()) },
	},
}

// Catalog returns the registered mechanisms in a stable order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogIDs returns the registered ids in catalog order.
func CatalogIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, e := range catalog {
		ids = append(ids, e.ID)
	}
	return ids
}

// Lookup builds the canonical mechanism for id.
func Lookup(id string) (Mechanism, error) {
	for _, e := range catalog {
		if e.ID == id {
			return e.New(), nil
		}
	}
	known := CatalogIDs()
	sort.Strings(known)
	return nil, fmt.Errorf("unknown mechanism %q (known: %v)", id, known)
}
