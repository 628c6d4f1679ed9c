// Package config loads dofbench run settings: environment defaults, the
// optional YAML settings file, and the hash that names output artifacts.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexshd/dofbench"
	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// EvaluatorSettings is the evaluator block of the settings file.
type EvaluatorSettings struct {
	TieEpsilon float64 `yaml:"tie_epsilon"`
	Folds      int     `yaml:"folds"`
	Bootstrap  int     `yaml:"bootstrap"`
}

// Settings are the effective run settings. Every field starts at its
// default; the settings file overrides only the keys it names.
type Settings struct {
	Scenarios           []dofbench.Scenario                `yaml:"scenarios"`
	CausalDiamond       dofbench.CausalDiamondConfig       `yaml:"causal_diamond"`
	TensionBandgap      dofbench.TensionBandgapConfig      `yaml:"tension_bandgap"`
	ModeCrowding        dofbench.ModeCrowdingConfig        `yaml:"mode_crowding"`
	ConnectivityPruning dofbench.ConnectivityPruningConfig `yaml:"connectivity_pruning"`
	UnruhWindowing      dofbench.UnruhWindowingConfig      `yaml:"unruh_windowing"`
	Evaluator           EvaluatorSettings                  `yaml:"evaluator"`
}

// DefaultSettings returns the canonical grid and constants.
func DefaultSettings() Settings {
	ev := dofbench.DefaultEvaluatorConfig()
	return Settings{
		Scenarios:           dofbench.CanonicalScenarios(),
		CausalDiamond:       dofbench.DefaultCausalDiamondConfig(),
		TensionBandgap:      dofbench.DefaultTensionBandgapConfig(),
		ModeCrowding:        dofbench.DefaultModeCrowdingConfig(),
		ConnectivityPruning: dofbench.DefaultConnectivityPruningConfig(),
		UnruhWindowing:      dofbench.DefaultUnruhWindowingConfig(),
		Evaluator: EvaluatorSettings{
			TieEpsilon: ev.TieEpsilon,
			Folds:      ev.Folds,
			Bootstrap:  ev.Bootstrap,
		},
	}
}

// LoadFile decodes the settings file at path over base. An empty path
// returns base unchanged.
func LoadFile(path string, base Settings) (Settings, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := Decode(bytes.NewReader(data), base)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads one YAML document over base. Unknown keys are rejected.
func Decode(r io.Reader, base Settings) (Settings, error) {
	s := base
	s.Scenarios = append([]dofbench.Scenario(nil), base.Scenarios...)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		// YAML library returns io.EOF when there is no document.
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); err == nil {
		return Settings{}, errors.New("decode settings: multiple YAML documents are not supported")
	} else if !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks structural constraints. Scenario values outside [0,1)
// are allowed; the evaluator excludes them with a recorded reason.
func (s Settings) Validate() error {
	if len(s.Scenarios) == 0 {
		return errors.New("settings: at least one scenario is required")
	}
	seen := make(map[string]bool, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("settings: scenario %d has no name", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("settings: duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
	}

	if s.Evaluator.TieEpsilon < 0 {
		return fmt.Errorf("settings: tie_epsilon %g must be ≥ 0", s.Evaluator.TieEpsilon)
	}
	if s.Evaluator.Folds < 0 {
		return fmt.Errorf("settings: folds %d must be ≥ 0", s.Evaluator.Folds)
	}
	if s.Evaluator.Bootstrap < 0 {
		return fmt.Errorf("settings: bootstrap %d must be ≥ 0", s.Evaluator.Bootstrap)
	}
	if s.TensionBandgap.Modes < 1 {
		return fmt.Errorf("settings: tension_bandgap.modes %d must be ≥ 1", s.TensionBandgap.Modes)
	}
	return nil
}

// BuildMechanisms constructs the mechanisms named by ids with the settings'
// constants. No ids selects the whole catalog. Unknown ids are joined into
// the error; the known ones are still returned.
func (s Settings) BuildMechanisms(ids []string) ([]dofbench.Mechanism, error) {
	if len(ids) == 0 {
		ids = dofbench.CatalogIDs()
	}

	var errs []error
	ms := make([]dofbench.Mechanism, 0, len(ids))
	for _, id := range ids {
		var m dofbench.Mechanism
		switch id {
		case dofbench.CausalDiamondID:
			m = dofbench.NewCausalDiamond(s.CausalDiamond)
		case dofbench.TensionBandgapID:
			m = dofbench.NewTensionBandgap(s.TensionBandgap)
		case dofbench.ModeCrowdingID:
			m = dofbench.NewModeCrowding(s.ModeCrowding)
		case dofbench.ConnectivityPruningID:
			m = dofbench.NewConnectivityPruning(s.ConnectivityPruning)
		case dofbench.UnruhWindowingID:
			m = dofbench.NewUnruhWindowing(s.UnruhWindowing)
		default:
			_, err := dofbench.Lookup(id)
			errs = append(errs, err)
			continue
		}
		ms = append(ms, m)
	}
	return ms, errors.Join(errs...)
}

// EvaluatorConfig returns the evaluator configuration for seed.
func (s Settings) EvaluatorConfig(seed uint64) dofbench.EvaluatorConfig {
	cfg := dofbench.DefaultEvaluatorConfig()
	cfg.TieEpsilon = s.Evaluator.TieEpsilon
	cfg.Folds = s.Evaluator.Folds
	cfg.Bootstrap = s.Evaluator.Bootstrap
	cfg.Seed = seed
	return cfg
}

// hashInput is what the artifact hash covers.
type hashInput struct {
	Mechanisms []string `yaml:"mechanisms"`
	Settings   Settings `yaml:"settings"`
}

// Hash returns the first 16 hex digits of xxhash64 over the canonical YAML
// of the settings and the selected mechanism ids.
func (s Settings) Hash(ids []string) (string, error) {
	if len(ids) == 0 {
		ids = dofbench.CatalogIDs()
	}
	data, err := yaml.Marshal(hashInput{Mechanisms: ids, Settings: s})
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
