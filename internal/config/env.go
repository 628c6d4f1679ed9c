package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the DOFBENCH_* environment defaults. Command-line flags
// override these.
type Env struct {
	Mechanisms []string `env:"DOFBENCH_MECHANISMS" envSeparator:","`
	Seed       uint64   `env:"DOFBENCH_SEED" envDefault:"42"`
	OutDir     string   `env:"DOFBENCH_OUT_DIR"`
	Folds      int      `env:"DOFBENCH_FOLDS" envDefault:"4"`
	Bootstrap  int      `env:"DOFBENCH_BOOTSTRAP" envDefault:"0"`
	TieEpsilon float64  `env:"DOFBENCH_TIE_EPSILON" envDefault:"1e-6"`
	ConfigFile string   `env:"DOFBENCH_CONFIG"`
	Strict     bool     `env:"DOFBENCH_STRICT"`
	LogLevel   string   `env:"DOFBENCH_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Settings returns the default settings with the env evaluator values applied.
func (e Env) Settings() Settings {
	s := DefaultSettings()
	s.Evaluator.TieEpsilon = e.TieEpsilon
	s.Evaluator.Folds = e.Folds
	s.Evaluator.Bootstrap = e.Bootstrap
	return s
}
