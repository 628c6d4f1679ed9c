package cli

import (
	"errors"

	"github.com/alexshd/dofbench"
	"github.com/alexshd/dofbench/internal/config"
	"github.com/alexshd/dofbench/internal/report"
	"github.com/spf13/cobra"
)

type runOptions struct {
	mechanisms []string
	seed       uint64
	outDir     string
	folds      int
	bootstrap  int
	tieEpsilon float64
	strict     bool
}

func newRunCommand(env config.Env, g *globalOptions) *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit every candidate form for the selected mechanisms and rank them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.settings(env)
			if err != nil {
				return err
			}
			// Flags win over the settings file only when given.
			flags := cmd.Flags()
			if flags.Changed("folds") {
				s.Evaluator.Folds = o.folds
			}
			if flags.Changed("bootstrap") {
				s.Evaluator.Bootstrap = o.bootstrap
			}
			if flags.Changed("tie-epsilon") {
				s.Evaluator.TieEpsilon = o.tieEpsilon
			}
			if err := s.Validate(); err != nil {
				return err
			}
			return runEvaluation(cmd, g, s, o)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&o.mechanisms, "mechanism", env.Mechanisms, "mechanism id (repeatable; default all)")
	f.Uint64Var(&o.seed, "seed", env.Seed, "seed for CV folds and bootstrap resampling")
	f.StringVar(&o.outDir, "out", env.OutDir, "directory for the summary and records files")
	f.IntVar(&o.folds, "folds", env.Folds, "cross-validation folds (< 2 disables)")
	f.IntVar(&o.bootstrap, "bootstrap", env.Bootstrap, "bootstrap resamples (0 disables)")
	f.Float64Var(&o.tieEpsilon, "tie-epsilon", env.TieEpsilon, "MSE difference treated as a tie")
	f.BoolVar(&o.strict, "strict", env.Strict, "fail the run on a normalization warning")
	return cmd
}

func runEvaluation(cmd *cobra.Command, g *globalOptions, s config.Settings, o runOptions) error {
	log, err := g.logger(cmd)
	if err != nil {
		return err
	}

	ms, buildErr := s.BuildMechanisms(o.mechanisms)
	hash, err := s.Hash(o.mechanisms)
	if err != nil {
		return err
	}

	cfg := s.EvaluatorConfig(o.seed)
	cfg.Logger = log
	log.Info("evaluating",
		"mechanisms", idList(o.mechanisms),
		"scenarios", len(s.Scenarios),
		"seed", o.seed,
		"config_hash", hash)

	table, evalErr := dofbench.EvaluateAll(ms, s.Scenarios, dofbench.Schwarzschild{}, dofbench.StandardForms(), cfg)
	failed := errors.Join(buildErr, evalErr)

	if err := report.Summary(cmd.OutOrStdout(), table, failed); err != nil {
		return err
	}

	errs := []error{failed}
	if o.outDir != "" {
		run := report.Run{Seed: o.seed, ConfigHash: hash}
		paths, err := report.Save(o.outDir, run, table, failed)
		if err != nil {
			log.Error("write artifacts", "dir", o.outDir, "err", err)
			errs = append(errs, err)
		} else {
			log.Info("wrote artifacts", "summary", paths.Summary, "records", paths.Records, "run_id", run.ID())
		}
	}
	if o.strict {
		errs = append(errs, normalizationFailures(table))
	}

	if best, ok := table.Best(); ok {
		log.Info("best fit", "mechanism", best.MechanismID, "form", best.FormID, "mse", best.MSE)
	}
	return errors.Join(errs...)
}
