package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexshd/dofbench"
	"github.com/alexshd/dofbench/internal/config"
	"github.com/alexshd/dofbench/internal/report"
	"github.com/spf13/cobra"
)

type sweepOptions struct {
	mechanism string
	axis      string
	fixed     float64
	step      float64
	surface   bool
	outDir    string
}

func newSweepCommand(env config.Env, g *globalOptions) *cobra.Command {
	var o sweepOptions

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one load axis and report monotonicity and the DoF floor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, g, env, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.mechanism, "mechanism", "", "mechanism id")
	f.StringVar(&o.axis, "axis", string(dofbench.AxisLoad), "swept axis: smear or load")
	f.Float64Var(&o.fixed, "fixed", 0, "value of the other axis")
	f.Float64Var(&o.step, "step", dofbench.DefaultSweepConfig().Step, "sweep step")
	f.BoolVar(&o.surface, "surface", false, "write the full (smear, load) surface to --out")
	f.StringVar(&o.outDir, "out", env.OutDir, "directory for the YAML output")
	_ = cmd.MarkFlagRequired("mechanism")
	return cmd
}

func runSweep(cmd *cobra.Command, g *globalOptions, env config.Env, o sweepOptions) error {
	log, err := g.logger(cmd)
	if err != nil {
		return err
	}

	axis, err := dofbench.ParseAxis(o.axis)
	if err != nil {
		return err
	}
	if o.step <= 0 {
		return fmt.Errorf("step %g must be > 0", o.step)
	}

	s, err := g.settings(env)
	if err != nil {
		return err
	}
	ms, err := s.BuildMechanisms([]string{o.mechanism})
	if err != nil {
		return err
	}
	m := ms[0]

	sc := dofbench.DefaultSweepConfig()
	sc.Step = o.step

	a := dofbench.AnalyzeSweep(m, axis, o.fixed, sc)
	log.Info("sweep", "mechanism", m.ID(), "axis", axis, "fixed", o.fixed, "points", len(a.Points))
	if err := report.SweepSummary(cmd.OutOrStdout(), a); err != nil {
		return err
	}

	if o.outDir == "" {
		if o.surface {
			log.Warn("surface requested without --out; nothing written")
		}
		return nil
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w: %w", o.outDir, dofbench.ErrIOFailure, err)
	}

	path := filepath.Join(o.outDir, fmt.Sprintf("dofbench-sweep-%s-%s.yaml", m.ID(), axis))
	var v any = a
	if o.surface {
		path = filepath.Join(o.outDir, fmt.Sprintf("dofbench-surface-%s.yaml", m.ID()))
		v = dofbench.Surface(m, sc)
	}
	if err := report.SaveYAML(path, v); err != nil {
		return err
	}
	log.Info("wrote sweep", "path", path)
	return nil
}
