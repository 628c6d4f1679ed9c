// Package cli wires the dofbench commands: run, sweep and mechanisms.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexshd/dofbench"
	"github.com/alexshd/dofbench/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Execute parses DOFBENCH_* defaults from the environment and runs the
// command named by args.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	root := NewRootCommand(env, out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree with flag defaults taken from env.
func NewRootCommand(env config.Env, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dofbench",
		Short:         "Evaluate DoF mechanisms against a time-dilation benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	var g globalOptions
	root.PersistentFlags().StringVar(&g.configFile, "config", env.ConfigFile, "YAML settings file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", env.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		newRunCommand(env, &g),
		newSweepCommand(env, &g),
		newMechanismsCommand(),
	)
	return root
}

type globalOptions struct {
	configFile string
	logLevel   string
}

// logger builds the tint handler on the command's error stream.
func (g globalOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", g.logLevel, err)
	}
	w := cmd.ErrOrStderr()
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	})), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// settings applies the settings file over the env-derived defaults.
func (g globalOptions) settings(env config.Env) (config.Settings, error) {
	return config.LoadFile(g.configFile, env.Settings())
}

func newMechanismsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mechanisms",
		Short: "List the mechanism catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			width := 0
			for _, e := range dofbench.Catalog() {
				width = max(width, len(e.ID))
			}
			for _, e := range dofbench.Catalog() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, e.ID, e.Description)
			}
			return nil
		},
	}
}

// normalizationFailures turns group warnings into errors for --strict.
func normalizationFailures(t dofbench.RankingTable) error {
	var errs []error
	for _, g := range t.Groups {
		if g.Normalization != nil {
			errs = append(errs, g.Normalization)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("strict: %w", errors.Join(errs...))
}

func idList(ids []string) string {
	if len(ids) == 0 {
		return "all"
	}
	return strings.Join(ids, ",")
}
