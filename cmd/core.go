package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schematools/fdcore/pkg/fd"
	"github.com/schematools/fdcore/pkg/ilp"
	_ "github.com/schematools/fdcore/pkg/ilp/gophersat"
	_ "github.com/schematools/fdcore/pkg/ilp/opb"
	"github.com/schematools/fdcore/pkg/keycore"
)

type coreOpts struct {
	schemafile string
	solver     string
	solverPath string
	timeout    time.Duration
	check      bool
}

var coreopts = coreOpts{}

func NewCoreCmd() *cobra.Command {

	coreCmd := &cobra.Command{
		Use:   "core",
		Short: "computes a minimum-cardinality attribute set covering the target",
		Long:  `computes one minimum-cardinality attribute set whose FD-closure covers the target; the target is taken from the arguments, or from the schema file when no arguments are given`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := fd.LoadSchemaFile(coreopts.schemafile)
			if err != nil {
				return err
			}
			target := schema.TargetSet()
			if len(args) > 0 {
				target = fd.Set(args...)
			}
			if len(target) == 0 {
				return fmt.Errorf("no target attributes given on the command line or in %s", coreopts.schemafile)
			}

			ctx := context.Background()
			if coreopts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, coreopts.timeout)
				defer cancel()
			}

			logrus.Infof("Computing a minimal core for %v target attributes.", len(target))
			core, err := keycore.Minimal(ctx, schema.Deps(), target, keycore.Options{
				Solver:      coreopts.solver,
				SolverPath:  coreopts.solverPath,
				Verbose:     verbose,
				SanityCheck: coreopts.check,
			})
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(core.Sorted(), " "))
			logrus.Info("Done.")
			return nil
		},
	}

	coreCmd.PersistentFlags().StringVarP(&coreopts.schemafile, "schema", "s", "schema.yaml", "schema file with the functional dependencies")
	coreCmd.PersistentFlags().StringVarP(&coreopts.solver, "solver", "b", keycore.DefaultSolver, fmt.Sprintf("solver backend, one of %v", ilp.Backends()))
	coreCmd.PersistentFlags().StringVarP(&coreopts.solverPath, "solver-path", "p", "", "explicit solver executable for external backends")
	coreCmd.PersistentFlags().DurationVarP(&coreopts.timeout, "timeout", "t", 0, "abort solving after this duration")
	coreCmd.PersistentFlags().BoolVarP(&coreopts.check, "check", "c", false, "verify the result against the closure engine")
	return coreCmd
}
