// Package keycore computes minimum-cardinality attribute sets ("cores")
// whose FD-closure covers a target set. Bounded closure reachability is
// compiled into a 0/1 integer program and handed to an exact solver backend;
// backends register with the ilp package and are selected by name, so
// callers must link the backend they ask for (the cmd package imports
// gophersat and opb).
package keycore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/schematools/fdcore/pkg/closure"
	"github.com/schematools/fdcore/pkg/fd"
	"github.com/schematools/fdcore/pkg/ilp"
)

// DefaultSolver is the backend used when Options.Solver is empty.
const DefaultSolver = "gophersat"

// ErrSanityCheck reports that an extracted core does not closure-cover its
// target. This indicates an encoding bug, not a normal runtime condition.
var ErrSanityCheck = errors.New("core does not cover the target")

// Options configure one minimal-core computation. All of it is pass-through
// solver configuration, none of it changes the optimum.
type Options struct {
	// Solver names a registered ilp backend. When several minimum cores
	// exist the backend's internal search order decides the tie, which may
	// differ across backends and versions.
	Solver string
	// SolverPath is an explicit executable for backends that shell out.
	SolverPath string
	// Verbose lets the backend report progress.
	Verbose bool
	// SanityCheck re-runs the closure engine on the result and fails fast
	// when it does not cover the target.
	SanityCheck bool
}

// Minimal returns one minimum-cardinality attribute set whose closure under
// fds covers target. Target attributes appearing in no dependency cannot be
// derived and are part of every core. Among several optima any one may be
// returned. The pipeline is a single linear pass, each call is independent.
func Minimal[A constraints.Ordered](ctx context.Context, fds []fd.Dependency[A], target fd.AttrSet[A], opts Options) (fd.AttrSet[A], error) {
	c := compile(fds, target)

	// nothing derivable left to cover
	if len(c.targets) == 0 {
		return c.isolated.Clone(), nil
	}
	// a single derivable target is its own minimum core: it covers itself,
	// and no smaller set can produce a non-isolated attribute for free
	if len(c.targets) == 1 {
		core := c.isolated.Clone()
		core.Add(c.attr(c.targets[0]))
		return core, nil
	}

	prog, x0 := c.encode()
	logrus.Infof("Encoded %v attributes and %v rules into %v variables and %v constraints.",
		len(c.attrs), len(c.rules), prog.Vars, len(prog.Constraints))

	name := opts.Solver
	if name == "" {
		name = DefaultSolver
	}
	backend, err := ilp.New(name, ilp.Options{Path: opts.SolverPath, Verbose: opts.Verbose})
	if err != nil {
		return nil, err
	}

	logrus.Info("Solving.")
	sol, err := backend.Solve(ctx, prog)
	if err != nil {
		return nil, err
	}

	core := c.extract(sol, x0)
	logrus.Infof("Found a core of %v attributes.", len(core))

	if opts.SanityCheck {
		if !target.SubsetOf(closure.Closure(fds, core)) {
			return nil, fmt.Errorf("%w: core %v, target %v", ErrSanityCheck, core, target)
		}
	}
	return core, nil
}
