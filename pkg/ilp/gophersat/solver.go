// Package gophersat solves 0/1 integer programs in-process with the
// gophersat pseudo-Boolean solver.
package gophersat

import (
	"context"
	"errors"
	"fmt"

	gsolver "github.com/crillab/gophersat/solver"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/schematools/fdcore/pkg/ilp"
)

func init() {
	ilp.Register("gophersat", func(opts ilp.Options) (ilp.Solver, error) {
		return &Solver{verbose: opts.Verbose}, nil
	})
}

// Solver is the embedded gophersat backend.
type Solver struct {
	verbose bool
}

// row is a pseudo-Boolean constraint in at-least form with positive weights.
// Literals are DIMACS-style ints, negative means negated.
type row struct {
	lits    []int
	weights []int
	atLeast int
}

// objective is the cost function rewritten over positive weights. A negative
// coefficient c*x equals |c|*(1-x) - |c|, so the literal flips and the fixed
// offset drops by |c|.
type objective struct {
	lits    []int
	weights []int
	total   int
	offset  int
}

// Solve finds a cost-minimal feasible assignment. Optimization runs as an
// exact binary search on the objective bound: each probe is one
// pseudo-Boolean decision problem, and the upper bound shrinks to the cost
// of every model found. The context is checked between probes; a single
// probe blocks until the solver returns.
func (s *Solver) Solve(ctx context.Context, prog *ilp.Program) (*ilp.Solution, error) {
	rows := translate(prog)
	obj := makeObjective(prog)

	model, err := s.probe(ctx, prog, rows, nil)
	if err != nil {
		return nil, err
	}

	lo, hi := 0, obj.litCost(model)
	for lo < hi {
		k := lo + (hi-lo)/2
		logrus.Debugf("Probing objective bound %v in [%v, %v].", k, lo, hi)
		m, err := s.probe(ctx, prog, rows, obj.bound(k))
		switch {
		case err == nil:
			model = m
			hi = obj.litCost(m)
		case errors.Is(err, ilp.ErrInfeasible):
			lo = k + 1
		default:
			return nil, err
		}
	}

	values := make([]float64, prog.Vars+1)
	for v := 1; v <= prog.Vars; v++ {
		if v-1 < len(model) && model[v-1] {
			values[v] = 1
		}
	}
	return &ilp.Solution{Values: values, Cost: float64(hi + obj.offset)}, nil
}

// probe solves the decision problem made of rows plus an optional extra
// objective-bound row.
func (s *Solver) probe(ctx context.Context, prog *ilp.Program, rows []row, extra *row) ([]bool, error) {
	select {
	case <-ctx.Done():
		return nil, wrapContextErr(ctx.Err())
	default:
	}

	constrs := make([]gsolver.PBConstr, 0, len(rows)+prog.Vars+1)
	for _, r := range rows {
		constrs = append(constrs, pbConstr(r))
	}
	if extra != nil {
		constrs = append(constrs, pbConstr(*extra))
	}
	// tautologies pin the variable count so the model covers every id
	for v := 1; v <= prog.Vars; v++ {
		constrs = append(constrs, gsolver.PBConstr{Lits: []int{v, -v}, Weights: []int{1, 1}, AtLeast: 1})
	}

	sat := gsolver.New(gsolver.ParsePBConstrs(constrs))
	sat.Verbose = s.verbose
	if sat.Solve() != gsolver.Sat {
		return nil, fmt.Errorf("pseudo-Boolean probe: %w", ilp.ErrInfeasible)
	}
	return sat.Model(), nil
}

// pbConstr materializes a row with fresh slices; the solver normalizes
// constraints in place.
func pbConstr(r row) gsolver.PBConstr {
	return gsolver.PBConstr{
		Lits:    slices.Clone(r.lits),
		Weights: slices.Clone(r.weights),
		AtLeast: r.atLeast,
	}
}

func translate(prog *ilp.Program) []row {
	rows := make([]row, 0, len(prog.Constraints))
	for _, c := range prog.Constraints {
		switch c.Rel {
		case ilp.AtLeast:
			rows = append(rows, normalize(c.Terms, c.Bound))
		case ilp.AtMost:
			rows = append(rows, normalize(negated(c.Terms), -c.Bound))
		case ilp.Equal:
			rows = append(rows, normalize(c.Terms, c.Bound), normalize(negated(c.Terms), -c.Bound))
		}
	}
	return rows
}

// normalize rewrites "sum of terms >= bound" with positive weights only: a
// negative term c*x (c < 0) equals |c|*(1-x) - |c|, so the literal flips and
// the bound rises by |c|.
func normalize(terms []ilp.Term, bound int) row {
	r := row{}
	for _, t := range terms {
		switch {
		case t.Coeff > 0:
			r.lits = append(r.lits, t.Var)
			r.weights = append(r.weights, t.Coeff)
		case t.Coeff < 0:
			r.lits = append(r.lits, -t.Var)
			r.weights = append(r.weights, -t.Coeff)
			bound += -t.Coeff
		}
	}
	r.atLeast = bound
	return r
}

func negated(terms []ilp.Term) []ilp.Term {
	neg := make([]ilp.Term, len(terms))
	for i, t := range terms {
		neg[i] = ilp.Term{Var: t.Var, Coeff: -t.Coeff}
	}
	return neg
}

func makeObjective(prog *ilp.Program) objective {
	obj := objective{}
	for _, t := range prog.Objective {
		switch {
		case t.Coeff > 0:
			obj.lits = append(obj.lits, t.Var)
			obj.weights = append(obj.weights, t.Coeff)
			obj.total += t.Coeff
		case t.Coeff < 0:
			obj.lits = append(obj.lits, -t.Var)
			obj.weights = append(obj.weights, -t.Coeff)
			obj.total += -t.Coeff
			obj.offset += t.Coeff
		}
	}
	return obj
}

// bound builds the row "weighted objective literals <= k", i.e. the negated
// literals must carry at least total-k weight.
func (o objective) bound(k int) *row {
	neg := make([]int, len(o.lits))
	for i, l := range o.lits {
		neg[i] = -l
	}
	return &row{lits: neg, weights: slices.Clone(o.weights), atLeast: o.total - k}
}

// litCost evaluates the positive-weight part of the cost under a model.
func (o objective) litCost(model []bool) int {
	cost := 0
	for i, l := range o.lits {
		v := l
		if v < 0 {
			v = -v
		}
		if v-1 >= len(model) {
			continue
		}
		if model[v-1] == (l > 0) {
			cost += o.weights[i]
		}
	}
	return cost
}

func wrapContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("solve aborted: %w", ilp.ErrTimeout)
	}
	return err
}
