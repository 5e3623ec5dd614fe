// Package opb drives external pseudo-Boolean solvers speaking the OPB
// competition format: the program is written as an .opb instance, the solver
// executable runs on it, and its s/o/v output lines are read back.
package opb

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schematools/fdcore/pkg/ilp"
)

func init() {
	ilp.Register("opb", func(opts ilp.Options) (ilp.Solver, error) {
		if opts.Path == "" {
			return nil, fmt.Errorf("the opb backend needs an explicit solver executable: %w", ilp.ErrSolverUnavailable)
		}
		path, err := exec.LookPath(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("solver executable %q: %v: %w", opts.Path, err, ilp.ErrSolverUnavailable)
		}
		return &Solver{path: path, verbose: opts.Verbose}, nil
	})
}

// Solver shells out to a pseudo-Boolean solver executable.
type Solver struct {
	path    string
	verbose bool
}

func (s *Solver) Solve(ctx context.Context, prog *ilp.Program) (*ilp.Solution, error) {
	f, err := os.CreateTemp("", "fdcore-*.opb")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	if err := Write(f, prog); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	logrus.Debugf("Running %v on %v.", s.path, f.Name())
	cmd := exec.CommandContext(ctx, s.path, f.Name())
	out := &bytes.Buffer{}
	cmd.Stdout = out
	if s.verbose {
		cmd.Stderr = os.Stderr
	}
	runErr := cmd.Run()
	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("solver %s was killed: %w", s.path, ilp.ErrTimeout)
		}
		return nil, ctx.Err()
	}

	sol, err := parseOutput(out.String(), prog)
	if err != nil {
		// PB solvers commonly exit non-zero to mirror their status line,
		// so the parsed output wins and the exit error is only context.
		if runErr != nil {
			return nil, fmt.Errorf("solver %s exited with %v: %w", s.path, runErr, err)
		}
		return nil, err
	}
	return sol, nil
}

// Write serializes the program as an OPB instance. OPB knows only ">=" and
// "=", so at-most constraints are written with negated coefficients.
func Write(w io.Writer, prog *ilp.Program) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "* #variable= %d #constraint= %d\n", prog.Vars, len(prog.Constraints))
	if len(prog.Objective) > 0 {
		bw.WriteString("min:")
		writeTerms(bw, prog.Objective, 1)
		bw.WriteString(" ;\n")
	}
	for _, c := range prog.Constraints {
		sign, rel := 1, ">="
		switch c.Rel {
		case ilp.AtMost:
			sign = -1
		case ilp.Equal:
			rel = "="
		}
		writeTerms(bw, c.Terms, sign)
		fmt.Fprintf(bw, " %s %d ;\n", rel, sign*c.Bound)
	}
	return bw.Flush()
}

func writeTerms(bw *bufio.Writer, terms []ilp.Term, sign int) {
	for _, t := range terms {
		fmt.Fprintf(bw, " %+d x%d", sign*t.Coeff, t.Var)
	}
}

// parseOutput reads the s/v lines of a PB competition solver.
func parseOutput(output string, prog *ilp.Program) (*ilp.Solution, error) {
	status := ""
	values := make([]float64, prog.Vars+1)
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "s "):
			status = strings.TrimSpace(strings.TrimPrefix(line, "s "))
		case strings.HasPrefix(line, "v "):
			for _, token := range strings.Fields(line)[1:] {
				lit, err := parseLiteral(token)
				if err != nil {
					return nil, err
				}
				if lit > 0 && lit < len(values) {
					values[lit] = 1
				}
			}
		}
	}

	switch status {
	case "OPTIMUM FOUND", "SATISFIABLE":
	case "UNSATISFIABLE":
		return nil, fmt.Errorf("solver answered UNSATISFIABLE: %w", ilp.ErrInfeasible)
	case "UNKNOWN":
		return nil, fmt.Errorf("solver gave up without an answer: %w", ilp.ErrTimeout)
	default:
		return nil, fmt.Errorf("no status line in solver output %q", output)
	}

	cost := 0.0
	for _, t := range prog.Objective {
		cost += float64(t.Coeff) * values[t.Var]
	}
	return &ilp.Solution{Values: values, Cost: cost}, nil
}

// parseLiteral reads a value token such as "x12" or "-x12" and returns the
// signed variable id.
func parseLiteral(token string) (int, error) {
	text := token
	sign := 1
	if strings.HasPrefix(text, "-") {
		sign = -1
		text = text[1:]
	}
	if !strings.HasPrefix(text, "x") {
		return 0, fmt.Errorf("malformed value token %q in solver output", token)
	}
	v, err := strconv.Atoi(text[1:])
	if err != nil {
		return 0, fmt.Errorf("malformed value token %q in solver output", token)
	}
	return sign * v, nil
}
