package opb

import (
	"bytes"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/schematools/fdcore/pkg/ilp"
)

func sampleProgram() *ilp.Program {
	prog := &ilp.Program{}
	x1, x2, x3 := prog.NewVar(), prog.NewVar(), prog.NewVar()
	prog.Add(ilp.AtLeast, 1, ilp.Term{Var: x1, Coeff: 1}, ilp.Term{Var: x2, Coeff: 1})
	prog.Add(ilp.AtMost, 0, ilp.Term{Var: x3, Coeff: 1}, ilp.Term{Var: x1, Coeff: -1})
	prog.Add(ilp.Equal, 1, ilp.Term{Var: x2, Coeff: 1})
	prog.Minimize(ilp.Term{Var: x1, Coeff: 1}, ilp.Term{Var: x2, Coeff: 1}, ilp.Term{Var: x3, Coeff: 2})
	return prog
}

func TestWrite(t *testing.T) {
	g := NewGomegaWithT(t)

	buf := &bytes.Buffer{}
	g.Expect(Write(buf, sampleProgram())).To(Succeed())
	g.Expect(buf.String()).To(Equal(`* #variable= 3 #constraint= 3
min: +1 x1 +1 x2 +2 x3 ;
 +1 x1 +1 x2 >= 1 ;
 -1 x3 +1 x1 >= 0 ;
 +1 x2 = 1 ;
`))
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		values []float64
		cost   float64
	}{
		{name: "optimum",
			output: "c some comment\ns OPTIMUM FOUND\nv x1 -x2 x3\n",
			values: []float64{0, 1, 0, 1},
			cost:   3,
		},
		{name: "satisfiable with split value lines",
			output: "s SATISFIABLE\nv x1\nv x2 -x3\n",
			values: []float64{0, 1, 1, 0},
			cost:   2,
		},
		{name: "unsatisfiable",
			output: "s UNSATISFIABLE\n",
			err:    ilp.ErrInfeasible,
		},
		{name: "gave up",
			output: "s UNKNOWN\n",
			err:    ilp.ErrTimeout,
		},
		{name: "garbage",
			output: "something else entirely\n",
			err:    errAny,
		},
		{name: "malformed literal",
			output: "s SATISFIABLE\nv y1\n",
			err:    errAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			sol, err := parseOutput(tt.output, sampleProgram())
			switch tt.err {
			case nil:
				g.Expect(err).ToNot(HaveOccurred())
				g.Expect(sol.Values).To(Equal(tt.values))
				g.Expect(sol.Cost).To(BeNumerically("==", tt.cost))
			case errAny:
				g.Expect(err).To(HaveOccurred())
			default:
				g.Expect(err).To(MatchError(tt.err))
			}
		})
	}
}

// errAny marks table rows that expect some error without a specific sentinel.
var errAny = &anyError{}

type anyError struct{}

func (*anyError) Error() string { return "any error" }

func TestBackendNeedsExecutable(t *testing.T) {
	g := NewGomegaWithT(t)

	_, err := ilp.New("opb", ilp.Options{})
	g.Expect(err).To(MatchError(ilp.ErrSolverUnavailable))

	_, err = ilp.New("opb", ilp.Options{Path: "definitely-not-a-real-solver-binary"})
	g.Expect(err).To(MatchError(ilp.ErrSolverUnavailable))
}
