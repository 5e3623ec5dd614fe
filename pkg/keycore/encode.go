package keycore

import "github.com/schematools/fdcore/pkg/ilp"

// encode builds the round-unrolled 0/1 program whose optimum is a minimum
// core. x[r][i] means "attribute i is known by round r", z[r][f] means "rule
// f's left-hand side is fully known at round r". n synchronous rounds are
// unrolled: every derivation event happens at most once per attribute, so no
// useful propagation occurs past round n. The returned slice holds the
// round-zero variables, whose sum is the minimized core size.
func (c *compiled[A]) encode() (*ilp.Program, []int) {
	n := len(c.attrs)
	rounds := n
	prog := &ilp.Program{}

	x := make([][]int, rounds+1)
	for r := range x {
		x[r] = make([]int, n+1)
		for i := 1; i <= n; i++ {
			x[r][i] = prog.NewVar()
		}
	}
	z := make([][]int, rounds)
	for r := range z {
		z[r] = make([]int, len(c.rules))
		for f := range c.rules {
			z[r][f] = prog.NewVar()
		}
	}

	for r := 0; r < rounds; r++ {
		// z[r][f] is the AND of the rule's left-hand side at round r
		for f, rl := range c.rules {
			for _, j := range rl.lhs {
				prog.Add(ilp.AtMost, 0,
					ilp.Term{Var: z[r][f], Coeff: 1},
					ilp.Term{Var: x[r][j], Coeff: -1})
			}
			terms := []ilp.Term{{Var: z[r][f], Coeff: 1}}
			for _, j := range rl.lhs {
				terms = append(terms, ilp.Term{Var: x[r][j], Coeff: -1})
			}
			prog.Add(ilp.AtLeast, -(len(rl.lhs) - 1), terms...)
		}

		// x[r+1][u] is the OR of x[r][u] and every rule producing u
		for u := 1; u <= n; u++ {
			prog.Add(ilp.AtLeast, 0,
				ilp.Term{Var: x[r+1][u], Coeff: 1},
				ilp.Term{Var: x[r][u], Coeff: -1})
			for _, f := range c.producers[u] {
				prog.Add(ilp.AtLeast, 0,
					ilp.Term{Var: x[r+1][u], Coeff: 1},
					ilp.Term{Var: z[r][f], Coeff: -1})
			}
			terms := []ilp.Term{
				{Var: x[r+1][u], Coeff: 1},
				{Var: x[r][u], Coeff: -1},
			}
			for _, f := range c.producers[u] {
				terms = append(terms, ilp.Term{Var: z[r][f], Coeff: -1})
			}
			prog.Add(ilp.AtMost, 0, terms...)
		}
	}

	// every remaining target must be known after the last round
	for _, t := range c.targets {
		prog.Add(ilp.Equal, 1, ilp.Term{Var: x[rounds][t], Coeff: 1})
	}

	obj := make([]ilp.Term, 0, n)
	for i := 1; i <= n; i++ {
		obj = append(obj, ilp.Term{Var: x[0][i], Coeff: 1})
	}
	prog.Minimize(obj...)

	return prog, x[0]
}
