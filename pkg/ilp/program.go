// Package ilp models linear programs over 0/1 variables and defines the
// contract between program builders and exact solver backends.
package ilp

// Relation compares a weighted sum against a constraint's bound.
type Relation int

const (
	// AtLeast constrains the weighted sum to be >= the bound.
	AtLeast Relation = iota
	// AtMost constrains the weighted sum to be <= the bound.
	AtMost
	// Equal constrains the weighted sum to be == the bound.
	Equal
)

// Term is one weighted variable occurrence in a constraint or objective.
type Term struct {
	Var   int
	Coeff int
}

// Constraint is a linear inequality or equality over 0/1 variables.
type Constraint struct {
	Terms []Term
	Rel   Relation
	Bound int
}

// Program is a linear program over 0/1 variables with dense ids 1..Vars and
// a minimization objective. The zero value is an empty program. A program is
// owned by a single computation, backends never mutate it.
type Program struct {
	Vars        int
	Constraints []Constraint
	Objective   []Term
}

// NewVar hands out the next variable id.
func (p *Program) NewVar() int {
	p.Vars++
	return p.Vars
}

// Add appends the constraint "sum of terms `rel` bound".
func (p *Program) Add(rel Relation, bound int, terms ...Term) {
	p.Constraints = append(p.Constraints, Constraint{Terms: terms, Rel: rel, Bound: bound})
}

// Minimize sets the objective. Coefficients must be non-negative.
func (p *Program) Minimize(terms ...Term) {
	p.Objective = terms
}

// Solution is one feasible optimal assignment. Values is indexed by variable
// id; numeric backends may report near-integral rather than exactly integral
// values, consumers compare against a tolerance.
type Solution struct {
	Values []float64
	Cost   float64
}

// Value returns the assignment of variable v, 0 for unknown ids.
func (s *Solution) Value(v int) float64 {
	if v <= 0 || v >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}
