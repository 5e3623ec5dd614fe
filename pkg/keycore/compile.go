package keycore

import (
	"golang.org/x/exp/constraints"

	"github.com/schematools/fdcore/pkg/fd"
)

// rule is a decomposed dependency: a left-hand side over dense ids deriving
// exactly one attribute.
type rule struct {
	lhs []int
	rhs int
}

// compiled is the preprocessed form of one computation: dependencies
// decomposed to singleton right-hand sides, attributes renamed to dense ids
// 1..n assigned over the sorted universe, and the target split into
// derivable attributes and isolated ones.
type compiled[A constraints.Ordered] struct {
	attrs []A // sorted universe, id i names attrs[i-1]
	rules []rule
	// producers maps an attribute id to the rules deriving it
	producers [][]int
	// isolated target attributes appear in no dependency and belong to
	// every core
	isolated fd.AttrSet[A]
	targets  []int
}

func compile[A constraints.Ordered](fds []fd.Dependency[A], target fd.AttrSet[A]) *compiled[A] {
	attrs := fd.Universe(fds).Sorted()
	id := make(map[A]int, len(attrs))
	for i, a := range attrs {
		id[a] = i + 1
	}

	c := &compiled[A]{
		attrs:     attrs,
		producers: make([][]int, len(attrs)+1),
		isolated:  fd.Set[A](),
	}

	for _, dep := range fds {
		lhs := make([]int, 0, len(dep.Keys))
		for _, a := range dep.Keys.Sorted() {
			lhs = append(lhs, id[a])
		}
		for _, a := range dep.Values.Sorted() {
			rhs := id[a]
			c.producers[rhs] = append(c.producers[rhs], len(c.rules))
			c.rules = append(c.rules, rule{lhs: lhs, rhs: rhs})
		}
	}

	for _, a := range target.Sorted() {
		if i, ok := id[a]; ok {
			c.targets = append(c.targets, i)
		} else {
			c.isolated.Add(a)
		}
	}
	return c
}

func (c *compiled[A]) attr(i int) A {
	return c.attrs[i-1]
}
