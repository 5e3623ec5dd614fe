// Package closure implements the FD-closure fixed point: the smallest
// superset of a seed attribute set closed under a list of functional
// dependencies.
package closure

import (
	"golang.org/x/exp/constraints"

	"github.com/schematools/fdcore/pkg/fd"
)

// Closure computes the smallest superset of seed such that whenever a
// dependency's full left-hand side is contained, its right-hand side is too.
// The inputs are never mutated.
//
// Propagation is a semi-naive worklist pass over dense integer ids: one
// countdown per dependency and per-attribute waiting lists, so the total
// cost is linear in the combined left-hand-side size instead of rescanning
// the dependency list per iteration.
func Closure[A constraints.Ordered](fds []fd.Dependency[A], seed fd.AttrSet[A]) fd.AttrSet[A] {
	attrs := fd.Universe(fds).Union(seed).Sorted()
	id := make(map[A]int, len(attrs))
	for i, a := range attrs {
		id[a] = i
	}

	remaining := make([]int, len(fds))
	waiting := make([][]int, len(attrs))
	known := make([]bool, len(attrs))
	queue := make([]int, 0, len(attrs))

	push := func(i int) {
		if !known[i] {
			known[i] = true
			queue = append(queue, i)
		}
	}

	for f, dep := range fds {
		remaining[f] = len(dep.Keys)
		for a := range dep.Keys {
			waiting[id[a]] = append(waiting[id[a]], f)
		}
		// an empty left-hand side holds unconditionally
		if len(dep.Keys) == 0 {
			for a := range dep.Values {
				push(id[a])
			}
		}
	}
	for a := range seed {
		push(id[a])
	}

	for head := 0; head < len(queue); head++ {
		for _, f := range waiting[queue[head]] {
			remaining[f]--
			if remaining[f] == 0 {
				for a := range fds[f].Values {
					push(id[a])
				}
			}
		}
	}

	result := fd.Set[A]()
	for i, in := range known {
		if in {
			result.Add(attrs[i])
		}
	}
	return result
}
