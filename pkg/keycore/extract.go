package keycore

import (
	"github.com/schematools/fdcore/pkg/fd"
	"github.com/schematools/fdcore/pkg/ilp"
)

// tolerance for reading 0/1 variables back: numeric backends may report
// near-integral values, never compare against exactly 1.
const tolerance = 1e-6

// extract maps the round-zero assignment back to attributes and unions in
// the isolated target attributes.
func (c *compiled[A]) extract(sol *ilp.Solution, x0 []int) fd.AttrSet[A] {
	core := c.isolated.Clone()
	for i := 1; i < len(x0); i++ {
		if sol.Value(x0[i]) >= 1-tolerance {
			core.Add(c.attr(i))
		}
	}
	return core
}
