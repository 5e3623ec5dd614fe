package fd

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AttrSet is an unordered set of attributes. Iteration order over the map is
// undefined; callers that need deterministic output go through Sorted.
type AttrSet[A constraints.Ordered] map[A]struct{}

// Set builds an AttrSet from the given attributes.
func Set[A constraints.Ordered](attrs ...A) AttrSet[A] {
	s := make(AttrSet[A], len(attrs))
	for _, a := range attrs {
		s[a] = struct{}{}
	}
	return s
}

func (s AttrSet[A]) Add(a A) {
	s[a] = struct{}{}
}

func (s AttrSet[A]) Contains(a A) bool {
	_, ok := s[a]
	return ok
}

func (s AttrSet[A]) Clone() AttrSet[A] {
	c := make(AttrSet[A], len(s))
	for a := range s {
		c[a] = struct{}{}
	}
	return c
}

// Union returns a new set holding the attributes of both sets.
func (s AttrSet[A]) Union(o AttrSet[A]) AttrSet[A] {
	u := s.Clone()
	for a := range o {
		u[a] = struct{}{}
	}
	return u
}

// Diff returns a new set holding the attributes of s that are not in o.
func (s AttrSet[A]) Diff(o AttrSet[A]) AttrSet[A] {
	d := make(AttrSet[A], len(s))
	for a := range s {
		if !o.Contains(a) {
			d[a] = struct{}{}
		}
	}
	return d
}

// Intersect returns a new set holding the attributes present in both sets.
func (s AttrSet[A]) Intersect(o AttrSet[A]) AttrSet[A] {
	i := AttrSet[A]{}
	for a := range s {
		if o.Contains(a) {
			i[a] = struct{}{}
		}
	}
	return i
}

func (s AttrSet[A]) SubsetOf(o AttrSet[A]) bool {
	for a := range s {
		if !o.Contains(a) {
			return false
		}
	}
	return true
}

func (s AttrSet[A]) Equal(o AttrSet[A]) bool {
	return maps.Equal(s, o)
}

// Sorted returns the attributes in ascending order.
func (s AttrSet[A]) Sorted() []A {
	attrs := maps.Keys(s)
	slices.Sort(attrs)
	return attrs
}

func (s AttrSet[A]) String() string {
	parts := make([]string, 0, len(s))
	for _, a := range s.Sorted() {
		parts = append(parts, fmt.Sprint(a))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// A Dependency states that the attribute values of Keys determine those of
// Values. Values never intersects Keys: the constructors subtract Keys from
// the raw right-hand side, so trivially redundant implications are never
// represented. Dependencies are immutable value types, equality and order
// are structural.
type Dependency[A constraints.Ordered] struct {
	Keys   AttrSet[A]
	Values AttrSet[A]
}

// New builds a normalized dependency keys -> values. Both sets are copied.
func New[A constraints.Ordered](keys, values AttrSet[A]) Dependency[A] {
	return Dependency[A]{Keys: keys.Clone(), Values: values.Diff(keys)}
}

// Singleton builds the dependency {key} -> {value}.
func Singleton[A constraints.Ordered](key, value A) Dependency[A] {
	return New(Set(key), Set(value))
}

// Constant builds a dependency with an empty left-hand side. Its values hold
// unconditionally.
func Constant[A constraints.Ordered](values ...A) Dependency[A] {
	return New(Set[A](), Set(values...))
}

// ToSingleton builds the dependency keys -> {value}.
func ToSingleton[A constraints.Ordered](keys AttrSet[A], value A) Dependency[A] {
	return New(keys, Set(value))
}

func (d Dependency[A]) Equal(o Dependency[A]) bool {
	return d.Keys.Equal(o.Keys) && d.Values.Equal(o.Values)
}

func (d Dependency[A]) String() string {
	return fmt.Sprintf("%s => %s", d.Keys, d.Values)
}

// Compare orders dependencies by (size, sorted attributes) of the left-hand
// side, with the same comparison on the right-hand side as a tie break.
func Compare[A constraints.Ordered](a, b Dependency[A]) int {
	if c := compareSets(a.Keys, b.Keys); c != 0 {
		return c
	}
	return compareSets(a.Values, b.Values)
}

func compareSets[A constraints.Ordered](x, y AttrSet[A]) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return slices.Compare(x.Sorted(), y.Sorted())
}

// Sort orders a dependency list in place, for deterministic enumeration.
func Sort[A constraints.Ordered](fds []Dependency[A]) {
	slices.SortFunc(fds, Compare[A])
}

// Universe returns all attributes appearing in any dependency.
func Universe[A constraints.Ordered](fds []Dependency[A]) AttrSet[A] {
	u := AttrSet[A]{}
	for _, d := range fds {
		for a := range d.Keys {
			u[a] = struct{}{}
		}
		for a := range d.Values {
			u[a] = struct{}{}
		}
	}
	return u
}

// Parse reads a dependency in the form "A,B -> C,D". Attribute names are
// trimmed, empty segments are skipped, so "-> A" denotes a constant.
func Parse(text string) (Dependency[string], error) {
	lhs, rhs, found := strings.Cut(text, "->")
	if !found {
		return Dependency[string]{}, fmt.Errorf("dependency %q lacks a '->' separator", text)
	}
	return New(parseAttrs(lhs), parseAttrs(rhs)), nil
}

func parseAttrs(text string) AttrSet[string] {
	attrs := Set[string]()
	for _, field := range strings.Split(text, ",") {
		if f := strings.TrimSpace(field); f != "" {
			attrs.Add(f)
		}
	}
	return attrs
}
