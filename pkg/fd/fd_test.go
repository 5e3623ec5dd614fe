package fd

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestNormalization(t *testing.T) {
	g := NewGomegaWithT(t)

	d := New(Set("A", "B"), Set("B", "C"))
	g.Expect(d.Keys).To(Equal(Set("A", "B")))
	g.Expect(d.Values).To(Equal(Set("C")))

	// fully redundant right-hand side collapses to the empty set
	d = New(Set("A"), Set("A"))
	g.Expect(d.Values).To(BeEmpty())
}

func TestConstructors(t *testing.T) {
	g := NewGomegaWithT(t)

	g.Expect(Singleton("A", "B")).To(Equal(New(Set("A"), Set("B"))))
	g.Expect(Constant("A", "B").Keys).To(BeEmpty())
	g.Expect(Constant("A", "B").Values).To(Equal(Set("A", "B")))
	g.Expect(ToSingleton(Set("A", "D"), "E").Values).To(Equal(Set("E")))
}

func TestImmutability(t *testing.T) {
	g := NewGomegaWithT(t)

	keys := Set("A")
	values := Set("B")
	d := New(keys, values)
	keys.Add("X")
	values.Add("Y")
	g.Expect(d.Keys).To(Equal(Set("A")))
	g.Expect(d.Values).To(Equal(Set("B")))
}

func TestOrdering(t *testing.T) {
	g := NewGomegaWithT(t)

	fds := []Dependency[string]{
		New(Set("B"), Set("C")),
		New(Set("A", "D"), Set("E")),
		New(Set("A"), Set("C")),
		New(Set("A"), Set("B")),
		Constant("A"),
	}
	Sort(fds)
	g.Expect(fds).To(Equal([]Dependency[string]{
		Constant("A"),
		New(Set("A"), Set("B")),
		New(Set("A"), Set("C")),
		New(Set("B"), Set("C")),
		New(Set("A", "D"), Set("E")),
	}))
}

func TestUniverse(t *testing.T) {
	g := NewGomegaWithT(t)

	fds := []Dependency[string]{
		New(Set("A"), Set("B")),
		New(Set("B"), Set("C")),
		New(Set("A", "D"), Set("E")),
	}
	g.Expect(Universe(fds)).To(Equal(Set("A", "B", "C", "D", "E")))
	g.Expect(Universe([]Dependency[string]{})).To(BeEmpty())
	g.Expect(Universe[string](nil)).To(BeEmpty())
}

func TestSetOperations(t *testing.T) {
	g := NewGomegaWithT(t)

	s := Set("A", "B", "C")
	g.Expect(s.Union(Set("C", "D"))).To(Equal(Set("A", "B", "C", "D")))
	g.Expect(s.Diff(Set("B"))).To(Equal(Set("A", "C")))
	g.Expect(s.Intersect(Set("B", "D"))).To(Equal(Set("B")))
	g.Expect(Set("A", "B").SubsetOf(s)).To(BeTrue())
	g.Expect(Set("A", "Z").SubsetOf(s)).To(BeFalse())
	g.Expect(s.Sorted()).To(Equal([]string{"A", "B", "C"}))
	g.Expect(s.String()).To(Equal("{A, B, C}"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Dependency[string]
		fail bool
	}{
		{name: "plain", text: "A,B -> C,D", want: New(Set("A", "B"), Set("C", "D"))},
		{name: "spaces", text: " A , B ->C", want: New(Set("A", "B"), Set("C"))},
		{name: "constant", text: "-> A", want: Constant("A")},
		{name: "redundant rhs", text: "A -> A,B", want: New(Set("A"), Set("B"))},
		{name: "missing separator", text: "A, B", fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			d, err := Parse(tt.text)
			if tt.fail {
				g.Expect(err).To(HaveOccurred())
				return
			}
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(d).To(Equal(tt.want))
		})
	}
}

func TestString(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(New(Set("B", "A"), Set("C")).String()).To(Equal("{A, B} => {C}"))
}
