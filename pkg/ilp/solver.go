package ilp

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Solver is an exact 0/1 integer-program solver. Solve blocks until an
// optimal assignment is found, the context expires, or the program is proven
// infeasible. Failures surface as ErrInfeasible, ErrTimeout or
// ErrSolverUnavailable; there is no retry logic.
type Solver interface {
	Solve(ctx context.Context, prog *Program) (*Solution, error)
}

// Options is pass-through backend configuration.
type Options struct {
	// Path is an explicit solver executable, for backends that shell out.
	Path string
	// Verbose lets the backend print progress while solving.
	Verbose bool
}

// Factory builds a configured backend instance.
type Factory func(opts Options) (Solver, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]Factory{}
)

// Register makes a backend available under the given name. It is meant to be
// called from backend package init functions.
func Register(name string, factory Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if _, dup := backends[name]; dup {
		panic("ilp: Register called twice for backend " + name)
	}
	backends[name] = factory
}

// New returns the backend registered under name.
func New(name string, opts Options) (Solver, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no backend named %q, registered: %v: %w", name, Backends(), ErrSolverUnavailable)
	}
	return factory(opts)
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := maps.Keys(backends)
	slices.Sort(names)
	return names
}
