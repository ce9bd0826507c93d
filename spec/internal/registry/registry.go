// Package registry implements L0: the process-wide qualified-name → spec
// map, with alias-chain resolution and a reset lifecycle (§4.1). It stores
// values as `any` rather than a concrete Spec type so this package does
// not need to import the spec package (which builds on top of it),
// matching the teacher's layering of a thin public API over an internal
// evaluator.
package registry

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"specgo.dev/go/internal/specdebug"
)

// Registry is a process-wide, concurrently-readable name → value map.
// Writes (Def, Reset) take a lock and install a fresh immutable map by
// atomic pointer swap, so readers (Get, Resolve) never observe a torn view
// and never block behind a writer or another reader (§5).
type Registry struct {
	mu sync.Mutex
	m  atomic.Pointer[map[string]any]
}

// New returns an empty registry.
func New() *Registry {
	r := &Registry{}
	empty := map[string]any{}
	r.m.Store(&empty)
	return r
}

func (r *Registry) load() map[string]any {
	return *r.m.Load()
}

// Def registers value under name, replacing any prior entry. value is
// either a terminal value (a spec, from the caller's point of view) or a
// string naming another registered entry (an alias).
func (r *Registry) Def(name string, value any) {
	if specdebug.Flags.LogRegistry {
		log.Printf("registry: def %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.load()
	next := make(map[string]any, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = value
	r.m.Store(&next)
}

// Get returns the raw (unresolved) entry stored under name.
func (r *Registry) Get(name string) (any, bool) {
	v, ok := r.load()[name]
	return v, ok
}

// Reset replaces the entire registry contents with builtins, discarding
// all prior definitions (§4.1's reset_registry! lifecycle operation).
func (r *Registry) Reset(builtins map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[string]any, len(builtins))
	for k, v := range builtins {
		next[k] = v
	}
	r.m.Store(&next)
}

// Snapshot returns the current map for callers (such as spec.Get) that
// need to run Resolve against a single consistent view without holding a
// lock across user predicate calls.
func (r *Registry) Snapshot() map[string]any {
	return r.load()
}

// Resolve follows the alias chain starting at x until asName reports it is
// no longer a name (a terminal value has been reached), returning that
// value and the chain of name strings traversed to get there. It errors
// if x is a name and any link in the chain is not registered in m, or if
// the chain cycles back on itself.
func Resolve(x any, m map[string]any, asName func(any) (string, bool)) (any, []string, error) {
	var chain []string
	seen := map[string]bool{}
	cur := x
	for {
		name, ok := asName(cur)
		if !ok {
			return cur, chain, nil
		}
		if specdebug.Flags.LogRegistry {
			log.Printf("registry: resolve %s", name)
		}
		if seen[name] {
			return nil, chain, fmt.Errorf("registry: alias cycle detected at %q", name)
		}
		seen[name] = true
		v, found := m[name]
		if !found {
			return nil, chain, fmt.Errorf("registry: unable to resolve name: %s", name)
		}
		chain = append(chain, name)
		cur = v
	}
}
