package props

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is a callable exposed to expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry maps case-insensitive names to functions. A registry made
// with Extend falls back to its parent on a miss, the same way a store falls
// back to its proto, and may shadow parent functions with its own.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
	parent    *FunctionRegistry
}

// NewFunctionRegistry constructs an empty registry without a parent.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Extend returns an empty registry whose lookups fall back to r.
func (r *FunctionRegistry) Extend() *FunctionRegistry {
	child := NewFunctionRegistry()
	child.parent = r
	return child
}

// Register adds fn under name. A name may shadow a parent function but may
// only be registered once per registry.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	switch {
	case name == "":
		return fmt.Errorf("props: function name must not be empty")
	case fn == nil:
		return fmt.Errorf("props: function %q is nil", name)
	}
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, taken := r.functions[key]; taken {
		return fmt.Errorf("props: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Lookup returns the nearest function registered under name.
func (r *FunctionRegistry) Lookup(name string) (Function, bool) {
	key := strings.ToLower(name)
	for current := r; current != nil; current = current.parent {
		current.mu.RLock()
		fn, ok := current.functions[key]
		current.mu.RUnlock()
		if ok {
			return fn, true
		}
	}
	return nil, false
}

// Call runs the function that Lookup resolves for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("props: function registry is nil")
	}
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("props: function %q not registered", name)
	}
	return fn(args...)
}

// Names lists every name reachable through the registry chain, sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	flat := r.flatten()
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a parentless registry holding what r resolves today, nearest
// registrations winning. Later registrations on r are not seen by the clone.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	return &FunctionRegistry{functions: r.flatten()}
}

func (r *FunctionRegistry) flatten() map[string]Function {
	out := map[string]Function{}
	if r.parent != nil {
		out = r.parent.flatten()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, fn := range r.functions {
		out[name] = fn
	}
	return out
}

func (r *FunctionRegistry) caller(name string) func(...any) (any, error) {
	return func(args ...any) (any, error) {
		return r.Call(name, args...)
	}
}

// functionRegistry resolves the functions visible to s: its own registry
// layered over whatever its proto chain resolves.
func (s *Store) functionRegistry() *FunctionRegistry {
	var inherited *FunctionRegistry
	if s.parent != nil {
		inherited = s.parent.functionRegistry()
	}
	own := s.cfg.functions
	if own == nil {
		return inherited
	}
	if inherited == nil {
		return own
	}
	layered := inherited.Extend()
	layered.functions = own.flatten()
	return layered
}

// WithFunctionRegistry exposes registry to the default evaluator of the store
// and of every store that uses it as a proto. The registry is copied.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *storeConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the default evaluator.
// Registration errors (empty name, duplicates) are ignored.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *storeConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
