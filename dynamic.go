package props

import (
	"fmt"
	"sort"
)

// Dynamic exposes a store through name-based access: any property name acts
// as an implicit getter (no arguments) or setter (one argument). Names of the
// store's declared operations resolve to those operations first.
//
// The typed Store methods remain the primary API; Dynamic serves callers that
// only hold property names as data, such as templates or scripting bridges.
type Dynamic struct {
	store *Store
}

// Dynamic returns the name-based accessor for s.
func (s *Store) Dynamic() *Dynamic {
	return &Dynamic{store: s}
}

// Get is the implicit getter: it returns s.Get(name).
func (d *Dynamic) Get(name string) any {
	return d.store.Get(name)
}

// Set is the implicit setter: it stores value under name and returns value.
func (d *Dynamic) Set(name string, value any) any {
	d.store.Set(name, value)
	return value
}

// Invoke dispatches a call by name. Declared operations (see Operations) take
// precedence; any other name is a property read with zero args or a property
// write with one arg. More arguments fail with ErrArity.
func (d *Dynamic) Invoke(name string, args ...any) (any, error) {
	if op, ok := declaredOperations[name]; ok {
		return op(d.store, args)
	}
	switch len(args) {
	case 0:
		return d.Get(name), nil
	case 1:
		return d.Set(name, args[0]), nil
	default:
		return nil, fmt.Errorf("%w: property %q takes at most one argument, got %d", ErrArity, name, len(args))
	}
}

// Declared reports whether name is one of the declared operations.
func (d *Dynamic) Declared(name string) bool {
	_, ok := declaredOperations[name]
	return ok
}

// Known reports whether name is a declared operation or a key held anywhere
// in the chain.
func (d *Dynamic) Known(name string) bool {
	return d.Declared(name) || d.store.Owner(name) != nil
}

// RespondsTo reports whether the accessor supports name. It is permissive:
// declared operations and chain keys answer true, and so does every other
// name, since unknown names fall through to the property getter/setter. Use
// Known for the narrow answer.
func (d *Dynamic) RespondsTo(name string) bool {
	return true
}

// Operations lists the declared operation names, sorted.
func Operations() []string {
	names := make([]string, 0, len(declaredOperations))
	for name := range declaredOperations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type operation func(s *Store, args []any) (any, error)

var declaredOperations map[string]operation

func init() {
	declaredOperations = map[string]operation{
		"Has": nameOperation("Has", func(s *Store, name string) (any, error) {
			return s.Has(name), nil
		}),
		"Get": nameOperation("Get", func(s *Store, name string) (any, error) {
			return s.Get(name), nil
		}),
		"Delete": nameOperation("Delete", func(s *Store, name string) (any, error) {
			return s.Delete(name), nil
		}),
		"RespondsTo": nameOperation("RespondsTo", func(s *Store, name string) (any, error) {
			return s.Dynamic().RespondsTo(name), nil
		}),
		"Set": func(s *Store, args []any) (any, error) {
			if err := checkArity("Set", args, 2); err != nil {
				return nil, err
			}
			name, err := nameArg("Set", args[0])
			if err != nil {
				return nil, err
			}
			s.Set(name, args[1])
			return args[1], nil
		},
		"Proto": noArgOperation("Proto", func(s *Store) (any, error) {
			if s.parent == nil {
				return nil, nil
			}
			return s.parent, nil
		}),
		"SetProto": func(s *Store, args []any) (any, error) {
			if err := checkArity("SetProto", args, 1); err != nil {
				return nil, err
			}
			if err := s.AssignProto(args[0]); err != nil {
				return nil, err
			}
			return args[0], nil
		},
		"ToMap": noArgOperation("ToMap", func(s *Store) (any, error) {
			return s.ToMap(), nil
		}),
		"ToMapping": noArgOperation("ToMapping", func(s *Store) (any, error) {
			return s.ToMapping(), nil
		}),
		"ToJSON": noArgOperation("ToJSON", func(s *Store) (any, error) {
			return s.ToJSON()
		}),
		"ToYAML": noArgOperation("ToYAML", func(s *Store) (any, error) {
			return s.ToYAML()
		}),
		"Keys": noArgOperation("Keys", func(s *Store) (any, error) {
			return s.Keys(), nil
		}),
		"Len": noArgOperation("Len", func(s *Store) (any, error) {
			return s.Len(), nil
		}),
	}
}

func noArgOperation(op string, fn func(*Store) (any, error)) operation {
	return func(s *Store, args []any) (any, error) {
		if err := checkArity(op, args, 0); err != nil {
			return nil, err
		}
		return fn(s)
	}
}

func nameOperation(op string, fn func(*Store, string) (any, error)) operation {
	return func(s *Store, args []any) (any, error) {
		if err := checkArity(op, args, 1); err != nil {
			return nil, err
		}
		name, err := nameArg(op, args[0])
		if err != nil {
			return nil, err
		}
		return fn(s, name)
	}
}

func checkArity(op string, args []any, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrArity, op, want, len(args))
	}
	return nil
}

func nameArg(op string, arg any) (string, error) {
	switch name := arg.(type) {
	case string:
		return name, nil
	case Key:
		return string(name), nil
	default:
		return "", fmt.Errorf("props: %s expects a property name, got %T", op, arg)
	}
}
