package props

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Store maps normalized keys to values and defers lookup misses to an
// optional parent store (its proto), recursively, until a value is found or
// the chain ends. Writes and deletes only ever touch the receiver.
//
// A Store is not safe for concurrent use. A proto may be shared by any number
// of children; callers mutating a shared proto from several goroutines must
// serialize access themselves.
type Store struct {
	id      string
	entries map[Key]any
	order   []Key
	parent  *Store
	cfg     storeConfig
}

// New builds a store from entries. Go maps carry no order, so the initial
// entries are inserted sorted by key; use NewOrdered to keep a caller-defined
// order.
func New(entries map[string]any, opts ...Option) *Store {
	s := newStore(opts, len(entries))
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.put(Normalize(name), entries[name])
	}
	return s
}

// NewOrdered builds a store whose entries follow the order of mapping. Later
// duplicates overwrite earlier ones in place.
func NewOrdered(mapping Mapping, opts ...Option) *Store {
	s := newStore(opts, len(mapping))
	for _, entry := range mapping {
		s.put(entry.Key, entry.Value)
	}
	return s
}

func newStore(opts []Option, size int) *Store {
	cfg := applyOptions(opts)
	return &Store{
		id:      uuid.NewString(),
		entries: make(map[Key]any, size),
		order:   make([]Key, 0, size),
		parent:  cfg.proto,
		cfg:     cfg,
	}
}

// ID returns the identifier assigned to the store at construction.
func (s *Store) ID() string {
	return s.id
}

// Name returns the label configured with WithName.
func (s *Store) Name() string {
	return s.cfg.name
}

// Has reports whether name is present in the store's own entries. The proto
// chain is not consulted.
func (s *Store) Has(name string) bool {
	_, ok := s.entries[Normalize(name)]
	return ok
}

// Get returns the value for name. A local entry always wins, even when its
// value is nil; otherwise the proto chain is searched. Get returns nil when
// no store in the chain holds name.
func (s *Store) Get(name string) any {
	value, _ := s.Lookup(name)
	return value
}

// Lookup is Get with a second result reporting whether any store in the chain
// holds name.
func (s *Store) Lookup(name string) (any, bool) {
	key := Normalize(name)
	for current := s; current != nil; current = current.parent {
		if value, ok := current.entries[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Owner returns the nearest store in the chain holding name, or nil.
func (s *Store) Owner(name string) *Store {
	key := Normalize(name)
	for current := s; current != nil; current = current.parent {
		if _, ok := current.entries[key]; ok {
			return current
		}
	}
	return nil
}

// Set writes value under name in the store's own entries. The proto is never
// written to.
func (s *Store) Set(name string, value any) {
	key := Normalize(name)
	previous, existed := s.entries[key]
	s.put(key, value)
	s.logEvent(LogEvent{Op: OpSet, Key: string(key)})
	s.emitSet(key, previous, existed, value)
}

// Delete removes name from the store's own entries and reports whether it was
// present. Entries held by the proto chain are left untouched, so a later Get
// may still resolve name through an ancestor.
func (s *Store) Delete(name string) bool {
	key := Normalize(name)
	previous, ok := s.entries[key]
	if !ok {
		return false
	}
	delete(s.entries, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logEvent(LogEvent{Op: OpDelete, Key: string(key)})
	s.emitDelete(key, previous)
	return true
}

// Keys returns the store's own keys in insertion order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	for i, key := range s.order {
		out[i] = string(key)
	}
	return out
}

// Len returns the number of entries owned by the store.
func (s *Store) Len() int {
	return len(s.order)
}

// Proto returns the current parent, or nil.
func (s *Store) Proto() *Store {
	return s.parent
}

// SetProto replaces the parent reference. Passing nil detaches the store. The
// previous parent's contents are not modified. SetProto fails with
// ErrProtoCycle when parent's chain already contains s.
func (s *Store) SetProto(parent *Store) error {
	for current := parent; current != nil; current = current.parent {
		if current == s {
			return ErrProtoCycle
		}
	}
	previous := s.parent
	s.parent = parent
	s.logEvent(LogEvent{Op: OpProtoChanged})
	s.emitProtoChanged(previous, parent)
	return nil
}

// AssignProto is the untyped form of SetProto, for callers holding the new
// parent as an arbitrary value. It accepts a *Store (including a nil one) or
// nil and fails with ErrInvalidProto for anything else.
func (s *Store) AssignProto(value any) error {
	switch parent := value.(type) {
	case nil:
		return s.SetProto(nil)
	case *Store:
		return s.SetProto(parent)
	default:
		return fmt.Errorf("%w, got %T", ErrInvalidProto, value)
	}
}

// Chain returns the receiver followed by each ancestor, nearest first.
func (s *Store) Chain() []*Store {
	var chain []*Store
	for current := s; current != nil; current = current.parent {
		chain = append(chain, current)
	}
	return chain
}

// ToMapping flattens the chain into a single ordered mapping. Ancestor keys
// come first in ancestor order; a local key that an ancestor also holds
// replaces the ancestor value in place, and local-only keys follow in local
// order. The result is a fresh copy.
func (s *Store) ToMapping() Mapping {
	var out Mapping
	if s.parent != nil {
		out = s.parent.ToMapping()
	} else {
		out = make(Mapping, 0, len(s.order))
	}
	index := make(map[Key]int, len(out))
	for i, entry := range out {
		index[entry.Key] = i
	}
	for _, key := range s.order {
		if i, ok := index[key]; ok {
			out[i].Value = s.entries[key]
			continue
		}
		index[key] = len(out)
		out = append(out, Entry{Key: key, Value: s.entries[key]})
	}
	return out
}

// ToMap flattens the chain like ToMapping but returns a plain map.
func (s *Store) ToMap() map[string]any {
	return s.ToMapping().Map()
}

func (s *Store) put(key Key, value any) {
	if s.entries == nil {
		s.entries = make(map[Key]any)
	}
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = value
}

func (s *Store) logEvent(event LogEvent) {
	event.Store = s.cfg.name
	event.StoreID = s.id
	s.cfg.eventLogger().LogEvent(event)
}
