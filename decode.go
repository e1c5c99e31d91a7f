package props

import (
	"github.com/goliatone/go-props/internal/hydrate"
)

// Decode converts the flattened chain into T through its JSON form, so json
// struct tags apply.
func Decode[T any](s *Store) (T, error) {
	return hydrate.NewDecoder[T]().Decode(s.hydrateContext(""), s.ToMapping())
}

// DecodeStrict is Decode, failing when the chain holds keys T does not
// declare.
func DecodeStrict[T any](s *Store) (T, error) {
	decoder := hydrate.NewDecoder(hydrate.WithDisallowUnknownFields[T]())
	return decoder.Decode(s.hydrateContext(""), s.ToMapping())
}

// DecodeKey converts the value that name resolves to into T. A missing key
// decodes from null and yields the zero value.
func DecodeKey[T any](s *Store, name string) (T, error) {
	return hydrate.NewDecoder[T]().Decode(s.hydrateContext(name), plainValue(s.Get(name)))
}

// Value returns the value name resolves to when it holds a T.
func Value[T any](s *Store, name string) (T, bool) {
	value, ok := s.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

func (s *Store) hydrateContext(key string) hydrate.Context {
	store := s.cfg.name
	if store == "" {
		store = s.id
	}
	return hydrate.Context{Store: store, Key: key}
}
