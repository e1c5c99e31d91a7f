package props

import (
	"errors"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

var (
	errInvalidDocument = errors.New("document is not valid")
	errNotObject       = errors.New("document root must be an object")
)

// ToJSON encodes the flattened chain as a JSON object whose fields follow
// ToMapping order. A value the encoder cannot represent fails with a
// *SerializationError naming the offending key.
func (s *Store) ToJSON() ([]byte, error) {
	return s.ToMapping().MarshalJSON()
}

// ToYAML encodes the flattened chain as a YAML mapping in ToMapping order.
func (s *Store) ToYAML() ([]byte, error) {
	node, err := s.ToMapping().MarshalYAML()
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}
	return out, nil
}

// MarshalJSON lets stores nested as values encode as their flattened chain.
func (s *Store) MarshalJSON() ([]byte, error) {
	return s.ToJSON()
}

// MarshalYAML lets stores nested as values encode as their flattened chain.
func (s *Store) MarshalYAML() (any, error) {
	return s.ToMapping().MarshalYAML()
}

// Parse builds a store from a JSON object, keeping the document's field
// order. Numbers decode as float64 and nested objects as map[string]any.
func Parse(data []byte, opts ...Option) (*Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, &SerializationError{Format: FormatJSON, Err: errInvalidDocument}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &SerializationError{Format: FormatJSON, Err: errNotObject}
	}
	var mapping Mapping
	doc.ForEach(func(key, value gjson.Result) bool {
		mapping = append(mapping, Entry{Key: Normalize(key.String()), Value: value.Value()})
		return true
	})
	return NewOrdered(mapping, opts...), nil
}

// ParseYAML builds a store from a YAML mapping document, keeping key order.
// An empty document yields an empty store.
func ParseYAML(data []byte, opts ...Option) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}
	if len(doc.Content) == 0 {
		return NewOrdered(nil, opts...), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &SerializationError{Format: FormatYAML, Err: errNotObject}
	}
	mapping := make(Mapping, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var value any
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, &SerializationError{Format: FormatYAML, Key: name, Err: err}
		}
		mapping = append(mapping, Entry{Key: Normalize(name), Value: value})
	}
	return NewOrdered(mapping, opts...), nil
}

// Query resolves a gjson path (for example "notifications.email.enabled")
// against the JSON form of the flattened chain, reaching into nested values.
// The second result is false when the path matches nothing.
func (s *Store) Query(path string) (any, bool, error) {
	data, err := s.ToJSON()
	if err != nil {
		return nil, false, err
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, false, nil
	}
	return result.Value(), true, nil
}
