package props

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   Key
	Value any
}

// Mapping is an ordered plain mapping, the flattened form of a store chain.
// It encodes to JSON and YAML objects whose fields follow the slice order.
type Mapping []Entry

// Get returns the value stored under name.
func (m Mapping) Get(name string) (any, bool) {
	key := Normalize(name)
	for _, entry := range m {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Keys returns the mapping keys in order.
func (m Mapping) Keys() []string {
	out := make([]string, len(m))
	for i, entry := range m {
		out[i] = string(entry.Key)
	}
	return out
}

// Map converts the mapping into a plain map, dropping order.
func (m Mapping) Map() map[string]any {
	out := make(map[string]any, len(m))
	for _, entry := range m {
		out[string(entry.Key)] = entry.Value
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object preserving key order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(string(entry.Key))
		if err != nil {
			return nil, &SerializationError{Format: FormatJSON, Key: string(entry.Key), Err: err}
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, &SerializationError{Format: FormatJSON, Key: string(entry.Key), Err: err}
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the mapping as a YAML mapping node preserving key order.
func (m Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range m {
		value, err := encodeYAMLNode(entry.Value)
		if err != nil {
			return nil, &SerializationError{Format: FormatYAML, Key: string(entry.Key), Err: err}
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(entry.Key)},
			value,
		)
	}
	return node, nil
}

// encodeYAMLNode converts value into a node. yaml.v3 panics on kinds it cannot
// represent (channels, functions), so that panic is turned into an error.
func encodeYAMLNode(value any) (node *yaml.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			node = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	node = &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}
