package props

import (
	"fmt"
	"sort"
	"strings"
)

// FieldDescriptor describes a dotted path in the flattened chain and the Go
// type of the value found there.
type FieldDescriptor struct {
	Path string `json:"path" yaml:"path"`
	Type string `json:"type" yaml:"type"`
}

// Describe lists the leaf paths of the flattened chain with their inferred
// types. Top-level keys follow ToMapping order; nested map keys are sorted
// and nested stores are flattened first.
func (s *Store) Describe() []FieldDescriptor {
	fields := []FieldDescriptor{}
	for _, entry := range s.ToMapping() {
		fields = append(fields, describeValue(plainValue(entry.Value), string(entry.Key))...)
	}
	return fields
}

func plainValue(value any) any {
	if nested, ok := value.(*Store); ok && nested != nil {
		return nested.plainSnapshot()
	}
	return value
}

func describeValue(value any, prefix string) []FieldDescriptor {
	switch typed := value.(type) {
	case nil:
		return []FieldDescriptor{{Path: prefix, Type: "nil"}}
	case map[string]any:
		if len(typed) == 0 {
			return []FieldDescriptor{{Path: prefix, Type: "map[string]any"}}
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var fields []FieldDescriptor
		for _, key := range keys {
			fields = append(fields, describeValue(plainValue(typed[key]), joinPath(prefix, key))...)
		}
		return fields
	case []any:
		elementType := "any"
		if len(typed) > 0 {
			elementType = typeName(typed[0])
		}
		return []FieldDescriptor{{Path: prefix, Type: "[]" + elementType}}
	default:
		return []FieldDescriptor{{Path: prefix, Type: typeName(typed)}}
	}
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
