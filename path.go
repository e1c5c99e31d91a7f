package props

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SetPath writes value at a dotted path below a top-level key, for example
// "notifications.email.enabled". The first segment names the key; the rest is
// an sjson path into its value. The resolved value (local or inherited) is
// copied, patched and stored locally, so ancestors never change. A path
// without a dot is a plain Set. Dots inside the first segment can be escaped
// with a backslash.
func (s *Store) SetPath(path string, value any) error {
	top, rest := splitPath(path)
	if rest == "" {
		s.Set(top, value)
		return nil
	}

	doc := []byte("{}")
	if current := plainValue(s.Get(top)); current != nil {
		encoded, err := json.Marshal(current)
		if err != nil {
			return &SerializationError{Format: FormatJSON, Key: top, Err: err}
		}
		doc = encoded
	}
	patched, err := sjson.SetBytes(doc, rest, value)
	if err != nil {
		return &SerializationError{Format: FormatJSON, Key: path, Err: err}
	}
	s.Set(top, gjson.ParseBytes(patched).Value())
	return nil
}

// splitPath separates the first unescaped segment of path from the rest.
func splitPath(path string) (string, string) {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '\\':
			i++
		case '.':
			return unescapeSegment(path[:i]), path[i+1:]
		}
	}
	return unescapeSegment(path), ""
}

func unescapeSegment(segment string) string {
	return strings.ReplaceAll(segment, `\.`, ".")
}
