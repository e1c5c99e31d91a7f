package props

import (
	json "github.com/goccy/go-json"
)

// Trace records how a key resolves across a store chain.
type Trace struct {
	Key    string       `json:"key"`
	Layers []Provenance `json:"layers"`
}

// Provenance details what one store in the chain holds for a traced key.
// Depth is 0 for the store the lookup started from.
type Provenance struct {
	Store   string `json:"store,omitempty"`
	StoreID string `json:"store_id"`
	Depth   int    `json:"depth"`
	Value   any    `json:"value,omitempty"`
	Found   bool   `json:"found"`
}

// Trace walks the whole chain for name and reports every store visited,
// including those shadowed by a nearer owner.
func (s *Store) Trace(name string) Trace {
	key := Normalize(name)
	trace := Trace{Key: string(key)}
	depth := 0
	for current := s; current != nil; current = current.parent {
		value, ok := current.entries[key]
		trace.Layers = append(trace.Layers, Provenance{
			Store:   current.cfg.name,
			StoreID: current.id,
			Depth:   depth,
			Value:   value,
			Found:   ok,
		})
		depth++
	}
	return trace
}

// Resolved returns the layer whose value Get would return.
func (t Trace) Resolved() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Found {
			return layer, true
		}
	}
	return Provenance{}, false
}

// Shadowed returns the layers that hold the key but lose to a nearer store.
func (t Trace) Shadowed() []Provenance {
	var out []Provenance
	resolved := false
	for _, layer := range t.Layers {
		if !layer.Found {
			continue
		}
		if resolved {
			out = append(out, layer)
		}
		resolved = true
	}
	return out
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
