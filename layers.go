package props

import (
	"errors"
	"fmt"
	"sort"
)

// Layer is one named level of a chain assembled by NewChain. Higher priority
// layers sit closer to the returned store and shadow weaker ones.
type Layer struct {
	Name     string
	Priority int
	Entries  Mapping
}

// NewLayer builds a Layer from a plain map, ordering entries by key.
func NewLayer(name string, priority int, entries map[string]any) Layer {
	names := make([]string, 0, len(entries))
	for key := range entries {
		names = append(names, key)
	}
	sort.Strings(names)
	mapping := make(Mapping, 0, len(names))
	for _, key := range names {
		mapping = append(mapping, Entry{Key: Normalize(key), Value: entries[key]})
	}
	return Layer{Name: name, Priority: priority, Entries: mapping}
}

var (
	// ErrLayerNameRequired indicates a layer without a name.
	ErrLayerNameRequired = errors.New("props: layer name must be provided")
	// ErrDuplicateLayerName indicates two layers share a name.
	ErrDuplicateLayerName = errors.New("props: layer names must be unique")
	// ErrPriorityOrder indicates two layers share a priority.
	ErrPriorityOrder = errors.New("props: layer priorities must be distinct")
	// ErrNoLayers indicates NewChain received no layers.
	ErrNoLayers = errors.New("props: chain needs at least one layer")
)

// NewChain builds one store per layer and links them weakest to strongest,
// returning the strongest store. opts apply to every store; the layer name
// always wins over WithName. A WithProto option attaches the weakest layer
// to an existing store.
func NewChain(layers []Layer, opts ...Option) (*Store, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	seen := make(map[string]struct{}, len(layers))
	sorted := make([]Layer, len(layers))
	for i, layer := range layers {
		if layer.Name == "" {
			return nil, ErrLayerNameRequired
		}
		if _, ok := seen[layer.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayerName, layer.Name)
		}
		seen[layer.Name] = struct{}{}
		sorted[i] = layer
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Priority == sorted[i].Priority {
			return nil, fmt.Errorf("%w: %s and %s share %d", ErrPriorityOrder, sorted[i-1].Name, sorted[i].Name, sorted[i].Priority)
		}
	}

	base := applyOptions(opts).proto
	var current *Store
	for i, layer := range sorted {
		storeOpts := append(append([]Option{}, opts...), WithName(layer.Name))
		if i > 0 {
			storeOpts = append(storeOpts, WithProto(current))
		} else {
			storeOpts = append(storeOpts, WithProto(base))
		}
		current = NewOrdered(layer.Entries, storeOpts...)
	}
	return current, nil
}
