package props

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraceReportsEveryLayer(t *testing.T) {
	root := New(map[string]any{"theme": "light"}, WithName("system"))
	team := New(map[string]any{"theme": "dark"}, WithName("team"), WithProto(root))
	user := New(nil, WithName("user"), WithProto(team))

	trace := user.Trace("theme")
	if trace.Key != "theme" {
		t.Fatalf("expected key theme, got %q", trace.Key)
	}
	want := []Provenance{
		{Store: "user", StoreID: user.ID(), Depth: 0},
		{Store: "team", StoreID: team.ID(), Depth: 1, Value: "dark", Found: true},
		{Store: "system", StoreID: root.ID(), Depth: 2, Value: "light", Found: true},
	}
	if diff := cmp.Diff(want, trace.Layers); diff != "" {
		t.Fatalf("layers mismatch (-want +got):\n%s", diff)
	}

	resolved, ok := trace.Resolved()
	if !ok || resolved.Store != "team" {
		t.Fatalf("expected team to resolve theme, got %+v", resolved)
	}
	if resolved.Value != user.Get("theme") {
		t.Fatalf("trace disagrees with Get")
	}

	shadowed := trace.Shadowed()
	if len(shadowed) != 1 || shadowed[0].Store != "system" {
		t.Fatalf("expected system to be shadowed, got %+v", shadowed)
	}
}

func TestTraceMissingKey(t *testing.T) {
	s := New(nil, WithName("only"))

	trace := s.Trace("missing")
	if _, ok := trace.Resolved(); ok {
		t.Fatalf("expected no resolution for missing key")
	}
	if len(trace.Shadowed()) != 0 {
		t.Fatalf("expected nothing shadowed")
	}
	if len(trace.Layers) != 1 || trace.Layers[0].Found {
		t.Fatalf("expected single unfound layer, got %+v", trace.Layers)
	}
}

func TestTraceJSONRoundTrip(t *testing.T) {
	base := New(map[string]any{"limit": "10"}, WithName("defaults"))
	s := New(map[string]any{"limit": "20"}, WithName("tenant"), WithProto(base))

	trace := s.Trace("limit")
	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(trace, decoded); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}

	if _, err := TraceFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected malformed payload to fail")
	}
}
