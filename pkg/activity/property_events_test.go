package activity

import "testing"

func TestBuildPropertyUpdatedEventCarriesStoreAndValues(t *testing.T) {
	event := BuildPropertyUpdatedEvent(PropertyEventInput{
		ActorID:  " actor ",
		Key:      "color",
		OldValue: "red",
		NewValue: "blue",
		Store:    StoreContext{Name: "child", ID: "store-2"},
	})

	if event.Verb != "property.updated" || event.ObjectType != ObjectTypeProperty {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "store-2/color" {
		t.Fatalf("expected object id scoped to store, got %q", event.ObjectID)
	}
	if event.ActorID != "actor" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	want := map[string]any{
		"key":         "color",
		"old_value":   "red",
		"new_value":   "blue",
		"store_id":    "store-2",
		"store_name":  "child",
		"store_depth": 0,
	}
	for key, value := range want {
		if event.Metadata[key] != value {
			t.Fatalf("metadata[%q] = %v, want %v", key, event.Metadata[key], value)
		}
	}
}

func TestBuildPropertyEventWithoutStoreUsesKey(t *testing.T) {
	event := BuildPropertyCreatedEvent(PropertyEventInput{Key: "size"})
	if event.ObjectID != "size" {
		t.Fatalf("expected key as object id, got %q", event.ObjectID)
	}
	if _, ok := event.Metadata["old_value"]; ok {
		t.Fatalf("expected no old_value for nil input, got %+v", event.Metadata)
	}

	empty := BuildPropertyDeletedEvent(PropertyEventInput{})
	if empty.ObjectID != ObjectTypeProperty || empty.Metadata != nil {
		t.Fatalf("expected fallback object id and nil metadata, got %+v", empty)
	}
}

func TestBuildProtoChangedEvent(t *testing.T) {
	event := BuildProtoChangedEvent(ProtoEventInput{
		Store:    StoreContext{Name: "child", ID: "c1"},
		Previous: StoreContext{Name: "base", ID: "b1"},
		Current:  StoreContext{ID: "b2"},
	})
	if event.Verb != "store.proto.changed" || event.ObjectType != ObjectTypeStore || event.ObjectID != "c1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["previous_proto_id"] != "b1" || event.Metadata["previous_proto_name"] != "base" {
		t.Fatalf("expected previous proto metadata, got %+v", event.Metadata)
	}
	if event.Metadata["proto_id"] != "b2" {
		t.Fatalf("expected current proto metadata, got %+v", event.Metadata)
	}
	if _, ok := event.Metadata["proto_name"]; ok {
		t.Fatalf("expected no proto_name for unnamed proto, got %+v", event.Metadata)
	}
}
