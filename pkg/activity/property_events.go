package activity

import (
	"strings"
	"time"
)

// Object types used by property events.
const (
	ObjectTypeProperty = "property"
	ObjectTypeStore    = "store"
)

// StoreContext identifies the store an event originated from.
type StoreContext struct {
	Name  string
	ID    string
	Depth int
}

// PropertyEventInput describes the common fields for property lifecycle events.
type PropertyEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Recipients []string
	Metadata   map[string]any
	Key        string
	OldValue   any
	NewValue   any
	Store      StoreContext
	OccurredAt time.Time
}

// ProtoEventInput describes a proto reassignment on a store.
type ProtoEventInput struct {
	ActorID    string
	Channel    string
	Metadata   map[string]any
	Store      StoreContext
	Previous   StoreContext
	Current    StoreContext
	OccurredAt time.Time
}

// BuildPropertyCreatedEvent describes a key written for the first time on a store.
func BuildPropertyCreatedEvent(input PropertyEventInput) Event {
	return buildPropertyEvent("property.created", input)
}

// BuildPropertyUpdatedEvent describes an existing local key being overwritten.
func BuildPropertyUpdatedEvent(input PropertyEventInput) Event {
	return buildPropertyEvent("property.updated", input)
}

// BuildPropertyDeletedEvent describes a local key being removed.
func BuildPropertyDeletedEvent(input PropertyEventInput) Event {
	return buildPropertyEvent("property.deleted", input)
}

// BuildProtoChangedEvent describes a store switching to a different proto.
// An empty Current.ID means the store was detached.
func BuildProtoChangedEvent(input ProtoEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = withStore(metadata, input.Store)
	if input.Previous.ID != "" {
		metadata = ensureMetadata(metadata)
		metadata["previous_proto_id"] = input.Previous.ID
		if input.Previous.Name != "" {
			metadata["previous_proto_name"] = input.Previous.Name
		}
	}
	if input.Current.ID != "" {
		metadata = ensureMetadata(metadata)
		metadata["proto_id"] = input.Current.ID
		if input.Current.Name != "" {
			metadata["proto_name"] = input.Current.Name
		}
	}
	return Event{
		Verb:       "store.proto.changed",
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: ObjectTypeStore,
		ObjectID:   storeObjectID(input.Store),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func buildPropertyEvent(verb string, input PropertyEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = withStore(metadata, input.Store)
	if input.Key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = input.Key
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	var recipients []string
	if len(input.Recipients) > 0 {
		recipients = append([]string{}, input.Recipients...)
	}

	objectID := strings.TrimSpace(input.Key)
	if id := storeObjectID(input.Store); id != ObjectTypeStore && objectID != "" {
		objectID = id + "/" + objectID
	}
	if objectID == "" {
		objectID = ObjectTypeProperty
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeProperty,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Recipients: recipients,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func withStore(metadata map[string]any, store StoreContext) map[string]any {
	if store.ID == "" && store.Name == "" {
		return metadata
	}
	metadata = ensureMetadata(metadata)
	if store.ID != "" {
		metadata["store_id"] = store.ID
	}
	if store.Name != "" {
		metadata["store_name"] = store.Name
	}
	metadata["store_depth"] = store.Depth
	return metadata
}

func storeObjectID(store StoreContext) string {
	if id := strings.TrimSpace(store.ID); id != "" {
		return id
	}
	if name := strings.TrimSpace(store.Name); name != "" {
		return name
	}
	return ObjectTypeStore
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
