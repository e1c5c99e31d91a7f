package usersink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-props/pkg/activity"
	"github.com/goliatone/go-props/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	tenantID := uuid.New()

	event := activity.BuildPropertyUpdatedEvent(activity.PropertyEventInput{
		ActorID:    actorID.String(),
		TenantID:   tenantID.String(),
		Channel:    "props",
		Recipients: []string{"ops@example.com"},
		Key:        "color",
		OldValue:   "red",
		NewValue:   "blue",
		Store:      activity.StoreContext{Name: "child", ID: "store-2"},
		OccurredAt: now,
	})

	require.NoError(t, hook.Notify(context.Background(), event))
	require.Len(t, sink.records, 1)

	record := sink.records[0]
	assert.Equal(t, actorID, record.ActorID)
	assert.Equal(t, uuid.Nil, record.UserID)
	assert.Equal(t, tenantID, record.TenantID)
	assert.Equal(t, "property.updated", record.Verb)
	assert.Equal(t, activity.ObjectTypeProperty, record.ObjectType)
	assert.Equal(t, "store-2/color", record.ObjectID)
	assert.Equal(t, "props", record.Channel)
	assert.True(t, record.OccurredAt.Equal(now))
	assert.Equal(t, "blue", record.Data["new_value"])
	assert.Equal(t, "child", record.Data["store_name"])
	assert.Equal(t, []string{"ops@example.com"}, record.Data["recipients"])
}

func TestHookNotifyKeepsNonUUIDReferences(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "property.created",
		ActorID:    "deploy-bot",
		ObjectType: activity.ObjectTypeProperty,
		ObjectID:   "size",
	})
	require.NoError(t, err)
	require.Len(t, sink.records, 1)
	assert.Equal(t, uuid.Nil, sink.records[0].ActorID)
	assert.Equal(t, "deploy-bot", sink.records[0].Data["actor_ref"])
	assert.False(t, sink.records[0].OccurredAt.IsZero())
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	require.NoError(t, hook.Notify(context.Background(), activity.Event{}))
	assert.Empty(t, sink.records)
}

func TestHookNotifyReturnsSinkError(t *testing.T) {
	boom := errors.New("sink down")
	hook := usersink.Hook{Sink: &recordingSink{err: boom}}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "property.deleted",
		ObjectType: activity.ObjectTypeProperty,
		ObjectID:   "size",
	})
	assert.ErrorIs(t, err, boom)
}

func TestHookWithoutSinkIsNoop(t *testing.T) {
	require.NoError(t, usersink.Hook{}.Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "y", ObjectID: "z"}))
}
