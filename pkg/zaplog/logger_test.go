package zaplog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	props "github.com/goliatone/go-props"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core)), logs
}

func TestLoggerRecordsStoreMutations(t *testing.T) {
	logger, logs := observed()
	store := props.New(nil, props.WithName("prefs"), props.WithLogger(logger))

	store.Set("color", "blue")
	store.Delete("color")

	entries := logs.All()
	require.Len(t, entries, 2)

	set := entries[0]
	assert.Equal(t, zapcore.DebugLevel, set.Level)
	assert.Equal(t, "props", set.LoggerName)
	fields := set.ContextMap()
	assert.Equal(t, props.OpSet, fields["op"])
	assert.Equal(t, "prefs", fields["store"])
	assert.Equal(t, store.ID(), fields["store_id"])
	assert.Equal(t, "color", fields["key"])

	assert.Equal(t, props.OpDelete, entries[1].ContextMap()["op"])
}

func TestLoggerWarnsOnFailedEvaluation(t *testing.T) {
	logger, logs := observed()
	store := props.New(map[string]any{"count": 1}, props.WithLogger(logger))

	_, err := store.Evaluate("count +")
	require.Error(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, props.OpEvaluate, fields["op"])
	assert.Equal(t, "expr", fields["engine"])
	assert.Equal(t, "count +", fields["expr"])
	assert.Contains(t, fields, "error")
}

func TestFieldsSkipsEmptyValues(t *testing.T) {
	fields := Fields(props.LogEvent{Op: props.OpNotify, Err: errors.New("hook down")})

	require.Len(t, fields, 2)
	assert.Equal(t, "op", fields[0].Key)
	assert.Equal(t, "error", fields[1].Key)
}

func TestNewWithNilLogger(t *testing.T) {
	logger := New(nil)
	assert.NotPanics(t, func() {
		logger.LogEvent(props.LogEvent{Op: props.OpSet})
	})
}
