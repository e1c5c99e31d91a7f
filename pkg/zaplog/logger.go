// Package zaplog adapts a *zap.Logger to the props.Logger interface.
package zaplog

import (
	"go.uber.org/zap"

	props "github.com/goliatone/go-props"
)

// Logger writes store events to zap. Successful events log at debug level,
// failed ones at warn.
type Logger struct {
	log *zap.Logger
}

// New wraps log. A nil log falls back to zap.NewNop.
func New(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("props")}
}

// LogEvent implements props.Logger.
func (l *Logger) LogEvent(event props.LogEvent) {
	fields := Fields(event)
	if event.Err != nil {
		l.log.Warn("store event failed", fields...)
		return
	}
	l.log.Debug("store event", fields...)
}

// Fields converts event into zap fields, skipping empty ones.
func Fields(event props.LogEvent) []zap.Field {
	fields := []zap.Field{zap.String("op", event.Op)}
	if event.Store != "" {
		fields = append(fields, zap.String("store", event.Store))
	}
	if event.StoreID != "" {
		fields = append(fields, zap.String("store_id", event.StoreID))
	}
	if event.Key != "" {
		fields = append(fields, zap.String("key", event.Key))
	}
	if event.Engine != "" {
		fields = append(fields, zap.String("engine", event.Engine))
	}
	if event.Expr != "" {
		fields = append(fields, zap.String("expr", event.Expr))
	}
	if event.Duration > 0 {
		fields = append(fields, zap.Duration("duration", event.Duration))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	return fields
}
