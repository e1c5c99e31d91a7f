package props

import "time"

// Operation names carried by LogEvent.Op.
const (
	OpSet          = "set"
	OpDelete       = "delete"
	OpProtoChanged = "proto.changed"
	OpEvaluate     = "evaluate"
	OpNotify       = "notify"
)

// LogEvent describes a store mutation or evaluation for logging.
type LogEvent struct {
	Op       string
	Store    string
	StoreID  string
	Key      string
	Engine   string
	Expr     string
	Duration time.Duration
	Err      error
}

// Logger records store events.
type Logger interface {
	LogEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogEvent implements Logger.
func (f LoggerFunc) LogEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogEvent(LogEvent) {}

// WithLogger attaches a logger to the store. A nil logger disables logging.
func WithLogger(logger Logger) Option {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}
