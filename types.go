package props

import (
	"context"

	"github.com/goliatone/go-props/pkg/activity"
)

// Key is the canonical form of a property name. Two textually identical names
// always normalize to the same Key, so "color" and Key("color") address the
// same entry.
type Key string

// Normalize converts a property name into its canonical Key.
func Normalize(name string) Key {
	return Key(name)
}

// String returns the textual spelling of k.
func (k Key) String() string {
	return string(k)
}

// Option configures a Store at construction time.
type Option func(*storeConfig)

type storeConfig struct {
	name         string
	proto        *Store
	logger       Logger
	emitter      *activity.Emitter
	ctx          context.Context
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
}

func applyOptions(opts []Option) storeConfig {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithProto sets the initial parent consulted on lookup misses. A nil parent
// leaves the store without a proto.
func WithProto(parent *Store) Option {
	return func(cfg *storeConfig) {
		cfg.proto = parent
	}
}

// WithName labels the store. The name shows up in traces, log events and
// activity metadata; it has no effect on lookups.
func WithName(name string) Option {
	return func(cfg *storeConfig) {
		cfg.name = name
	}
}

// WithContext sets the context handed to activity hooks when the store
// emits mutation events.
func WithContext(ctx context.Context) Option {
	return func(cfg *storeConfig) {
		cfg.ctx = ctx
	}
}

// WithEvaluator configures the expression engine used by Evaluate.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *storeConfig) {
		cfg.evaluator = e
	}
}

func (cfg storeConfig) context() context.Context {
	if cfg.ctx != nil {
		return cfg.ctx
	}
	return context.Background()
}

func (cfg storeConfig) eventLogger() Logger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopLogger{}
}
