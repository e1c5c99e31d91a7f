package props

import "github.com/goliatone/go-props/pkg/activity"

// WithActivityHooks attaches hooks notified on every local mutation and proto
// change. Nil hooks are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	return func(cfg *storeConfig) {
		cfg.emitter = activity.NewEmitter(hooks, activity.Config{Enabled: true})
	}
}

// ActivityHooks returns a copy of the hooks configured on the store.
func (s *Store) ActivityHooks() activity.Hooks {
	return s.cfg.emitter.Hooks()
}

// storeContext identifies s in events; Depth counts its ancestors.
func (s *Store) storeContext() activity.StoreContext {
	return activity.StoreContext{Name: s.cfg.name, ID: s.id, Depth: len(s.Chain()) - 1}
}

func (s *Store) emitSet(key Key, previous any, existed bool, value any) {
	if !s.cfg.emitter.Enabled() {
		return
	}
	input := activity.PropertyEventInput{
		Key:      string(key),
		NewValue: value,
		Store:    s.storeContext(),
	}
	if existed {
		input.OldValue = previous
		s.emit(activity.BuildPropertyUpdatedEvent(input))
		return
	}
	s.emit(activity.BuildPropertyCreatedEvent(input))
}

func (s *Store) emitDelete(key Key, previous any) {
	if !s.cfg.emitter.Enabled() {
		return
	}
	s.emit(activity.BuildPropertyDeletedEvent(activity.PropertyEventInput{
		Key:      string(key),
		OldValue: previous,
		Store:    s.storeContext(),
	}))
}

func (s *Store) emitProtoChanged(previous, current *Store) {
	if !s.cfg.emitter.Enabled() {
		return
	}
	input := activity.ProtoEventInput{Store: s.storeContext()}
	if previous != nil {
		input.Previous = previous.storeContext()
	}
	if current != nil {
		input.Current = current.storeContext()
	}
	s.emit(activity.BuildProtoChangedEvent(input))
}

// emit delivers event to the hooks. Hook failures never fail the mutation;
// they are reported to the store logger instead.
func (s *Store) emit(event activity.Event) {
	if err := s.cfg.emitter.Emit(s.cfg.context(), event); err != nil {
		s.logEvent(LogEvent{Op: OpNotify, Key: event.ObjectID, Err: err})
	}
}
