package props

import (
	"fmt"
	"time"
)

// RuleContext carries the inputs of an expression evaluation.
type RuleContext struct {
	// Snapshot is the variable environment; it defaults to the store's
	// flattened chain.
	Snapshot map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Store    string
	StoreID  string
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return *ctx.Now
}

func (ctx RuleContext) storeBinding() map[string]any {
	return map[string]any{"name": ctx.Store, "id": ctx.StoreID}
}

// builtins returns the variables every engine exposes next to the snapshot.
func (ctx RuleContext) builtins() map[string]any {
	return map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"store":    ctx.storeBinding(),
	}
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// ProgramCache stores compiled programs keyed by engine and expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache used by the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *storeConfig) {
		cfg.programCache = cache
	}
}

// Evaluate runs expr with the flattened chain as its variables.
func (s *Store) Evaluate(expr string) (any, error) {
	return s.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith runs expr using ctx. A nil ctx.Snapshot is replaced by the
// flattened chain; nested stores inside it are flattened as well.
func (s *Store) EvaluateWith(ctx RuleContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("props: expression must not be empty")
	}
	evaluator := s.resolveEvaluator()
	if ctx.Snapshot == nil {
		ctx.Snapshot = s.plainSnapshot()
	}
	if ctx.Store == "" && ctx.StoreID == "" {
		ctx.Store = s.cfg.name
		ctx.StoreID = s.id
	}
	ctx = ctx.withDefaults()

	engine := engineName(evaluator)
	start := time.Now()
	value, err := evaluator.Evaluate(ctx, expr)
	err = wrapEvaluationError(engine, expr, ctx.Store, err)
	s.logEvent(LogEvent{
		Op:       OpEvaluate,
		Engine:   engine,
		Expr:     expr,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// resolveEvaluator returns the configured evaluator or builds the default
// expr evaluator. The default is rebuilt per call since the functions it
// sees depend on the current proto chain.
func (s *Store) resolveEvaluator() Evaluator {
	if s.cfg.evaluator != nil {
		return s.cfg.evaluator
	}
	var opts []ExprEvaluatorOption
	if s.cfg.programCache != nil {
		opts = append(opts, ExprWithProgramCache(s.cfg.programCache))
	}
	if registry := s.functionRegistry(); registry != nil {
		opts = append(opts, ExprWithFunctionRegistry(registry))
	}
	return NewExprEvaluator(opts...)
}

func (s *Store) plainSnapshot() map[string]any {
	out := s.ToMap()
	for key, value := range out {
		if nested, ok := value.(*Store); ok && nested != nil {
			out[key] = nested.plainSnapshot()
		}
	}
	return out
}

type namedEngine interface {
	Engine() string
}

func engineName(e Evaluator) string {
	if named, ok := e.(namedEngine); ok {
		return named.Engine()
	}
	return "custom"
}
