package props

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProto indicates a proto assignment received something other
	// than a *Store or nil.
	ErrInvalidProto = errors.New("props: prototype must be a Store or nil")
	// ErrProtoCycle indicates a proto assignment would make a store its own
	// ancestor.
	ErrProtoCycle = errors.New("props: prototype chain must not contain a cycle")
	// ErrSerialization is matched by every SerializationError.
	ErrSerialization = errors.New("props: serialization failed")
	// ErrArity indicates a dynamic property access received more than one
	// argument.
	ErrArity = errors.New("props: wrong number of arguments")
)

// Format names a structured-text encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SerializationError reports a value that could not be encoded, or a document
// that could not be decoded.
type SerializationError struct {
	Format Format
	Key    string
	Err    error
}

func (e *SerializationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Key == "" {
		return fmt.Sprintf("props: %s serialization: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("props: %s serialization key=%q: %v", e.Format, e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes every SerializationError match ErrSerialization.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Store  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("props: %s evaluator %s store=%s: %v", e.Engine, describeExpression(e.Expr), e.storeLabel(), e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *EvaluationError) storeLabel() string {
	if e.Store == "" {
		return "unnamed"
	}
	return e.Store
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

// wrapEvaluationError attaches metadata to err, filling blanks on an existing
// EvaluationError instead of nesting a second one.
func wrapEvaluationError(engine, expr, store string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Store == "" {
			evalErr.Store = store
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Store:  store,
		Err:    err,
	}
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	if strings.HasPrefix(err.Error(), "props:") {
		return err
	}
	return fmt.Errorf("props: %s evaluator: %w", engine, err)
}
