package hydrate

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Context identifies the store (and optionally the key) a payload came from.
type Context struct {
	Store string
	Key   string
}

func (c Context) label() string {
	switch {
	case c.Key != "" && c.Store != "":
		return c.Store + "." + c.Key
	case c.Key != "":
		return c.Key
	case c.Store != "":
		return c.Store
	default:
		return "unnamed"
	}
}

// PreHook lets callers mutate or normalise the payload before decoding.
type PreHook func(Context, any) (any, error)

// PostHook lets callers adjust or validate the hydrated value after decoding.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts flattened property values into typed Go values by way of
// their JSON form.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithUseNumber decodes numbers into json.Number for untyped targets.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.UseNumber()
		})
	}
}

// WithDisallowUnknownFields rejects payload fields that T does not declare.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// NewDecoder builds a Decoder with opts applied in order.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T. payload may be any value the JSON encoder
// accepts, including types implementing json.Marshaler.
func (d *Decoder[T]) Decode(ctx Context, payload any) (T, error) {
	var zero, result T
	prepared, err := d.prepare(ctx, payload)
	if err != nil {
		return zero, err
	}
	if err := d.unmarshal(prepared, &result); err != nil {
		return zero, fmt.Errorf("hydrate: decode %s: %w", ctx.label(), err)
	}
	if err := d.finish(ctx, &result); err != nil {
		return zero, err
	}
	return result, nil
}

// prepare threads payload through the pre-hooks and encodes the outcome.
func (d *Decoder[T]) prepare(ctx Context, payload any) ([]byte, error) {
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre-hook for %s failed: %w", ctx.label(), err)
		}
		if next != nil {
			payload = next
		}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("hydrate: marshal payload for %s: %w", ctx.label(), err)
	}
	return encoded, nil
}

func (d *Decoder[T]) unmarshal(data []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	for _, configure := range d.configureDec {
		configure(dec)
	}
	return dec.Decode(out)
}

func (d *Decoder[T]) finish(ctx Context, out *T) error {
	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, out); err != nil {
			return fmt.Errorf("hydrate: post-hook for %s failed: %w", ctx.label(), err)
		}
	}
	return nil
}
