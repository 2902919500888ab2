package pattern

import "errors"

// Result is the outcome of a parse: either a value or a structured
// *ParseError. Parsing never panics; MustGet converts a failure into a panic
// carrying the identical message for callers who prefer that.
type Result[T any] struct {
	value T
	err   error
}

func success[T any](v T) Result[T]            { return Result[T]{value: v} }
func failure[T any](err *ParseError) Result[T] { return Result[T]{err: err} }

// OK reports whether the parse succeeded.
func (r Result[T]) OK() bool { return r.err == nil }

// Get returns the parsed value or the failure.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error { return r.err }

// MustGet returns the value or panics with the failure's message.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(r.err.Error())
	}
	return r.value
}

// Parser is the parse surface shared by every pattern facade.
type Parser[T any] interface {
	Parse(text string) Result[T]
}

// Composite tries patterns in order and returns the first success. An empty
// input short-circuits: no pattern can parse empty text differently, so that
// failure propagates without retrying.
type Composite[T any] struct {
	parsers []Parser[T]
}

// NewComposite builds a composite over the given parsers, tried in order.
// At least one parser is required.
func NewComposite[T any](parsers ...Parser[T]) Composite[T] {
	if len(parsers) == 0 {
		panic("pattern: NewComposite requires at least one parser")
	}
	return Composite[T]{parsers: parsers}
}

// Parse implements Parser. When every pattern fails, the last failure is
// returned.
func (c Composite[T]) Parse(text string) Result[T] {
	var last Result[T]
	if len(c.parsers) == 0 {
		panic("pattern: Composite has no parsers")
	}
	for _, p := range c.parsers {
		r := p.Parse(text)
		if r.OK() {
			return r
		}
		var pe *ParseError
		if errors.As(r.Err(), &pe) && pe.Kind == ValueStringEmpty {
			return r
		}
		last = r
	}
	return last
}
