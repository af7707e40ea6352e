// Package options implements the functional-options pattern generically
// over a target type T, so a configurable constructor in this module
// (codec.New) shares one vocabulary of
// Option[T]/New/NoError/Apply instead of each hand-rolling its own.
package options

// Option configures a value of type T, returning an error if the
// configuration is invalid.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError wraps a configuration function that can't fail as an Option,
// for the common case of a plain setter (most With* constructors).
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)

			return nil
		},
	}
}

// Apply runs every opt against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
