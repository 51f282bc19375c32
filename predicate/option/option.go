package option

import "fmt"

// Option represents a value that may be absent: Some holds a value,
// Nothing holds none. The lookup tree uses it for terminal slots, where
// "no value was ever stored here" must stay distinct from "nil was
// stored here".
type Option[T any] struct {
	val   T
	valid bool
}

// Some creates an Option containing the given value.
func Some[T any](val T) Option[T] {
	return Option[T]{val: val, valid: true}
}

// Nothing creates an empty Option.
func Nothing[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if the Option contains a value.
func (o Option[T]) IsSome() bool {
	return o.valid
}

// IsNothing returns true if the Option does not contain a value.
func (o Option[T]) IsNothing() bool {
	return !o.valid
}

// Unwrap returns the contained value.
// Panics if the Option is Nothing.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("called Unwrap on a Nothing Option")
	}
	return o.val
}

// UnwrapOr returns the contained value or the provided default.
func (o Option[T]) UnwrapOr(def T) T {
	if o.valid {
		return o.val
	}
	return def
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if o.valid {
		return fmt.Sprintf("Some(%v)", o.val)
	}
	return "Nothing"
}
