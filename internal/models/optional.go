package models

import "github.com/toyz/valuegen/pkg/optional"

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] = optional.Optional[T]

// Some returns a present optional wrapping v
func Some[T any](v T) Optional[T] {
	return optional.Some(v)
}

// None returns an absent optional
func None[T any]() Optional[T] {
	return optional.None[T]()
}
