package engine

import "errors"

var (
	// ErrValidation marks inputs the engine refuses to compute on: a
	// non-positive share weight, a negative charge, an item quantity below
	// one, or an empty people list.
	ErrValidation = errors.New("invalid bill input")

	// ErrUnknownReference marks a share pointing at an item or person that
	// was not passed in. Shares carry money, so they are never silently
	// dropped.
	ErrUnknownReference = errors.New("unknown reference")
)
