package asset

import "github.com/holdings-one/holdings/errors"

var (
	// ErrConsumed is returned when a referenced record id was already
	// consumed by an earlier operation.
	ErrConsumed = errors.Register(1010, "record already consumed")
)
