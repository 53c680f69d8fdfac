package transfer

import "github.com/holdings-one/holdings/errors"

var (
	// ErrRecipientMismatch is returned when a pre-approval is presented
	// for an offer addressed to somebody else.
	ErrRecipientMismatch = errors.Register(1040, "offer recipient mismatch")
)
