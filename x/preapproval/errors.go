package preapproval

import "github.com/holdings-one/holdings/errors"

var (
	// ErrAssetMismatch is returned when the record presented for
	// redemption is not the one the pre-approval was granted for.
	ErrAssetMismatch = errors.Register(1050, "record does not match pre-approval")
)
