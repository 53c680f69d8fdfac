package account

import "github.com/holdings-one/holdings/errors"

var (
	// ErrTypeMismatch is returned when a referenced record does not carry
	// the asset type of the account being operated on.
	ErrTypeMismatch = errors.Register(1020, "asset type mismatch")

	// ErrOwnerMismatch is returned when a referenced record is not owned
	// by the account owner.
	ErrOwnerMismatch = errors.Register(1021, "record owner mismatch")

	// ErrDuplicateInput is returned when the same record id appears twice
	// in one input list.
	ErrDuplicateInput = errors.Register(1022, "duplicate input record")

	// ErrAirdropNotPermitted is returned when the issuer mints into an
	// account that did not opt in to unsolicited mints.
	ErrAirdropNotPermitted = errors.Register(1023, "account does not accept airdrops")

	// ErrNonFungible is returned when a merge or split is attempted on an
	// indivisible asset type.
	ErrNonFungible = errors.Register(1024, "non-fungible records cannot be merged or split")

	// ErrSingleInput is returned when a non-fungible operation references
	// more than one input record.
	ErrSingleInput = errors.Register(1025, "non-fungible operations take exactly one input")
)
