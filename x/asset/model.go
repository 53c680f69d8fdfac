package asset

import (
	"crypto/sha256"
	"encoding/binary"
	"regexp"

	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
)

// IsSymbol is the RegExp to ensure valid asset symbols.
var IsSymbol = regexp.MustCompile(`^[A-Z0-9]{2,10}$`).MatchString

// Type identifies an asset class. It is a pure value: two types are the same
// asset iff all fields match. It is never stored on its own, only embedded
// in the records and accounts that reference it.
type Type struct {
	// Issuer may co-sign minting and settlement of this asset type.
	Issuer holdings.Address `json:"issuer"`
	// Symbol is the display name of the type.
	Symbol string `json:"symbol"`
	// Fungible types can be split and merged. Non-fungible units are
	// indivisible singletons with amount fixed at one.
	Fungible bool `json:"fungible"`
	// Reference optionally points at an external definition of the type.
	Reference string `json:"reference,omitempty"`
}

// Validate ensures the type is well formed.
func (t Type) Validate() error {
	if err := t.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	if !IsSymbol(t.Symbol) {
		return errors.ErrInput.Newf("symbol: %q", t.Symbol)
	}
	return nil
}

// Equals returns true iff all fields match.
func (t Type) Equals(o Type) bool {
	return t.Issuer.Equals(o.Issuer) &&
		t.Symbol == o.Symbol &&
		t.Fungible == o.Fungible &&
		t.Reference == o.Reference
}

// HolderKey derives the unique key of the (type, owner) pair. It is used as
// the account primary key and as the holdings index key, enforcing one
// account per type and owner.
func (t Type) HolderKey(owner holdings.Address) []byte {
	h := sha256.New()
	write := func(chunk []byte) {
		var ln [4]byte
		binary.BigEndian.PutUint32(ln[:], uint32(len(chunk)))
		h.Write(ln[:])
		h.Write(chunk)
	}
	write(t.Issuer)
	write([]byte(t.Symbol))
	if t.Fungible {
		write([]byte{1})
	} else {
		write([]byte{0})
	}
	write([]byte(t.Reference))
	write(owner)
	return h.Sum(nil)
}

// Asset is a single record of value: an amount of one type held by one
// owner. Observers are principals that may see the record without being able
// to authorize anything on it.
type Asset struct {
	Type      Type               `json:"type"`
	Owner     holdings.Address   `json:"owner"`
	Amount    amount.Amount      `json:"amount"`
	Observers []holdings.Address `json:"observers,omitempty"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Marshal() ([]byte, error) {
	return cbor.Marshal(a)
}

func (a *Asset) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, a)
}

// Validate enforces the amount policy: fungible records hold any positive
// amount, non-fungible records hold exactly one unit.
func (a *Asset) Validate() error {
	if err := a.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if a.Type.Fungible {
		if !a.Amount.IsPositive() {
			return errors.Wrapf(errors.ErrInvalidAmount, "fungible amount %s", a.Amount)
		}
	} else {
		if !a.Amount.Equals(amount.One()) {
			return errors.Wrapf(errors.ErrInvalidAmount, "non-fungible amount %s", a.Amount)
		}
	}
	for i, obs := range a.Observers {
		if err := obs.Validate(); err != nil {
			return errors.Wrapf(err, "observer #%d", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the record.
func (a *Asset) Clone() *Asset {
	cpy := &Asset{
		Type:   a.Type,
		Owner:  a.Owner.Clone(),
		Amount: a.Amount,
	}
	if a.Observers != nil {
		cpy.Observers = make([]holdings.Address, len(a.Observers))
		for i, obs := range a.Observers {
			cpy.Observers[i] = obs.Clone()
		}
	}
	return cpy
}

// Matches reports whether the record equals the given snapshot in type,
// owner and amount. Observers are deliberately ignored: they carry no
// authorization weight.
func (a *Asset) Matches(o *Asset) bool {
	return a.Type.Equals(o.Type) &&
		a.Owner.Equals(o.Owner) &&
		a.Amount.Equals(o.Amount)
}
