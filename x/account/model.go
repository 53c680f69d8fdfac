package account

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/asset"
)

// Account authorizes all record operations for one (type, owner) pair. It is
// stored under the pair's holder key, which makes the pair unique by
// construction.
type Account struct {
	Type  asset.Type       `json:"type"`
	Owner holdings.Address `json:"owner"`
	// Airdroppable lets the issuer mint into this account without a
	// per-mint consent of the owner.
	Airdroppable bool `json:"airdroppable"`
	// Resharable lets the owner invite further accounts of the same type
	// without going back to the issuer.
	Resharable bool `json:"resharable"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return cbor.Marshal(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, a)
}

// Validate ensures the account is well formed.
func (a *Account) Validate() error {
	if err := a.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Key returns the primary key the account is stored under.
func (a *Account) Key() []byte {
	return a.Type.HolderKey(a.Owner)
}

// Invitation is an open offer, backed by issuer-side consent, for the
// recipient to open an account. It is consumed on accept or reject.
type Invitation struct {
	Type         asset.Type       `json:"type"`
	Recipient    holdings.Address `json:"recipient"`
	Airdroppable bool             `json:"airdroppable"`
	Resharable   bool             `json:"resharable"`
}

var _ orm.Model = (*Invitation)(nil)

func (i *Invitation) Marshal() ([]byte, error) {
	return cbor.Marshal(i)
}

func (i *Invitation) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, i)
}

func (i *Invitation) Validate() error {
	if err := i.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := i.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// CloseProposal records the owner's wish to close their account. The issuer
// finalizes it by archiving the remaining records together with the account.
type CloseProposal struct {
	Type  asset.Type       `json:"type"`
	Owner holdings.Address `json:"owner"`
}

var _ orm.Model = (*CloseProposal)(nil)

func (p *CloseProposal) Marshal() ([]byte, error) {
	return cbor.Marshal(p)
}

func (p *CloseProposal) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, p)
}

func (p *CloseProposal) Validate() error {
	if err := p.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := p.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}
