package trade

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/asset"
)

// Escrow parks the proposer's offered value for the lifetime of the trade.
// Asset.Owner remains the proposer until settlement moves it.
type Escrow struct {
	Asset    asset.Asset      `json:"asset"`
	Receiver holdings.Address `json:"receiver"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error) {
	return cbor.Marshal(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, e)
}

func (e *Escrow) Validate() error {
	if err := e.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := e.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	return nil
}

// Offer binds the two legs of a trade together: the escrowed value on the
// proposer's side and the pre-approval that will pull in the wanted value
// from the receiver.
type Offer struct {
	Proposer      holdings.Address `json:"proposer"`
	Receiver      holdings.Address `json:"receiver"`
	EscrowID      []byte           `json:"escrow_id"`
	PreApprovalID []byte           `json:"pre_approval_id"`
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Marshal() ([]byte, error) {
	return cbor.Marshal(o)
}

func (o *Offer) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, o)
}

func (o *Offer) Validate() error {
	if err := o.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := o.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if len(o.EscrowID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	if len(o.PreApprovalID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pre-approval id")
	}
	return nil
}
