package transfer

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/asset"
)

// Offer parks value consumed from the sender's records until the recipient
// deposits it or one side backs out. Observers of the source records travel
// with the offer so a cancellation can restore them; a deposit issues a
// clean record.
type Offer struct {
	Type      asset.Type         `json:"type"`
	Sender    holdings.Address   `json:"sender"`
	Recipient holdings.Address   `json:"recipient"`
	Amount    amount.Amount      `json:"amount"`
	Observers []holdings.Address `json:"observers,omitempty"`
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Marshal() ([]byte, error) {
	return cbor.Marshal(o)
}

func (o *Offer) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, o)
}

// Validate ensures the offer is well formed.
func (o *Offer) Validate() error {
	if err := o.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := o.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := o.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := o.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !o.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "amount %s", o.Amount)
	}
	for i, obs := range o.Observers {
		if err := obs.Validate(); err != nil {
			return errors.Wrapf(err, "observer #%d", i)
		}
	}
	return nil
}

// Value returns the asset snapshot held inside the offer, still owned by the
// sender. This is the shape a pre-approval of the offer must match.
func (o *Offer) Value() asset.Asset {
	return asset.Asset{
		Type:   o.Type,
		Owner:  o.Sender,
		Amount: o.Amount,
	}
}
