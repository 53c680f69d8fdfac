package transfer

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x/asset"
)

const (
	pathCreate             = "transfer/create"
	pathCancel             = "transfer/cancel"
	pathReject             = "transfer/reject"
	pathDeposit            = "transfer/deposit"
	pathDepositPreapproved = "transfer/deposit_preapproved"
)

var (
	_ holdings.Msg = (*CreateTransfersMsg)(nil)
	_ holdings.Msg = (*CancelMsg)(nil)
	_ holdings.Msg = (*RejectMsg)(nil)
	_ holdings.Msg = (*DepositMsg)(nil)
	_ holdings.Msg = (*DepositPreapprovedMsg)(nil)
)

// Destination is one leg of a transfer: an amount addressed to a recipient.
type Destination struct {
	Amount    amount.Amount    `json:"amount"`
	Recipient holdings.Address `json:"recipient"`
}

// CreateTransfersMsg consumes the sender's input records and opens one offer
// per destination, reissuing any remainder to the sender. Signed by the
// sender.
type CreateTransfersMsg struct {
	Type         asset.Type       `json:"type"`
	Sender       holdings.Address `json:"sender"`
	InputIDs     [][]byte         `json:"input_ids"`
	Destinations []Destination    `json:"destinations"`
}

func (m *CreateTransfersMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CreateTransfersMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CreateTransfersMsg) Path() string                  { return pathCreate }

func (m *CreateTransfersMsg) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := m.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if len(m.InputIDs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "input ids")
	}
	if len(m.Destinations) == 0 {
		return errors.Wrap(errors.ErrEmpty, "destinations")
	}
	for i, dst := range m.Destinations {
		if err := dst.Recipient.Validate(); err != nil {
			return errors.Wrapf(err, "destination #%d recipient", i)
		}
		if err := dst.Amount.Validate(); err != nil {
			return errors.Wrapf(err, "destination #%d amount", i)
		}
		if !dst.Amount.IsPositive() {
			return errors.Wrapf(errors.ErrInvalidAmount, "destination #%d: %s", i, dst.Amount)
		}
	}
	return nil
}

// CancelMsg withdraws an open offer; the value returns to the sender.
// Signed by the sender.
type CancelMsg struct {
	OfferID []byte `json:"offer_id"`
}

func (m *CancelMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CancelMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CancelMsg) Path() string                  { return pathCancel }

func (m *CancelMsg) Validate() error {
	if len(m.OfferID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "offer id")
	}
	return nil
}

// RejectMsg declines an open offer; the value returns to the sender. Signed
// by the recipient.
type RejectMsg struct {
	OfferID []byte `json:"offer_id"`
}

func (m *RejectMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *RejectMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (RejectMsg) Path() string                  { return pathReject }

func (m *RejectMsg) Validate() error {
	if len(m.OfferID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "offer id")
	}
	return nil
}

// DepositMsg accepts an open offer into the recipient's account. Signed by
// the recipient.
type DepositMsg struct {
	OfferID []byte `json:"offer_id"`
}

func (m *DepositMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (DepositMsg) Path() string                  { return pathDeposit }

func (m *DepositMsg) Validate() error {
	if len(m.OfferID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "offer id")
	}
	return nil
}

// DepositPreapprovedMsg accepts an open offer into the recipient's account
// on the strength of a pre-approval the recipient granted earlier. Signed by
// the sender; the recipient's consent is the pre-approval itself.
type DepositPreapprovedMsg struct {
	OfferID       []byte `json:"offer_id"`
	PreApprovalID []byte `json:"pre_approval_id"`
}

func (m *DepositPreapprovedMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *DepositPreapprovedMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (DepositPreapprovedMsg) Path() string                  { return pathDepositPreapproved }

func (m *DepositPreapprovedMsg) Validate() error {
	if len(m.OfferID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "offer id")
	}
	if len(m.PreApprovalID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pre-approval id")
	}
	return nil
}
