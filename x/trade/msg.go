package trade

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x/asset"
)

const (
	pathCreate = "trade/create"
	pathCancel = "trade/cancel"
	pathReject = "trade/reject"
	pathSettle = "trade/settle"
)

var (
	_ holdings.Msg = (*CreateTradeMsg)(nil)
	_ holdings.Msg = (*CancelMsg)(nil)
	_ holdings.Msg = (*RejectMsg)(nil)
	_ holdings.Msg = (*SettleMsg)(nil)
)

// Leg describes one side of a trade: an amount of one asset type.
type Leg struct {
	Type   asset.Type    `json:"type"`
	Amount amount.Amount `json:"amount"`
}

// Validate ensures the leg respects the amount policy of its type.
func (l Leg) Validate() error {
	if err := l.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := l.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if l.Type.Fungible {
		if !l.Amount.IsPositive() {
			return errors.Wrapf(errors.ErrInvalidAmount, "amount %s", l.Amount)
		}
	} else if !l.Amount.Equals(amount.One()) {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-fungible amount %s", l.Amount)
	}
	return nil
}

// CreateTradeMsg escrows the offered leg out of the proposer's records and
// opens the trade towards the receiver. Signed by the proposer.
type CreateTradeMsg struct {
	Proposer holdings.Address `json:"proposer"`
	Receiver holdings.Address `json:"receiver"`
	Offered  Leg              `json:"offered"`
	Wanted   Leg              `json:"wanted"`
	InputIDs [][]byte         `json:"input_ids"`
}

func (m *CreateTradeMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CreateTradeMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CreateTradeMsg) Path() string                  { return pathCreate }

func (m *CreateTradeMsg) Validate() error {
	if err := m.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := m.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if err := m.Offered.Validate(); err != nil {
		return errors.Wrap(err, "offered")
	}
	if err := m.Wanted.Validate(); err != nil {
		return errors.Wrap(err, "wanted")
	}
	if len(m.InputIDs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "input ids")
	}
	return nil
}

// CancelMsg withdraws an open trade; the escrowed value returns to the
// proposer. Signed by the proposer.
type CancelMsg struct {
	TradeID []byte `json:"trade_id"`
}

func (m *CancelMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CancelMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CancelMsg) Path() string                  { return pathCancel }

func (m *CancelMsg) Validate() error {
	if len(m.TradeID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "trade id")
	}
	return nil
}

// RejectMsg declines an open trade; the escrowed value returns to the
// proposer. Signed by the receiver.
type RejectMsg struct {
	TradeID []byte `json:"trade_id"`
}

func (m *RejectMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *RejectMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (RejectMsg) Path() string                  { return pathReject }

func (m *RejectMsg) Validate() error {
	if len(m.TradeID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "trade id")
	}
	return nil
}

// SettleMsg completes the trade: the receiver's inputs fund the wanted leg
// and the escrowed leg lands in the receiver's account, atomically. Signed
// by the receiver.
type SettleMsg struct {
	TradeID  []byte   `json:"trade_id"`
	InputIDs [][]byte `json:"input_ids"`
}

func (m *SettleMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *SettleMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (SettleMsg) Path() string                  { return pathSettle }

func (m *SettleMsg) Validate() error {
	if len(m.TradeID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "trade id")
	}
	if len(m.InputIDs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "input ids")
	}
	return nil
}
