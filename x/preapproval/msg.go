package preapproval

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x/asset"
)

const (
	pathGrant  = "preapproval/grant"
	pathCancel = "preapproval/cancel"
	pathReject = "preapproval/reject"
)

var (
	_ holdings.Msg = (*GrantMsg)(nil)
	_ holdings.Msg = (*CancelMsg)(nil)
	_ holdings.Msg = (*RejectMsg)(nil)
)

// GrantMsg opens a pre-approval. Signed by the new owner.
type GrantMsg struct {
	Asset    asset.Asset      `json:"asset"`
	NewOwner holdings.Address `json:"new_owner"`
}

func (m *GrantMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *GrantMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (GrantMsg) Path() string                  { return pathGrant }

func (m *GrantMsg) Validate() error {
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := m.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return nil
}

// CancelMsg withdraws a pre-approval. Signed by the grantor.
type CancelMsg struct {
	PreApprovalID []byte `json:"pre_approval_id"`
}

func (m *CancelMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CancelMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CancelMsg) Path() string                  { return pathCancel }

func (m *CancelMsg) Validate() error {
	if len(m.PreApprovalID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pre-approval id")
	}
	return nil
}

// RejectMsg declines a pre-approval addressed at the signer as the expected
// payer. Signed by the owner of the approved record.
type RejectMsg struct {
	PreApprovalID []byte `json:"pre_approval_id"`
}

func (m *RejectMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *RejectMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (RejectMsg) Path() string                  { return pathReject }

func (m *RejectMsg) Validate() error {
	if len(m.PreApprovalID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pre-approval id")
	}
	return nil
}
