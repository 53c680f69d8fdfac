package account

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x/asset"
)

const (
	pathInvite       = "account/invite"
	pathAcceptInvite = "account/accept_invite"
	pathRejectInvite = "account/reject_invite"
	pathAirdrop      = "account/airdrop"
	pathMergeSplit   = "account/merge_split"
	pathClose        = "account/close"
	pathConfirmClose = "account/confirm_close"
)

var (
	_ holdings.Msg = (*InviteMsg)(nil)
	_ holdings.Msg = (*AcceptInviteMsg)(nil)
	_ holdings.Msg = (*RejectInviteMsg)(nil)
	_ holdings.Msg = (*AirdropMsg)(nil)
	_ holdings.Msg = (*MergeSplitMsg)(nil)
	_ holdings.Msg = (*CloseMsg)(nil)
	_ holdings.Msg = (*ConfirmCloseMsg)(nil)
)

// InviteMsg proposes opening an account for the recipient. When Inviter is
// set, the invitation rides on the inviter's existing account and its
// resharable flag decides whether the inviter or the issuer must sign. When
// Inviter is empty the issuer invites directly.
type InviteMsg struct {
	Type         asset.Type       `json:"type"`
	Inviter      holdings.Address `json:"inviter,omitempty"`
	Recipient    holdings.Address `json:"recipient"`
	Airdroppable bool             `json:"airdroppable"`
	Resharable   bool             `json:"resharable"`
}

func (m *InviteMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *InviteMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (InviteMsg) Path() string                  { return pathInvite }

func (m *InviteMsg) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if len(m.Inviter) != 0 {
		if err := m.Inviter.Validate(); err != nil {
			return errors.Wrap(err, "inviter")
		}
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// AcceptInviteMsg converts an open invitation into an account. Signed by the
// invited recipient.
type AcceptInviteMsg struct {
	InvitationID []byte `json:"invitation_id"`
}

func (m *AcceptInviteMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *AcceptInviteMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (AcceptInviteMsg) Path() string                  { return pathAcceptInvite }

func (m *AcceptInviteMsg) Validate() error {
	if len(m.InvitationID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "invitation id")
	}
	return nil
}

// RejectInviteMsg discards an open invitation. Signed by the recipient.
type RejectInviteMsg struct {
	InvitationID []byte `json:"invitation_id"`
}

func (m *RejectInviteMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *RejectInviteMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (RejectInviteMsg) Path() string                  { return pathRejectInvite }

func (m *RejectInviteMsg) Validate() error {
	if len(m.InvitationID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "invitation id")
	}
	return nil
}

// AirdropMsg mints a fresh record into an existing account. Signed by the
// issuer of the asset type.
type AirdropMsg struct {
	Type      asset.Type         `json:"type"`
	Owner     holdings.Address   `json:"owner"`
	Amount    amount.Amount      `json:"amount"`
	Observers []holdings.Address `json:"observers,omitempty"`
}

func (m *AirdropMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *AirdropMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (AirdropMsg) Path() string                  { return pathAirdrop }

func (m *AirdropMsg) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "amount %s", m.Amount)
	}
	for i, obs := range m.Observers {
		if err := obs.Validate(); err != nil {
			return errors.Wrapf(err, "observer #%d", i)
		}
	}
	return nil
}

// MergeSplitMsg consumes a set of input records and reissues their total
// value as the requested output amounts, with any remainder returned as one
// extra record. Signed by the account owner.
type MergeSplitMsg struct {
	Type     asset.Type       `json:"type"`
	Owner    holdings.Address `json:"owner"`
	InputIDs [][]byte         `json:"input_ids"`
	Outputs  []amount.Amount  `json:"outputs"`
}

func (m *MergeSplitMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *MergeSplitMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (MergeSplitMsg) Path() string                  { return pathMergeSplit }

func (m *MergeSplitMsg) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(m.InputIDs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "input ids")
	}
	if len(m.Outputs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "outputs")
	}
	for i, out := range m.Outputs {
		if err := out.Validate(); err != nil {
			return errors.Wrapf(err, "output #%d", i)
		}
		if !out.IsPositive() {
			return errors.Wrapf(errors.ErrInvalidAmount, "output #%d: %s", i, out)
		}
	}
	return nil
}

// CloseMsg proposes closing the account. Signed by the account owner.
type CloseMsg struct {
	Type  asset.Type       `json:"type"`
	Owner holdings.Address `json:"owner"`
}

func (m *CloseMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *CloseMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (CloseMsg) Path() string                  { return pathClose }

func (m *CloseMsg) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return errors.Wrap(err, "type")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// ConfirmCloseMsg finalizes a close proposal: the listed records are
// consumed and the account is removed. Signed by the issuer; the owner's
// consent was captured by the proposal. The record list is supplied by the
// caller since enumeration is a client concern.
type ConfirmCloseMsg struct {
	ProposalID []byte   `json:"proposal_id"`
	AssetIDs   [][]byte `json:"asset_ids"`
}

func (m *ConfirmCloseMsg) Marshal() ([]byte, error)   { return cbor.Marshal(m) }
func (m *ConfirmCloseMsg) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, m) }
func (ConfirmCloseMsg) Path() string                  { return pathConfirmClose }

func (m *ConfirmCloseMsg) Validate() error {
	if len(m.ProposalID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "proposal id")
	}
	return nil
}
