package account

import (
	"fmt"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x"
)

const (
	inviteCost       int64 = 100
	acceptInviteCost int64 = 150
	rejectInviteCost int64 = 50
	airdropCost      int64 = 200
	mergeSplitBase   int64 = 100
	mergeSplitPerRec int64 = 10
	closeCost        int64 = 100
	confirmCloseCost int64 = 200
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r holdings.Registry, auth x.Authenticator, ctrl Controller) {
	invitations := orm.NewBucket("invite")
	inviteSeq := orm.NewSequence("invite", "id")
	proposals := orm.NewBucket("acctclose")
	proposalSeq := orm.NewSequence("acctclose", "id")

	r.Handle(pathInvite, InviteHandler{auth, ctrl, invitations, inviteSeq})
	r.Handle(pathAcceptInvite, AcceptInviteHandler{auth, ctrl, invitations})
	r.Handle(pathRejectInvite, RejectInviteHandler{auth, invitations})
	r.Handle(pathAirdrop, AirdropHandler{auth, ctrl})
	r.Handle(pathMergeSplit, MergeSplitHandler{auth, ctrl})
	r.Handle(pathClose, CloseHandler{auth, ctrl, proposals, proposalSeq})
	r.Handle(pathConfirmClose, ConfirmCloseHandler{auth, ctrl, proposals})
}

// InviteHandler opens account invitations.
type InviteHandler struct {
	auth        x.Authenticator
	ctrl        Controller
	invitations orm.Bucket
	seq         orm.Sequence
}

var _ holdings.Handler = InviteHandler{}

func (h InviteHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: inviteCost}, nil
}

func (h InviteHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	exists, err := h.ctrl.Has(db, msg.Type, msg.Recipient)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrap(errors.ErrDuplicate, "account")
	}

	id, err := h.seq.NextVal(db)
	if err != nil {
		return nil, err
	}
	inv := Invitation{
		Type:         msg.Type,
		Recipient:    msg.Recipient,
		Airdroppable: msg.Airdroppable,
		Resharable:   msg.Resharable,
	}
	if err := h.invitations.Put(db, id, &inv); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: id}, nil
}

// validate enforces the invitation authority: a resharable account lets its
// owner invite, otherwise the issuer must sign. With no inviter account the
// issuer invites directly, which is also how the first account of a type
// comes to be.
func (h InviteHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*InviteMsg, error) {
	var msg InviteMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}

	controller := msg.Type.Issuer
	if len(msg.Inviter) != 0 {
		inviter, err := h.ctrl.Account(db, msg.Type, msg.Inviter)
		if err != nil {
			return nil, errors.Wrap(err, "inviter account")
		}
		if inviter.Resharable {
			controller = inviter.Owner
		}
	}
	if !h.auth.HasAddress(ctx, controller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invite")
	}
	return &msg, nil
}

// AcceptInviteHandler turns invitations into accounts.
type AcceptInviteHandler struct {
	auth        x.Authenticator
	ctrl        Controller
	invitations orm.Bucket
}

var _ holdings.Handler = AcceptInviteHandler{}

func (h AcceptInviteHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: acceptInviteCost}, nil
}

func (h AcceptInviteHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, inv, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	exists, err := h.ctrl.Has(db, inv.Type, inv.Recipient)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrap(errors.ErrDuplicate, "account")
	}

	acct := Account{
		Type:         inv.Type,
		Owner:        inv.Recipient,
		Airdroppable: inv.Airdroppable,
		Resharable:   inv.Resharable,
	}
	if err := h.ctrl.Store(db, &acct); err != nil {
		return nil, err
	}
	if err := h.invitations.Delete(db, msg.InvitationID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: acct.Key()}, nil
}

func (h AcceptInviteHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*AcceptInviteMsg, *Invitation, error) {
	var msg AcceptInviteMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	var inv Invitation
	if err := h.invitations.One(db, msg.InvitationID, &inv); err != nil {
		return nil, nil, errors.Wrap(err, "invitation")
	}
	if !h.auth.HasAddress(ctx, inv.Recipient) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "recipient")
	}
	return &msg, &inv, nil
}

// RejectInviteHandler discards invitations.
type RejectInviteHandler struct {
	auth        x.Authenticator
	invitations orm.Bucket
}

var _ holdings.Handler = RejectInviteHandler{}

func (h RejectInviteHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: rejectInviteCost}, nil
}

func (h RejectInviteHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.invitations.Delete(db, msg.InvitationID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h RejectInviteHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*RejectInviteMsg, error) {
	var msg RejectInviteMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	var inv Invitation
	if err := h.invitations.One(db, msg.InvitationID, &inv); err != nil {
		return nil, errors.Wrap(err, "invitation")
	}
	if !h.auth.HasAddress(ctx, inv.Recipient) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "recipient")
	}
	return &msg, nil
}

// AirdropHandler mints records on behalf of the issuer.
type AirdropHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = AirdropHandler{}

func (h AirdropHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: airdropCost}, nil
}

func (h AirdropHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, acct, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Issue(db, acct, msg.Amount, msg.Observers)
	if err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: id}, nil
}

func (h AirdropHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*AirdropMsg, *Account, error) {
	var msg AirdropMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Type.Issuer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "issuer")
	}
	acct, err := h.ctrl.Account(db, msg.Type, msg.Owner)
	if err != nil {
		return nil, nil, errors.Wrap(err, "account")
	}
	// the issuer can always mint into their own account
	if !acct.Airdroppable && !acct.Owner.Equals(msg.Type.Issuer) {
		return nil, nil, errors.Wrapf(ErrAirdropNotPermitted, "owner %s", msg.Owner)
	}
	return &msg, acct, nil
}

// MergeSplitHandler reshapes the owner's records.
type MergeSplitHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = MergeSplitHandler{}

func (h MergeSplitHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := mergeSplitBase + mergeSplitPerRec*int64(len(msg.InputIDs)+len(msg.Outputs))
	return &holdings.CheckResult{GasAllocated: gas}, nil
}

func (h MergeSplitHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, acct, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ids, err := h.ctrl.MergeSplit(db, acct, msg.InputIDs, msg.Outputs)
	if err != nil {
		return nil, err
	}
	var data []byte
	for _, id := range ids {
		data = append(data, id...)
	}
	res := holdings.DeliverResult{
		Data: data,
		Log:  fmt.Sprintf("%d records issued", len(ids)),
	}
	return &res, nil
}

func (h MergeSplitHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*MergeSplitMsg, *Account, error) {
	var msg MergeSplitMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner")
	}
	acct, err := h.ctrl.Account(db, msg.Type, msg.Owner)
	if err != nil {
		return nil, nil, errors.Wrap(err, "account")
	}
	return &msg, acct, nil
}

// CloseHandler records close proposals.
type CloseHandler struct {
	auth      x.Authenticator
	ctrl      Controller
	proposals orm.Bucket
	seq       orm.Sequence
}

var _ holdings.Handler = CloseHandler{}

func (h CloseHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: closeCost}, nil
}

func (h CloseHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.seq.NextVal(db)
	if err != nil {
		return nil, err
	}
	prop := CloseProposal{Type: msg.Type, Owner: msg.Owner}
	if err := h.proposals.Put(db, id, &prop); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: id}, nil
}

func (h CloseHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*CloseMsg, error) {
	var msg CloseMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner")
	}
	if _, err := h.ctrl.Account(db, msg.Type, msg.Owner); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	return &msg, nil
}

// ConfirmCloseHandler archives the remaining records and removes the
// account. The owner consented through the proposal, the issuer signs the
// confirmation.
type ConfirmCloseHandler struct {
	auth      x.Authenticator
	ctrl      Controller
	proposals orm.Bucket
}

var _ holdings.Handler = ConfirmCloseHandler{}

func (h ConfirmCloseHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: confirmCloseCost}, nil
}

func (h ConfirmCloseHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, prop, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	acct, err := h.ctrl.Account(db, prop.Type, prop.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "account")
	}
	// every supplied record must belong to the account being closed
	var none amount.Amount
	if _, err := h.ctrl.ValidateInputs(db, acct, msg.AssetIDs, none); err != nil {
		return nil, err
	}
	if _, err := h.ctrl.ConsumeInputs(db, msg.AssetIDs); err != nil {
		return nil, err
	}
	if err := h.ctrl.Remove(db, acct); err != nil {
		return nil, err
	}
	if err := h.proposals.Delete(db, msg.ProposalID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Log: fmt.Sprintf("%d records archived", len(msg.AssetIDs))}, nil
}

func (h ConfirmCloseHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*ConfirmCloseMsg, *CloseProposal, error) {
	var msg ConfirmCloseMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	var prop CloseProposal
	if err := h.proposals.One(db, msg.ProposalID, &prop); err != nil {
		return nil, nil, errors.Wrap(err, "proposal")
	}
	if !h.auth.HasAddress(ctx, prop.Type.Issuer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "issuer")
	}
	return &msg, &prop, nil
}
