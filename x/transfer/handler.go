package transfer

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/preapproval"
)

const (
	createBase    int64 = 150
	createPerDest int64 = 50
	cancelCost    int64 = 100
	rejectCost    int64 = 100
	depositCost   int64 = 150
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r holdings.Registry, auth x.Authenticator, accounts account.Controller, approvals preapproval.Controller) {
	ctrl := NewController(accounts)
	r.Handle(pathCreate, CreateTransfersHandler{auth, ctrl, accounts})
	r.Handle(pathCancel, CancelHandler{auth, ctrl})
	r.Handle(pathReject, RejectHandler{auth, ctrl})
	r.Handle(pathDeposit, DepositHandler{auth, ctrl})
	r.Handle(pathDepositPreapproved, DepositPreapprovedHandler{auth, ctrl, approvals})
}

// CreateTransfersHandler opens offers out of the sender's records.
type CreateTransfersHandler struct {
	auth     x.Authenticator
	ctrl     Controller
	accounts account.Controller
}

var _ holdings.Handler = CreateTransfersHandler{}

func (h CreateTransfersHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := createBase + createPerDest*int64(len(msg.Destinations))
	return &holdings.CheckResult{GasAllocated: gas}, nil
}

func (h CreateTransfersHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, acct, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ids, err := h.ctrl.Open(db, acct, msg.InputIDs, msg.Destinations)
	if err != nil {
		return nil, err
	}
	var data []byte
	for _, id := range ids {
		data = append(data, id...)
	}
	return &holdings.DeliverResult{Data: data}, nil
}

func (h CreateTransfersHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*CreateTransfersMsg, *account.Account, error) {
	var msg CreateTransfersMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "sender")
	}
	acct, err := h.accounts.Account(db, msg.Type, msg.Sender)
	if err != nil {
		return nil, nil, errors.Wrap(err, "sender account")
	}
	return &msg, acct, nil
}

// CancelHandler lets the sender take an open offer back.
type CancelHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Withdraw(db, msg.OfferID, offer); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h CancelHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*CancelMsg, *Offer, error) {
	var msg CancelMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	offer, err := h.ctrl.Get(db, msg.OfferID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if !h.auth.HasAddress(ctx, offer.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "sender")
	}
	return &msg, offer, nil
}

// RejectHandler lets the recipient decline an open offer.
type RejectHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = RejectHandler{}

func (h RejectHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: rejectCost}, nil
}

func (h RejectHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Withdraw(db, msg.OfferID, offer); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h RejectHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*RejectMsg, *Offer, error) {
	var msg RejectMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	offer, err := h.ctrl.Get(db, msg.OfferID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if !h.auth.HasAddress(ctx, offer.Recipient) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "recipient")
	}
	return &msg, offer, nil
}

// DepositHandler lets the recipient accept an open offer into their account.
type DepositHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	recID, err := h.ctrl.Deposit(db, msg.OfferID, offer)
	if err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: recID}, nil
}

func (h DepositHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*DepositMsg, *Offer, error) {
	var msg DepositMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	offer, err := h.ctrl.Get(db, msg.OfferID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if !h.auth.HasAddress(ctx, offer.Recipient) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "recipient")
	}
	return &msg, offer, nil
}

// DepositPreapprovedHandler lets the sender push an open offer straight into
// the recipient's account, the recipient's consent being a standing
// pre-approval of exactly the offered value.
type DepositPreapprovedHandler struct {
	auth      x.Authenticator
	ctrl      Controller
	approvals preapproval.Controller
}

var _ holdings.Handler = DepositPreapprovedHandler{}

func (h DepositPreapprovedHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositPreapprovedHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	value := offer.Value()
	if _, err := h.approvals.Redeem(db, msg.PreApprovalID, &value); err != nil {
		return nil, err
	}
	recID, err := h.ctrl.Deposit(db, msg.OfferID, offer)
	if err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: recID}, nil
}

func (h DepositPreapprovedHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*DepositPreapprovedMsg, *Offer, error) {
	var msg DepositPreapprovedMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	offer, err := h.ctrl.Get(db, msg.OfferID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if !h.auth.HasAddress(ctx, offer.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "sender")
	}
	pa, err := h.approvals.Get(db, msg.PreApprovalID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pre-approval")
	}
	if !pa.NewOwner.Equals(offer.Recipient) {
		return nil, nil, errors.Wrapf(ErrRecipientMismatch, "approved for %s", pa.NewOwner)
	}
	return &msg, offer, nil
}
