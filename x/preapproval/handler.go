package preapproval

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x"
)

const (
	grantCost  int64 = 100
	cancelCost int64 = 50
	rejectCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r holdings.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathGrant, GrantHandler{auth, ctrl})
	r.Handle(pathCancel, CancelHandler{auth, ctrl})
	r.Handle(pathReject, RejectHandler{auth, ctrl})
}

// GrantHandler opens pre-approvals.
type GrantHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = GrantHandler{}

func (h GrantHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: grantCost}, nil
}

func (h GrantHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Grant(db, &PreApproval{Asset: msg.Asset, NewOwner: msg.NewOwner})
	if err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: id}, nil
}

func (h GrantHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*GrantMsg, error) {
	var msg GrantMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.NewOwner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "new owner")
	}
	return &msg, nil
}

// CancelHandler lets the grantor withdraw.
type CancelHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Drop(db, msg.PreApprovalID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h CancelHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*CancelMsg, error) {
	var msg CancelMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	pa, err := h.ctrl.Get(db, msg.PreApprovalID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, pa.NewOwner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "grantor")
	}
	return &msg, nil
}

// RejectHandler lets the expected payer decline.
type RejectHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ holdings.Handler = RejectHandler{}

func (h RejectHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: rejectCost}, nil
}

func (h RejectHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Drop(db, msg.PreApprovalID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h RejectHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*RejectMsg, error) {
	var msg RejectMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	pa, err := h.ctrl.Get(db, msg.PreApprovalID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, pa.Asset.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer")
	}
	return &msg, nil
}
