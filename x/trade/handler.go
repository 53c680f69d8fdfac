package trade

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
	"github.com/holdings-one/holdings/x/preapproval"
)

const (
	createCost int64 = 300
	cancelCost int64 = 100
	rejectCost int64 = 100
	settleCost int64 = 500
)

// tradeStore groups the buckets shared by all handlers in this package.
type tradeStore struct {
	escrows   orm.Bucket
	escrowSeq orm.Sequence
	trades    orm.Bucket
	tradeSeq  orm.Sequence
}

func newTradeStore() tradeStore {
	return tradeStore{
		escrows:   orm.NewBucket("escrow"),
		escrowSeq: orm.NewSequence("escrow", "id"),
		trades:    orm.NewBucket("trade"),
		tradeSeq:  orm.NewSequence("trade", "id"),
	}
}

func (s tradeStore) trade(db holdings.ReadOnlyKVStore, id []byte) (*Offer, error) {
	var o Offer
	if err := s.trades.One(db, id, &o); err != nil {
		return nil, errors.Wrap(err, "trade")
	}
	return &o, nil
}

func (s tradeStore) escrow(db holdings.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := s.escrows.One(db, id, &e); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &e, nil
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r holdings.Registry, auth x.Authenticator, accounts account.Controller, approvals preapproval.Controller) {
	s := newTradeStore()
	r.Handle(pathCreate, CreateTradeHandler{auth, s, accounts, approvals})
	r.Handle(pathCancel, CancelHandler{auth, s, accounts, approvals, proposerCancels})
	r.Handle(pathReject, CancelHandler{auth, s, accounts, approvals, receiverRejects})
	r.Handle(pathSettle, SettleHandler{auth, s, accounts, approvals})
}

// CreateTradeHandler escrows the offered leg and opens the trade.
type CreateTradeHandler struct {
	auth      x.Authenticator
	store     tradeStore
	accounts  account.Controller
	approvals preapproval.Controller
}

var _ holdings.Handler = CreateTradeHandler{}

func (h CreateTradeHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: createCost}, nil
}

func (h CreateTradeHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, acct, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	normID, err := h.accounts.Normalize(db, acct, msg.InputIDs, msg.Offered.Amount)
	if err != nil {
		return nil, err
	}
	consumed, err := h.accounts.ConsumeInputs(db, [][]byte{normID})
	if err != nil {
		return nil, err
	}

	escrowID, err := h.store.escrowSeq.NextVal(db)
	if err != nil {
		return nil, err
	}
	escrow := Escrow{Asset: *consumed[0], Receiver: msg.Receiver}
	if err := h.store.escrows.Put(db, escrowID, &escrow); err != nil {
		return nil, err
	}

	// the proposer's consent to receive the wanted leg, captured now so
	// the receiver can settle alone later
	paID, err := h.approvals.Grant(db, &preapproval.PreApproval{
		Asset: asset.Asset{
			Type:   msg.Wanted.Type,
			Owner:  msg.Receiver,
			Amount: msg.Wanted.Amount,
		},
		NewOwner: msg.Proposer,
	})
	if err != nil {
		return nil, errors.Wrap(err, "wanted leg")
	}

	tradeID, err := h.store.tradeSeq.NextVal(db)
	if err != nil {
		return nil, err
	}
	offer := Offer{
		Proposer:      msg.Proposer,
		Receiver:      msg.Receiver,
		EscrowID:      escrowID,
		PreApprovalID: paID,
	}
	if err := h.store.trades.Put(db, tradeID, &offer); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: tradeID}, nil
}

func (h CreateTradeHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*CreateTradeMsg, *account.Account, error) {
	var msg CreateTradeMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Proposer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "proposer")
	}
	acct, err := h.accounts.Account(db, msg.Offered.Type, msg.Proposer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "proposer account")
	}
	return &msg, acct, nil
}

// cancelMode selects who may resolve the trade without settling.
type cancelMode int

const (
	proposerCancels cancelMode = iota
	receiverRejects
)

// CancelHandler returns the escrowed value to the proposer. It serves both
// the proposer's cancel and the receiver's reject, differing only in who
// must sign.
type CancelHandler struct {
	auth      x.Authenticator
	store     tradeStore
	accounts  account.Controller
	approvals preapproval.Controller
	mode      cancelMode
}

var _ holdings.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	cost := cancelCost
	if h.mode == receiverRejects {
		cost = rejectCost
	}
	return &holdings.CheckResult{GasAllocated: cost}, nil
}

func (h CancelHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	tradeID, trade, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	escrow, err := h.store.escrow(db, trade.EscrowID)
	if err != nil {
		return nil, err
	}
	acct, err := h.accounts.Account(db, escrow.Asset.Type, trade.Proposer)
	if err != nil {
		return nil, errors.Wrap(err, "proposer account")
	}
	if _, err := h.accounts.Issue(db, acct, escrow.Asset.Amount, escrow.Asset.Observers); err != nil {
		return nil, err
	}
	if err := h.approvals.Drop(db, trade.PreApprovalID); err != nil {
		return nil, err
	}
	if err := h.store.escrows.Delete(db, trade.EscrowID); err != nil {
		return nil, err
	}
	if err := h.store.trades.Delete(db, tradeID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{}, nil
}

func (h CancelHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) ([]byte, *Offer, error) {
	var tradeID []byte
	switch h.mode {
	case proposerCancels:
		var msg CancelMsg
		if err := holdings.LoadMsg(tx, &msg); err != nil {
			return nil, nil, err
		}
		tradeID = msg.TradeID
	case receiverRejects:
		var msg RejectMsg
		if err := holdings.LoadMsg(tx, &msg); err != nil {
			return nil, nil, err
		}
		tradeID = msg.TradeID
	}

	trade, err := h.store.trade(db, tradeID)
	if err != nil {
		return nil, nil, err
	}
	controller := trade.Proposer
	if h.mode == receiverRejects {
		controller = trade.Receiver
	}
	if !h.auth.HasAddress(ctx, controller) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "trade")
	}
	return tradeID, trade, nil
}

// SettleHandler completes both legs of the trade.
type SettleHandler struct {
	auth      x.Authenticator
	store     tradeStore
	accounts  account.Controller
	approvals preapproval.Controller
}

var _ holdings.Handler = SettleHandler{}

func (h SettleHandler) Check(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &holdings.CheckResult{GasAllocated: settleCost}, nil
}

func (h SettleHandler) Deliver(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	msg, trade, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	pa, err := h.approvals.Get(db, trade.PreApprovalID)
	if err != nil {
		return nil, errors.Wrap(err, "pre-approval")
	}
	escrow, err := h.store.escrow(db, trade.EscrowID)
	if err != nil {
		return nil, err
	}

	// the receiver's consent to take the offered leg, granted and redeemed
	// within this same delivery
	inlineID, err := h.approvals.Grant(db, &preapproval.PreApproval{
		Asset:    escrow.Asset,
		NewOwner: trade.Receiver,
	})
	if err != nil {
		return nil, errors.Wrap(err, "offered leg")
	}

	payingAcct, err := h.accounts.Account(db, pa.Asset.Type, trade.Receiver)
	if err != nil {
		return nil, errors.Wrap(err, "paying account")
	}

	// shape the receiver's inputs into exactly the wanted leg
	normID, err := h.accounts.Normalize(db, payingAcct, msg.InputIDs, pa.Asset.Amount)
	if err != nil {
		return nil, err
	}
	consumed, err := h.accounts.ConsumeInputs(db, [][]byte{normID})
	if err != nil {
		return nil, err
	}
	if _, err := h.approvals.Redeem(db, trade.PreApprovalID, consumed[0]); err != nil {
		return nil, err
	}

	// a missing proposer account aborts here; the surrounding savepoint
	// takes the consumed inputs back with it
	proposerAcct, err := h.accounts.Account(db, pa.Asset.Type, trade.Proposer)
	if err != nil {
		return nil, errors.Wrap(err, "proposer account")
	}
	toProposer, err := h.accounts.Issue(db, proposerAcct, pa.Asset.Amount, nil)
	if err != nil {
		return nil, err
	}

	if _, err := h.approvals.Redeem(db, inlineID, &escrow.Asset); err != nil {
		return nil, err
	}
	receiverAcct, err := h.accounts.Account(db, escrow.Asset.Type, trade.Receiver)
	if err != nil {
		return nil, errors.Wrap(err, "receiver account")
	}
	toReceiver, err := h.accounts.Issue(db, receiverAcct, escrow.Asset.Amount, nil)
	if err != nil {
		return nil, err
	}

	if err := h.store.escrows.Delete(db, trade.EscrowID); err != nil {
		return nil, err
	}
	if err := h.store.trades.Delete(db, msg.TradeID); err != nil {
		return nil, err
	}
	return &holdings.DeliverResult{Data: append(toProposer, toReceiver...)}, nil
}

func (h SettleHandler) validate(ctx holdings.Context, db holdings.KVStore, tx holdings.Tx) (*SettleMsg, *Offer, error) {
	var msg SettleMsg
	if err := holdings.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	trade, err := h.store.trade(db, msg.TradeID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, trade.Receiver) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "receiver")
	}
	return &msg, trade, nil
}
