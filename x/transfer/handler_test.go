package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/app"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/holdingstest"
	"github.com/holdings-one/holdings/store"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
	"github.com/holdings-one/holdings/x/preapproval"
	"github.com/holdings-one/holdings/x/transfer"
)

type fixture struct {
	db        holdings.CacheableKVStore
	ledger    asset.Ledger
	accounts  account.Controller
	approvals preapproval.Controller
	issuer    holdings.Condition
	alice     holdings.Condition
	bob       holdings.Condition
	gold      asset.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		ledger: asset.NewLedger(),
		issuer: holdingstest.NewCondition(),
		alice:  holdingstest.NewCondition(),
		bob:    holdingstest.NewCondition(),
	}
	f.accounts = account.NewController(f.ledger)
	f.approvals = preapproval.NewController(f.accounts)
	f.gold = asset.Type{Issuer: f.issuer.Address(), Symbol: "GLD", Fungible: true}
	return f
}

// router wires the transfer and pre-approval handlers for the given signers.
func (f *fixture) router(signers ...holdings.Condition) *app.Router {
	r := app.NewRouter()
	auth := &holdingstest.Auth{Signers: signers}
	transfer.RegisterRoutes(r, auth, f.accounts, f.approvals)
	preapproval.RegisterRoutes(r, auth, f.approvals)
	return r
}

func (f *fixture) openAccount(t *testing.T, owner holdings.Address) *account.Account {
	t.Helper()
	acct := &account.Account{Type: f.gold, Owner: owner}
	require.NoError(t, f.accounts.Store(f.db, acct))
	return acct
}

func (f *fixture) issue(t *testing.T, acct *account.Account, whole int64, observers ...holdings.Address) []byte {
	t.Helper()
	id, err := f.accounts.Issue(f.db, acct, amount.New(whole, 0), observers)
	require.NoError(t, err)
	return id
}

func (f *fixture) totalOf(t *testing.T, owner holdings.Address) amount.Amount {
	t.Helper()
	ids, err := f.ledger.HoldingsOf(f.db, f.gold, owner)
	require.NoError(t, err)
	var total amount.Amount
	for _, id := range ids {
		rec, err := f.ledger.Get(f.db, id)
		require.NoError(t, err)
		total, err = total.Add(rec.Amount)
		require.NoError(t, err)
	}
	return total
}

func deliver(t *testing.T, r *app.Router, db holdings.KVStore, msg holdings.Msg) *holdings.DeliverResult {
	t.Helper()
	res, err := r.Deliver(context.Background(), db, &holdingstest.Tx{Msg: msg})
	require.NoError(t, err)
	return res
}

func TestCreateTransfersParksValue(t *testing.T) {
	f := newFixture(t)
	carol := holdingstest.NewCondition()
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 60)
	b := f.issue(t, acct, 40)

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a, b},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
			{Amount: amount.New(50, 0), Recipient: carol.Address()},
		},
	})
	// one offer id per destination
	assert.Len(t, res.Data, 2*8)

	// only the 20 remainder stays with the sender, the rest is in flight
	assert.Equal(t, amount.New(20, 0), f.totalOf(t, f.alice.Address()))
	assert.Equal(t, amount.New(0, 0), f.totalOf(t, f.bob.Address()))

	_, err := f.ledger.Get(f.db, a)
	assert.True(t, asset.ErrConsumed.Is(err))
}

func TestCreateTransfersAuth(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 60)

	_, err := f.router(f.bob).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.CreateTransfersMsg{
			Type:     f.gold,
			Sender:   f.alice.Address(),
			InputIDs: [][]byte{a},
			Destinations: []transfer.Destination{
				{Amount: amount.New(60, 0), Recipient: f.bob.Address()},
			},
		}})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	// nothing was consumed
	_, err = f.ledger.Get(f.db, a)
	assert.NoError(t, err)
}

func TestCreateTransfersNonFungible(t *testing.T) {
	f := newFixture(t)
	deed := asset.Type{Issuer: f.issuer.Address(), Symbol: "DEED", Fungible: false}
	acct := &account.Account{Type: deed, Owner: f.alice.Address()}
	require.NoError(t, f.accounts.Store(f.db, acct))
	a := f.issue(t, acct, 1)
	b := f.issue(t, acct, 1)

	// indivisible units move one record at a time
	_, err := f.router(f.alice).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.CreateTransfersMsg{
			Type:     deed,
			Sender:   f.alice.Address(),
			InputIDs: [][]byte{a, b},
			Destinations: []transfer.Destination{
				{Amount: amount.One(), Recipient: f.bob.Address()},
				{Amount: amount.One(), Recipient: f.bob.Address()},
			},
		}})
	assert.True(t, account.ErrSingleInput.Is(err))

	_, err = f.router(f.alice).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.CreateTransfersMsg{
			Type:     deed,
			Sender:   f.alice.Address(),
			InputIDs: [][]byte{a},
			Destinations: []transfer.Destination{
				{Amount: amount.New(2, 0), Recipient: f.bob.Address()},
			},
		}})
	assert.True(t, errors.ErrInvalidAmount.Is(err))

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     deed,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.One(), Recipient: f.bob.Address()},
		},
	})
	require.NoError(t, f.accounts.Store(f.db, &account.Account{Type: deed, Owner: f.bob.Address()}))
	deliver(t, f.router(f.bob), f.db, &transfer.DepositMsg{OfferID: res.Data})

	ids, err := f.ledger.HoldingsOf(f.db, deed, f.bob.Address())
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestDepositNeedsRecipientAccount(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 30)

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
		},
	})
	offerID := res.Data

	// no account for bob yet
	_, err := f.router(f.bob).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.DepositMsg{OfferID: offerID}})
	assert.True(t, errors.ErrNotFound.Is(err))

	f.openAccount(t, f.bob.Address())
	res = deliver(t, f.router(f.bob), f.db, &transfer.DepositMsg{OfferID: offerID})

	rec, err := f.ledger.Get(f.db, res.Data)
	require.NoError(t, err)
	assert.Equal(t, amount.New(30, 0), rec.Amount)
	assert.True(t, rec.Owner.Equals(f.bob.Address()))

	// the offer is single use
	_, err = f.router(f.bob).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.DepositMsg{OfferID: offerID}})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCancelRestoresObservers(t *testing.T) {
	f := newFixture(t)
	watcher := holdingstest.NewCondition().Address()
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 30, watcher)

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
		},
	})
	offerID := res.Data

	// only the sender may cancel
	_, err := f.router(f.bob).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.CancelMsg{OfferID: offerID}})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	deliver(t, f.router(f.alice), f.db, &transfer.CancelMsg{OfferID: offerID})

	ids, err := f.ledger.HoldingsOf(f.db, f.gold, f.alice.Address())
	require.NoError(t, err)
	require.Len(t, ids, 1)
	rec, err := f.ledger.Get(f.db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, amount.New(30, 0), rec.Amount)
	require.Len(t, rec.Observers, 1)
	assert.True(t, rec.Observers[0].Equals(watcher))
}

func TestRejectReturnsValue(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 30)
	f.openAccount(t, f.bob.Address())

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
		},
	})

	// only the recipient may reject
	_, err := f.router(f.alice).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.RejectMsg{OfferID: res.Data}})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	deliver(t, f.router(f.bob), f.db, &transfer.RejectMsg{OfferID: res.Data})
	assert.Equal(t, amount.New(30, 0), f.totalOf(t, f.alice.Address()))
	assert.Equal(t, amount.New(0, 0), f.totalOf(t, f.bob.Address()))
}

func TestDepositPreapproved(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 30)
	f.openAccount(t, f.bob.Address())

	// bob pre-approves receiving exactly 30 gold from alice
	grant := deliver(t, f.router(f.bob), f.db, &preapproval.GrantMsg{
		Asset: asset.Asset{
			Type:   f.gold,
			Owner:  f.alice.Address(),
			Amount: amount.New(30, 0),
		},
		NewOwner: f.bob.Address(),
	})

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
		},
	})

	// the sender alone completes the deposit
	deliver(t, f.router(f.alice), f.db, &transfer.DepositPreapprovedMsg{
		OfferID:       res.Data,
		PreApprovalID: grant.Data,
	})
	assert.Equal(t, amount.New(30, 0), f.totalOf(t, f.bob.Address()))

	// the pre-approval was consumed
	_, err := f.approvals.Get(f.db, grant.Data)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestDepositPreapprovedMismatch(t *testing.T) {
	f := newFixture(t)
	carol := holdingstest.NewCondition()
	acct := f.openAccount(t, f.alice.Address())
	a := f.issue(t, acct, 60)
	f.openAccount(t, f.bob.Address())
	f.openAccount(t, carol.Address())

	// approved amount differs from what the offer carries
	wrongAmount := deliver(t, f.router(f.bob), f.db, &preapproval.GrantMsg{
		Asset: asset.Asset{
			Type:   f.gold,
			Owner:  f.alice.Address(),
			Amount: amount.New(25, 0),
		},
		NewOwner: f.bob.Address(),
	})
	// approval granted by somebody who is not the offer recipient
	wrongGrantor := deliver(t, f.router(carol), f.db, &preapproval.GrantMsg{
		Asset: asset.Asset{
			Type:   f.gold,
			Owner:  f.alice.Address(),
			Amount: amount.New(30, 0),
		},
		NewOwner: carol.Address(),
	})

	res := deliver(t, f.router(f.alice), f.db, &transfer.CreateTransfersMsg{
		Type:     f.gold,
		Sender:   f.alice.Address(),
		InputIDs: [][]byte{a},
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: f.bob.Address()},
		},
	})
	offerID := res.Data

	_, err := f.router(f.alice).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.DepositPreapprovedMsg{
			OfferID:       offerID,
			PreApprovalID: wrongAmount.Data,
		}})
	assert.True(t, preapproval.ErrAssetMismatch.Is(err))

	_, err = f.router(f.alice).Deliver(context.Background(), f.db,
		&holdingstest.Tx{Msg: &transfer.DepositPreapprovedMsg{
			OfferID:       offerID,
			PreApprovalID: wrongGrantor.Data,
		}})
	assert.True(t, transfer.ErrRecipientMismatch.Is(err))

	// the offer is still open
	assert.Equal(t, amount.New(0, 0), f.totalOf(t, f.bob.Address()))
}
