package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/holdingstest"
	"github.com/holdings-one/holdings/store"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
)

type fixture struct {
	db     holdings.CacheableKVStore
	ledger asset.Ledger
	ctrl   account.Controller
	issuer holdings.Address
	alice  holdings.Address
	bob    holdings.Address
	gold   asset.Type
	deed   asset.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		ledger: asset.NewLedger(),
		issuer: holdingstest.NewCondition().Address(),
		alice:  holdingstest.NewCondition().Address(),
		bob:    holdingstest.NewCondition().Address(),
	}
	f.ctrl = account.NewController(f.ledger)
	f.gold = asset.Type{Issuer: f.issuer, Symbol: "GLD", Fungible: true}
	f.deed = asset.Type{Issuer: f.issuer, Symbol: "DEED", Fungible: false}
	return f
}

func (f *fixture) openAccount(t *testing.T, typ asset.Type, owner holdings.Address) *account.Account {
	t.Helper()
	acct := &account.Account{Type: typ, Owner: owner}
	require.NoError(t, f.ctrl.Store(f.db, acct))
	return acct
}

func (f *fixture) issue(t *testing.T, acct *account.Account, whole int64) []byte {
	t.Helper()
	id, err := f.ctrl.Issue(f.db, acct, amount.New(whole, 0), nil)
	require.NoError(t, err)
	return id
}

func TestValidateInputs(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.gold, f.alice)
	bobAcct := f.openAccount(t, f.gold, f.bob)
	ironAcct := f.openAccount(t, asset.Type{Issuer: f.issuer, Symbol: "IRN", Fungible: true}, f.alice)

	a := f.issue(t, acct, 60)
	b := f.issue(t, acct, 40)
	foreign := f.issue(t, bobAcct, 10)
	iron, err := f.ctrl.Issue(f.db, ironAcct, amount.New(5, 0), nil)
	require.NoError(t, err)
	spent := f.issue(t, acct, 1)
	_, err = f.ledger.Consume(f.db, spent)
	require.NoError(t, err)

	cases := map[string]struct {
		ids      [][]byte
		required amount.Amount
		wantErr  *errors.Error
		want     amount.Amount
	}{
		"covers requirement": {
			ids:      [][]byte{a, b},
			required: amount.New(100, 0),
			want:     amount.New(100, 0),
		},
		"above requirement": {
			ids:      [][]byte{a},
			required: amount.New(50, 0),
			want:     amount.New(60, 0),
		},
		"insufficient": {
			ids:      [][]byte{b},
			required: amount.New(50, 0),
			wantErr:  errors.ErrInsufficientAmount,
		},
		"duplicate id": {
			ids:      [][]byte{a, a},
			required: amount.New(100, 0),
			wantErr:  account.ErrDuplicateInput,
		},
		"wrong owner": {
			ids:      [][]byte{a, foreign},
			required: amount.New(60, 0),
			wantErr:  account.ErrOwnerMismatch,
		},
		"wrong type": {
			ids:      [][]byte{a, iron},
			required: amount.New(60, 0),
			wantErr:  account.ErrTypeMismatch,
		},
		"consumed input": {
			ids:      [][]byte{a, spent},
			required: amount.New(60, 0),
			wantErr:  asset.ErrConsumed,
		},
		"unknown input": {
			ids:      [][]byte{a, holdingstest.SequenceID(9999)},
			required: amount.New(60, 0),
			wantErr:  errors.ErrNotFound,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			total, err := f.ctrl.ValidateInputs(f.db, acct, tc.ids, tc.required)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, total)
			}
		})
	}
}

func TestMergeSplitConservesValue(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.gold, f.alice)
	a := f.issue(t, acct, 60)
	b := f.issue(t, acct, 40)

	// 60 + 40 in, 70 + 25 requested, 5 back as remainder
	ids, err := f.ctrl.MergeSplit(f.db, acct, [][]byte{a, b},
		[]amount.Amount{amount.New(70, 0), amount.New(25, 0)})
	require.NoError(t, err)
	require.Len(t, ids, 3)

	want := []amount.Amount{amount.New(70, 0), amount.New(25, 0), amount.New(5, 0)}
	for i, id := range ids {
		rec, err := f.ledger.Get(f.db, id)
		require.NoError(t, err)
		assert.Equal(t, want[i], rec.Amount, "record #%d", i)
	}

	// inputs are gone for good
	_, err = f.ledger.Get(f.db, a)
	assert.True(t, asset.ErrConsumed.Is(err))
	_, err = f.ledger.Get(f.db, b)
	assert.True(t, asset.ErrConsumed.Is(err))
}

func TestMergeSplitExactFit(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.gold, f.alice)
	a := f.issue(t, acct, 60)
	b := f.issue(t, acct, 40)

	// no remainder record when the outputs consume the inputs exactly
	ids, err := f.ctrl.MergeSplit(f.db, acct, [][]byte{a, b},
		[]amount.Amount{amount.New(100, 0)})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	rec, err := f.ledger.Get(f.db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, amount.New(100, 0), rec.Amount)
}

func TestMergeSplitRejectsNonFungible(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.deed, f.alice)
	id, err := f.ctrl.Issue(f.db, acct, amount.One(), nil)
	require.NoError(t, err)

	_, err = f.ctrl.MergeSplit(f.db, acct, [][]byte{id},
		[]amount.Amount{amount.One()})
	assert.True(t, account.ErrNonFungible.Is(err))

	// the input must still be live
	_, err = f.ledger.Get(f.db, id)
	assert.NoError(t, err)
}

func TestNormalizeFungible(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.gold, f.alice)
	a := f.issue(t, acct, 60)
	b := f.issue(t, acct, 40)

	id, err := f.ctrl.Normalize(f.db, acct, [][]byte{a, b}, amount.New(70, 0))
	require.NoError(t, err)

	rec, err := f.ledger.Get(f.db, id)
	require.NoError(t, err)
	assert.Equal(t, amount.New(70, 0), rec.Amount)

	// the 30 change stays with the owner
	ids, err := f.ledger.HoldingsOf(f.db, f.gold, f.alice)
	require.NoError(t, err)
	var total amount.Amount
	for _, id := range ids {
		rec, err := f.ledger.Get(f.db, id)
		require.NoError(t, err)
		total, err = total.Add(rec.Amount)
		require.NoError(t, err)
	}
	assert.Equal(t, amount.New(100, 0), total)
}

func TestNormalizeNonFungible(t *testing.T) {
	f := newFixture(t)
	acct := f.openAccount(t, f.deed, f.alice)
	id, err := f.ctrl.Issue(f.db, acct, amount.One(), nil)
	require.NoError(t, err)
	second, err := f.ctrl.Issue(f.db, acct, amount.One(), nil)
	require.NoError(t, err)

	got, err := f.ctrl.Normalize(f.db, acct, [][]byte{id}, amount.One())
	require.NoError(t, err)
	// the record is passed through untouched, not reissued
	assert.Equal(t, id, got)
	_, err = f.ledger.Get(f.db, id)
	assert.NoError(t, err)

	_, err = f.ctrl.Normalize(f.db, acct, [][]byte{id, second}, amount.One())
	assert.True(t, account.ErrSingleInput.Is(err))
}
