package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/store"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
)

type genAccount struct {
	Type         asset.Type       `json:"type"`
	Owner        holdings.Address `json:"owner"`
	Airdroppable bool             `json:"airdroppable,omitempty"`
	Resharable   bool             `json:"resharable,omitempty"`
}

type genHolding struct {
	Type   asset.Type       `json:"type"`
	Owner  holdings.Address `json:"owner"`
	Amount amount.Amount    `json:"amount"`
}

func genesisOpts(t *testing.T, accounts []genAccount, funds []genHolding) holdings.Options {
	t.Helper()
	opts := holdings.Options{}
	if accounts != nil {
		raw, err := json.Marshal(accounts)
		require.NoError(t, err)
		opts["accounts"] = raw
	}
	if funds != nil {
		raw, err := json.Marshal(funds)
		require.NoError(t, err)
		opts["holdings"] = raw
	}
	return opts
}

func TestGenesisInitializer(t *testing.T) {
	f := newFixture(t)

	opts := genesisOpts(t,
		[]genAccount{
			{Type: f.gold, Owner: f.alice, Airdroppable: true},
			{Type: f.gold, Owner: f.bob},
		},
		[]genHolding{
			{Type: f.gold, Owner: f.alice, Amount: amount.New(100, 0)},
			{Type: f.gold, Owner: f.alice, Amount: amount.New(25, 0)},
		})

	require.NoError(t, account.Initializer{}.FromGenesis(opts, f.db))

	acct, err := f.ctrl.Account(f.db, f.gold, f.alice)
	require.NoError(t, err)
	assert.True(t, acct.Airdroppable)
	assert.False(t, acct.Resharable)

	bobAcct, err := f.ctrl.Account(f.db, f.gold, f.bob)
	require.NoError(t, err)
	assert.False(t, bobAcct.Airdroppable)

	ids, err := f.ledger.HoldingsOf(f.db, f.gold, f.alice)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	var total amount.Amount
	for _, id := range ids {
		rec, err := f.ledger.Get(f.db, id)
		require.NoError(t, err)
		total, err = total.Add(rec.Amount)
		require.NoError(t, err)
	}
	assert.True(t, total.Equals(amount.New(125, 0)))

	bobIDs, err := f.ledger.HoldingsOf(f.db, f.gold, f.bob)
	require.NoError(t, err)
	assert.Len(t, bobIDs, 0)
}

func TestGenesisRejectsDuplicateAccount(t *testing.T) {
	f := newFixture(t)

	opts := genesisOpts(t, []genAccount{
		{Type: f.gold, Owner: f.alice},
		{Type: f.gold, Owner: f.alice},
	}, nil)

	err := account.Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestGenesisHoldingNeedsAccount(t *testing.T) {
	f := newFixture(t)

	opts := genesisOpts(t, nil, []genHolding{
		{Type: f.gold, Owner: f.alice, Amount: amount.New(10, 0)},
	})

	err := account.Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrNotFound.Is(err))
}
