package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/holdingstest"
	"github.com/holdings-one/holdings/store"
	"github.com/holdings-one/holdings/x/asset"
)

func TestCreateEnforcesAmountPolicy(t *testing.T) {
	issuer := holdingstest.NewCondition().Address()
	owner := holdingstest.NewCondition().Address()
	fungible := asset.Type{Issuer: issuer, Symbol: "GLD", Fungible: true}
	nft := asset.Type{Issuer: issuer, Symbol: "DEED", Fungible: false}

	cases := map[string]struct {
		asset   asset.Asset
		wantErr *errors.Error
	}{
		"fungible positive": {
			asset: asset.Asset{Type: fungible, Owner: owner, Amount: amount.New(10, 0)},
		},
		"fungible zero": {
			asset:   asset.Asset{Type: fungible, Owner: owner, Amount: amount.New(0, 0)},
			wantErr: errors.ErrInvalidAmount,
		},
		"fungible negative": {
			asset:   asset.Asset{Type: fungible, Owner: owner, Amount: amount.New(-1, 0)},
			wantErr: errors.ErrInvalidAmount,
		},
		"non-fungible one": {
			asset: asset.Asset{Type: nft, Owner: owner, Amount: amount.One()},
		},
		"non-fungible two": {
			asset:   asset.Asset{Type: nft, Owner: owner, Amount: amount.New(2, 0)},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ledger := asset.NewLedger()
			a := tc.asset
			id, err := ledger.Create(db, &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.NotNil(t, id)
			}
		})
	}
}

func TestConsumeTombstones(t *testing.T) {
	db := store.MemStore()
	ledger := asset.NewLedger()
	issuer := holdingstest.NewCondition().Address()
	owner := holdingstest.NewCondition().Address()
	typ := asset.Type{Issuer: issuer, Symbol: "GLD", Fungible: true}

	id, err := ledger.Create(db, &asset.Asset{Type: typ, Owner: owner, Amount: amount.New(5, 0)})
	require.NoError(t, err)

	got, err := ledger.Get(db, id)
	require.NoError(t, err)
	assert.Equal(t, amount.New(5, 0), got.Amount)

	consumed, err := ledger.Consume(db, id)
	require.NoError(t, err)
	assert.Equal(t, amount.New(5, 0), consumed.Amount)

	// any later reference must fail with ErrConsumed, not ErrNotFound
	_, err = ledger.Get(db, id)
	assert.True(t, asset.ErrConsumed.Is(err))
	_, err = ledger.Consume(db, id)
	assert.True(t, asset.ErrConsumed.Is(err))

	// an id never issued fails with ErrNotFound
	_, err = ledger.Get(db, holdingstest.SequenceID(42))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestHoldingsEnumeration(t *testing.T) {
	db := store.MemStore()
	ledger := asset.NewLedger()
	issuer := holdingstest.NewCondition().Address()
	alice := holdingstest.NewCondition().Address()
	bob := holdingstest.NewCondition().Address()
	gold := asset.Type{Issuer: issuer, Symbol: "GLD", Fungible: true}
	iron := asset.Type{Issuer: issuer, Symbol: "IRN", Fungible: true}

	id1, err := ledger.Create(db, &asset.Asset{Type: gold, Owner: alice, Amount: amount.New(60, 0)})
	require.NoError(t, err)
	id2, err := ledger.Create(db, &asset.Asset{Type: gold, Owner: alice, Amount: amount.New(40, 0)})
	require.NoError(t, err)
	_, err = ledger.Create(db, &asset.Asset{Type: iron, Owner: alice, Amount: amount.New(7, 0)})
	require.NoError(t, err)
	_, err = ledger.Create(db, &asset.Asset{Type: gold, Owner: bob, Amount: amount.New(3, 0)})
	require.NoError(t, err)

	ids, err := ledger.HoldingsOf(db, gold, alice)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{id1, id2}, ids)

	// consumption removes the record from the enumeration
	_, err = ledger.Consume(db, id1)
	require.NoError(t, err)
	ids, err = ledger.HoldingsOf(db, gold, alice)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{id2}, ids)
}

func TestMatchesIgnoresObservers(t *testing.T) {
	issuer := holdingstest.NewCondition().Address()
	owner := holdingstest.NewCondition().Address()
	watcher := holdingstest.NewCondition().Address()
	typ := asset.Type{Issuer: issuer, Symbol: "GLD", Fungible: true}

	a := &asset.Asset{Type: typ, Owner: owner, Amount: amount.New(5, 0)}

	withObs := &asset.Asset{Type: typ, Owner: owner, Amount: amount.New(5, 0)}
	withObs.Observers = append(withObs.Observers, watcher)

	assert.True(t, a.Matches(withObs))
	assert.True(t, withObs.Matches(a))

	other := &asset.Asset{Type: typ, Owner: owner, Amount: amount.New(6, 0)}
	assert.False(t, a.Matches(other))
}
