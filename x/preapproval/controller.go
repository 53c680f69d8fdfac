package preapproval

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
)

// Controller stores and redeems pre-approvals. Consumed by the transfer and
// trade extensions, which present the record they are about to hand over and
// rely on the match check standing in for the new owner's signature.
type Controller struct {
	grants   orm.Bucket
	seq      orm.Sequence
	accounts account.Controller
}

// NewController returns a controller bound to the pre-approval bucket.
func NewController(accounts account.Controller) Controller {
	return Controller{
		grants:   orm.NewBucket("preapproval"),
		seq:      orm.NewSequence("preapproval", "id"),
		accounts: accounts,
	}
}

// Grant stores a new pre-approval. The grantor must hold an account for the
// approved asset type, otherwise redemption could never deposit.
func (c Controller) Grant(db holdings.KVStore, pa *PreApproval) ([]byte, error) {
	if err := pa.Validate(); err != nil {
		return nil, err
	}
	if _, err := c.accounts.Account(db, pa.Asset.Type, pa.NewOwner); err != nil {
		return nil, errors.Wrap(err, "grantor account")
	}
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, err
	}
	if err := c.grants.Put(db, id, pa); err != nil {
		return nil, err
	}
	return id, nil
}

// Get loads an open pre-approval. Fails with ErrNotFound for unknown or
// already resolved ids.
func (c Controller) Get(db holdings.ReadOnlyKVStore, id []byte) (*PreApproval, error) {
	var pa PreApproval
	if err := c.grants.One(db, id, &pa); err != nil {
		return nil, err
	}
	return &pa, nil
}

// Redeem consumes the pre-approval in exchange for the candidate record the
// caller is about to hand over. The candidate must match the approved
// snapshot exactly; observers carry no weight in the comparison.
func (c Controller) Redeem(db holdings.KVStore, id []byte, candidate *asset.Asset) (*PreApproval, error) {
	pa, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !pa.Asset.Matches(candidate) {
		return nil, errors.Wrapf(ErrAssetMismatch,
			"approved %s of %s", pa.Asset.Amount, pa.Asset.Type.Symbol)
	}
	if err := c.grants.Delete(db, id); err != nil {
		return nil, err
	}
	return pa, nil
}

// Drop removes the pre-approval without redeeming it.
func (c Controller) Drop(db holdings.KVStore, id []byte) error {
	return c.grants.Delete(db, id)
}
