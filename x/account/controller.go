package account

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/asset"
)

// Controller is the functionality needed by the message handlers here and by
// the transfer and trade extensions. All value movement funnels through it so
// the conservation checks live in exactly one place. The controller performs
// no authentication; callers decide who must have signed.
type Controller struct {
	accounts orm.Bucket
	ledger   asset.Ledger
}

// NewController returns a controller bound to the account bucket and the
// record ledger.
func NewController(ledger asset.Ledger) Controller {
	return Controller{
		accounts: orm.NewBucket("account"),
		ledger:   ledger,
	}
}

// Account loads the account of the given (type, owner) pair. Fails with
// ErrNotFound when no account was opened for the pair.
func (c Controller) Account(db holdings.ReadOnlyKVStore, t asset.Type, owner holdings.Address) (*Account, error) {
	var acct Account
	if err := c.accounts.One(db, t.HolderKey(owner), &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Has returns true if an account exists for the (type, owner) pair.
func (c Controller) Has(db holdings.ReadOnlyKVStore, t asset.Type, owner holdings.Address) (bool, error) {
	return c.accounts.Has(db, t.HolderKey(owner))
}

// Store persists the account under its holder key.
func (c Controller) Store(db holdings.KVStore, acct *Account) error {
	return c.accounts.Put(db, acct.Key(), acct)
}

// Remove deletes the account. The caller must have archived its records.
func (c Controller) Remove(db holdings.KVStore, acct *Account) error {
	return c.accounts.Delete(db, acct.Key())
}

// Issue mints a fresh record into the account and returns its id.
func (c Controller) Issue(db holdings.KVStore, acct *Account, amt amount.Amount, observers []holdings.Address) ([]byte, error) {
	return c.ledger.Create(db, &asset.Asset{
		Type:      acct.Type,
		Owner:     acct.Owner,
		Amount:    amt,
		Observers: observers,
	})
}

// ValidateInputs checks the input list every consuming operation shares: no
// id may repeat, every record must be live, carry the account's asset type
// and belong to the account owner, and the total must cover the required
// amount. It returns the verified total without consuming anything.
func (c Controller) ValidateInputs(db holdings.ReadOnlyKVStore, acct *Account, ids [][]byte, required amount.Amount) (amount.Amount, error) {
	var total amount.Amount
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[string(id)]; ok {
			return total, errors.Wrapf(ErrDuplicateInput, "record %X", id)
		}
		seen[string(id)] = struct{}{}

		a, err := c.ledger.Get(db, id)
		if err != nil {
			return total, errors.Wrapf(err, "record %X", id)
		}
		if !a.Type.Equals(acct.Type) {
			return total, errors.Wrapf(ErrTypeMismatch, "record %X", id)
		}
		if !a.Owner.Equals(acct.Owner) {
			return total, errors.Wrapf(ErrOwnerMismatch, "record %X", id)
		}
		total, err = total.Add(a.Amount)
		if err != nil {
			return total, errors.Wrap(err, "input total")
		}
	}
	if total.Compare(required) < 0 {
		return total, errors.Wrapf(errors.ErrInsufficientAmount,
			"have %s, need %s", total, required)
	}
	return total, nil
}

// ConsumeInputs tombstones all listed records and returns their last values.
// Callers must have validated the list first.
func (c Controller) ConsumeInputs(db holdings.KVStore, ids [][]byte) ([]*asset.Asset, error) {
	consumed := make([]*asset.Asset, 0, len(ids))
	for _, id := range ids {
		a, err := c.ledger.Consume(db, id)
		if err != nil {
			return nil, errors.Wrapf(err, "record %X", id)
		}
		consumed = append(consumed, a)
	}
	return consumed, nil
}

// MergeSplit consumes the input records and reissues their total value as
// the requested outputs. When the inputs exceed the outputs the remainder is
// issued back as one extra record, so no value is ever created or destroyed.
// Returned are the fresh record ids, outputs first, remainder last.
func (c Controller) MergeSplit(db holdings.KVStore, acct *Account, inputIDs [][]byte, outputs []amount.Amount) ([][]byte, error) {
	if !acct.Type.Fungible {
		return nil, errors.Wrapf(ErrNonFungible, "%s", acct.Type.Symbol)
	}
	requested, err := amount.Sum(outputs...)
	if err != nil {
		return nil, errors.Wrap(err, "output total")
	}
	for i, out := range outputs {
		if !out.IsPositive() {
			return nil, errors.Wrapf(errors.ErrInvalidAmount, "output #%d: %s", i, out)
		}
	}

	total, err := c.ValidateInputs(db, acct, inputIDs, requested)
	if err != nil {
		return nil, err
	}
	if _, err := c.ConsumeInputs(db, inputIDs); err != nil {
		return nil, err
	}

	ids := make([][]byte, 0, len(outputs)+1)
	for _, out := range outputs {
		id, err := c.Issue(db, acct, out, nil)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	remainder, err := total.Subtract(requested)
	if err != nil {
		return nil, errors.Wrap(err, "remainder")
	}
	if remainder.IsPositive() {
		id, err := c.Issue(db, acct, remainder, nil)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Normalize produces a single live record of exactly the given amount out of
// the input list. Fungible inputs are merged and split, a non-fungible input
// must already match. The returned record is live and ready to be consumed
// by a settlement.
func (c Controller) Normalize(db holdings.KVStore, acct *Account, inputIDs [][]byte, amt amount.Amount) ([]byte, error) {
	if !acct.Type.Fungible {
		if len(inputIDs) != 1 {
			return nil, errors.Wrapf(ErrSingleInput, "%d inputs", len(inputIDs))
		}
		if _, err := c.ValidateInputs(db, acct, inputIDs, amt); err != nil {
			return nil, err
		}
		return inputIDs[0], nil
	}
	ids, err := c.MergeSplit(db, acct, inputIDs, []amount.Amount{amt})
	if err != nil {
		return nil, err
	}
	return ids[0], nil
}
