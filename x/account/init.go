package account

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/x/asset"
)

// Initializer fulfils the Initializer interface to load accounts and initial
// holdings from genesis.
type Initializer struct{}

var _ holdings.Initializer = (*Initializer)(nil)

type genesisAccount struct {
	Type         asset.Type       `json:"type"`
	Owner        holdings.Address `json:"owner"`
	Airdroppable bool             `json:"airdroppable"`
	Resharable   bool             `json:"resharable"`
}

type genesisHolding struct {
	Type   asset.Type       `json:"type"`
	Owner  holdings.Address `json:"owner"`
	Amount amount.Amount    `json:"amount"`
}

// FromGenesis will parse initial account and holding info from the genesis
// options and save it to the database. Every holding must land in an account
// declared in the same genesis.
func (Initializer) FromGenesis(opts holdings.Options, db holdings.KVStore) error {
	ctrl := NewController(asset.NewLedger())

	var accounts []genesisAccount
	if err := opts.ReadOptions("accounts", &accounts); err != nil {
		return errors.Wrap(err, "accounts")
	}
	for i, ga := range accounts {
		acct := Account{
			Type:         ga.Type,
			Owner:        ga.Owner,
			Airdroppable: ga.Airdroppable,
			Resharable:   ga.Resharable,
		}
		if err := acct.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		exists, err := ctrl.Has(db, acct.Type, acct.Owner)
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrapf(errors.ErrDuplicate, "account #%d", i)
		}
		if err := ctrl.Store(db, &acct); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}

	var initial []genesisHolding
	if err := opts.ReadOptions("holdings", &initial); err != nil {
		return errors.Wrap(err, "holdings")
	}
	for i, gh := range initial {
		acct, err := ctrl.Account(db, gh.Type, gh.Owner)
		if err != nil {
			return errors.Wrapf(err, "holding #%d", i)
		}
		if _, err := ctrl.Issue(db, acct, gh.Amount, nil); err != nil {
			return errors.Wrapf(err, "holding #%d", i)
		}
	}
	return nil
}
