package transfer

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/account"
)

// Controller moves value in and out of transfer offers. All account checks
// are delegated to the account controller; authentication is the handlers'
// business.
type Controller struct {
	offers   orm.Bucket
	seq      orm.Sequence
	accounts account.Controller
}

// NewController returns a controller bound to the offer bucket.
func NewController(accounts account.Controller) Controller {
	return Controller{
		offers:   orm.NewBucket("transfer"),
		seq:      orm.NewSequence("transfer", "id"),
		accounts: accounts,
	}
}

// Get loads an open offer. Fails with ErrNotFound for unknown or already
// resolved offers.
func (c Controller) Get(db holdings.ReadOnlyKVStore, id []byte) (*Offer, error) {
	var o Offer
	if err := c.offers.One(db, id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Open consumes the sender's inputs and parks their value in one offer per
// destination. Any remainder above the destination total is reissued to the
// sender right away. Returns the ids of the opened offers, in destination
// order.
func (c Controller) Open(db holdings.KVStore, acct *account.Account, inputIDs [][]byte, dests []Destination) ([][]byte, error) {
	total, err := amount.Sum(destinationAmounts(dests)...)
	if err != nil {
		return nil, errors.Wrap(err, "destination total")
	}
	if !acct.Type.Fungible {
		if len(inputIDs) != 1 {
			return nil, errors.Wrap(account.ErrSingleInput, "transfer")
		}
		if len(dests) != 1 {
			return nil, errors.Wrap(errors.ErrInput, "non-fungible transfer takes exactly one destination")
		}
		if !dests[0].Amount.Equals(amount.One()) {
			return nil, errors.Wrap(errors.ErrInvalidAmount, "non-fungible unit is indivisible")
		}
	}

	verified, err := c.accounts.ValidateInputs(db, acct, inputIDs, total)
	if err != nil {
		return nil, err
	}
	consumed, err := c.accounts.ConsumeInputs(db, inputIDs)
	if err != nil {
		return nil, err
	}

	// observers of the source records keep their view while the value
	// sits in the offers
	var observers []holdings.Address
	for _, rec := range consumed {
		for _, obs := range rec.Observers {
			if !containsAddress(observers, obs) {
				observers = append(observers, obs)
			}
		}
	}

	ids := make([][]byte, 0, len(dests))
	for _, dst := range dests {
		id, err := c.seq.NextVal(db)
		if err != nil {
			return nil, err
		}
		offer := Offer{
			Type:      acct.Type,
			Sender:    acct.Owner,
			Recipient: dst.Recipient,
			Amount:    dst.Amount,
			Observers: observers,
		}
		if err := c.offers.Put(db, id, &offer); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	remainder, err := verified.Subtract(total)
	if err != nil {
		return nil, errors.Wrap(err, "remainder")
	}
	if remainder.IsPositive() {
		if _, err := c.accounts.Issue(db, acct, remainder, observers); err != nil {
			return nil, errors.Wrap(err, "remainder")
		}
	}
	return ids, nil
}

// Withdraw resolves the offer by returning its value to the sender,
// observers restored. Used by both cancel and reject.
func (c Controller) Withdraw(db holdings.KVStore, id []byte, o *Offer) error {
	acct, err := c.accounts.Account(db, o.Type, o.Sender)
	if err != nil {
		return errors.Wrap(err, "sender account")
	}
	if _, err := c.accounts.Issue(db, acct, o.Amount, o.Observers); err != nil {
		return err
	}
	return c.offers.Delete(db, id)
}

// Deposit resolves the offer into the recipient's account. The fresh record
// starts with a clean observer list. Returns the new record id.
func (c Controller) Deposit(db holdings.KVStore, id []byte, o *Offer) ([]byte, error) {
	acct, err := c.accounts.Account(db, o.Type, o.Recipient)
	if err != nil {
		return nil, errors.Wrap(err, "recipient account")
	}
	recID, err := c.accounts.Issue(db, acct, o.Amount, nil)
	if err != nil {
		return nil, err
	}
	if err := c.offers.Delete(db, id); err != nil {
		return nil, err
	}
	return recID, nil
}

func destinationAmounts(dests []Destination) []amount.Amount {
	amounts := make([]amount.Amount, len(dests))
	for i, dst := range dests {
		amounts[i] = dst.Amount
	}
	return amounts
}

func containsAddress(list []holdings.Address, addr holdings.Address) bool {
	for _, a := range list {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
