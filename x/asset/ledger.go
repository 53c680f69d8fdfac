package asset

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
)

// tombPrefix marks consumed record ids. The double-spend check is a plain
// membership test on this namespace.
var tombPrefix = []byte("_t.asset:")

// Ledger creates and consumes asset records. It enforces the per-record
// invariants and nothing else; which combinations of records may be consumed
// and created together is the account engine's business.
type Ledger struct {
	bucket orm.Bucket
	seq    orm.Sequence
	byHold orm.Index
}

// NewLedger returns the record ledger.
func NewLedger() Ledger {
	return Ledger{
		bucket: orm.NewBucket("asset"),
		seq:    orm.NewSequence("asset", "id"),
		byHold: orm.NewIndex("asset", "holder"),
	}
}

// Create validates the record and stores it under a fresh id. The id is
// registered in the holder index for client-side enumeration.
func (l Ledger) Create(db holdings.KVStore, a *Asset) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	id, err := l.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	if err := l.bucket.Put(db, id, a); err != nil {
		return nil, errors.Wrap(err, "cannot store record")
	}
	if err := l.byHold.Insert(db, a.Type.HolderKey(a.Owner), id); err != nil {
		return nil, errors.Wrap(err, "cannot index record")
	}
	return id, nil
}

// Get returns the live record stored under the given id. A consumed id fails
// with ErrConsumed, an unknown one with ErrNotFound.
func (l Ledger) Get(db holdings.ReadOnlyKVStore, id []byte) (*Asset, error) {
	var a Asset
	err := l.bucket.One(db, id, &a)
	switch {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		consumed, cerr := db.Has(tombKey(id))
		if cerr != nil {
			return nil, cerr
		}
		if consumed {
			return nil, errors.Wrapf(ErrConsumed, "record %X", id)
		}
		return nil, err
	default:
		return nil, err
	}
}

// Consume permanently invalidates the record id and returns its last value.
// The id can never be referenced again.
func (l Ledger) Consume(db holdings.KVStore, id []byte) (*Asset, error) {
	a, err := l.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := l.bucket.Delete(db, id); err != nil {
		return nil, err
	}
	if err := l.byHold.Remove(db, a.Type.HolderKey(a.Owner), id); err != nil {
		return nil, err
	}
	if err := db.Set(tombKey(id), []byte{1}); err != nil {
		return nil, err
	}
	return a, nil
}

// HoldingsOf lists the ids of all live records of the given type and owner.
// This is the read-only enumeration interface used by clients to pick
// operation inputs; it is not part of the transactional surface.
func (l Ledger) HoldingsOf(db holdings.ReadOnlyKVStore, t Type, owner holdings.Address) ([][]byte, error) {
	return l.byHold.Keys(db, t.HolderKey(owner))
}

func tombKey(id []byte) []byte {
	return append(tombPrefix, id...)
}
