package utils

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
)

// Savepoint will isolate all data inside of the call and commit or roll back
// the writes based on the success of the call. This gives multi-record
// operations like a trade settlement their all-or-nothing behavior: a
// failure halfway through leaves no trace.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ holdings.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator, but you must call OnCheck or
// OnDeliver (or both) so it triggers.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that wraps the Check calls.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{onCheck: true, onDeliver: s.onDeliver}
}

// OnDeliver returns a savepoint that wraps the Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{onCheck: s.onCheck, onDeliver: true}
}

// Check runs the next checker inside a cache wrap when enabled.
func (s Savepoint) Check(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx, next holdings.Checker) (*holdings.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cstore, ok := store.(holdings.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot cache wrap")
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	return res, cache.Write()
}

// Deliver runs the next deliverer inside a cache wrap when enabled.
func (s Savepoint) Deliver(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx, next holdings.Deliverer) (*holdings.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cstore, ok := store.(holdings.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot cache wrap")
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	return res, cache.Write()
}
