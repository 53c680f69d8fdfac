// Package app assembles routing, decorators and genesis initialization into
// a runnable transaction processor.
package app

import (
	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
)

// Application processes transactions against one backing store. All writes
// of a delivered transaction are applied through the handler stack, which is
// expected to contain a savepoint so a failed transaction leaves no trace.
type Application struct {
	db      holdings.CacheableKVStore
	handler holdings.Handler
}

// NewApplication combines the store with the fully decorated handler stack.
func NewApplication(db holdings.CacheableKVStore, handler holdings.Handler) *Application {
	return &Application{db: db, handler: handler}
}

// InitChain feeds the genesis options through all registered initializers.
func (a *Application) InitChain(opts holdings.Options, inits ...holdings.Initializer) error {
	for _, init := range inits {
		if err := init.FromGenesis(opts, a.db); err != nil {
			return errors.Wrap(err, "init chain")
		}
	}
	return nil
}

// Check validates the transaction without persisting anything.
func (a *Application) Check(ctx holdings.Context, tx holdings.Tx) (*holdings.CheckResult, error) {
	return a.handler.Check(ctx, a.db, tx)
}

// Deliver executes the transaction against the backing store.
func (a *Application) Deliver(ctx holdings.Context, tx holdings.Tx) (*holdings.DeliverResult, error) {
	return a.handler.Deliver(ctx, a.db, tx)
}
