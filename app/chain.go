package app

import (
	"github.com/holdings-one/holdings"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []holdings.Decorator
}

// ChainDecorators takes a chain of decorators. The first decorator wraps all
// the rest.
func ChainDecorators(chain ...holdings.Decorator) Decorators {
	return Decorators{chain: chain}
}

// Chain appends more decorators to the current chain.
func (d Decorators) Chain(chain ...holdings.Decorator) Decorators {
	return Decorators{chain: append(d.chain, chain...)}
}

// WithHandler resolves the stack into a concrete Handler.
func (d Decorators) WithHandler(h holdings.Handler) holdings.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = chained{d.chain[i], h}
	}
	return h
}

// chained binds a decorator to its next handler, fulfilling the Handler
// interface.
type chained struct {
	mid  holdings.Decorator
	next holdings.Handler
}

var _ holdings.Handler = chained{}

func (c chained) Check(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	return c.mid.Check(ctx, store, tx, c.next)
}

func (c chained) Deliver(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	return c.mid.Deliver(ctx, store, tx, c.next)
}
