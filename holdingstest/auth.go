// Package holdingstest provides mocks and helpers for testing handlers and
// controllers without a full application wiring.
package holdingstest

import (
	"context"
	"fmt"

	"github.com/holdings-one/holdings"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can use
// either the Signer or Signers (or both) attributes to reference conditions.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer holdings.Condition

	// Signers represents an authentication of multiple signers.
	Signers []holdings.Condition
}

func (a *Auth) GetConditions(holdings.Context) []holdings.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx holdings.Context, addr holdings.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx holdings.Context, permissions ...holdings.Condition) holdings.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx holdings.Context) []holdings.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]holdings.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []holdings.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx holdings.Context, addr holdings.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
