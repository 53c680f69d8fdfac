/*
Package x holds the authentication interface shared by all extensions.

Every mutating operation declares the principal set that must have
authorized it. Handlers receive an Authenticator and verify the declared set
against the conditions fulfilled on the context, never against any ambient
identity.
*/
package x

import (
	"github.com/holdings-one/holdings"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one implementation for all extensions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled.
	GetConditions(holdings.Context) []holdings.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(holdings.Context, holdings.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions from all authenticators.
func (m MultiAuth) GetConditions(ctx holdings.Context) []holdings.Condition {
	var res []holdings.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any authenticator supports this.
func (m MultiAuth) HasAddress(ctx holdings.Context, addr holdings.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx holdings.Context, auth Authenticator) holdings.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all required addresses are authorized on
// the context. This is the joint co-signature check: operations that demand
// consent of several principals pass the full set here.
func HasAllAddresses(ctx holdings.Context, auth Authenticator, required ...holdings.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if all elements in required are also in the
// context.
func HasAllConditions(ctx holdings.Context, auth Authenticator, required []holdings.Condition) bool {
	perms := auth.GetConditions(ctx)
	for _, req := range required {
		if !hasPerm(perms, req) {
			return false
		}
	}
	return true
}

func hasPerm(perms []holdings.Condition, perm holdings.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}
