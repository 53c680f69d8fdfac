/*
Package account implements the typed account engine.

An account is the unique authorization boundary for one (asset type, owner)
pair: every operation that mints, merges, splits or moves records of that
pair must pass through it. Accounts are created through a two-phase
invitation so that both the issuer's and the new owner's consent is captured,
and closed through a matching proposal/confirm handshake.

The Controller is exposed to the transfer and trade extensions the same way a
bank controller would be: it owns the shared input validation routine that
prevents value fabrication and account-crossing theft.
*/
package account
