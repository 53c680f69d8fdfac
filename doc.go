/*
Package holdings defines the common interfaces that tie the engine together:
authorization conditions and addresses, messages and transactions, handlers
and decorators, and the key-value store contracts every state transition runs
against.

The packages under x/ implement the domain: the asset ledger, typed accounts,
bilateral transfer offers, single-use pre-approvals and atomic two-asset
trades. They are wired together through controllers and routed messages, and
every delivery is executed inside one atomic store savepoint, so all record
consumptions and creations of an operation take effect together or not at
all.
*/
package holdings
