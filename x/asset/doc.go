/*
Package asset implements the record ledger at the bottom of the engine.

An asset record binds an amount of one asset type to its current owner.
Records are append-only: any change of amount or owner consumes the old
record and creates fresh ones within the same operation. A consumed record id
is tombstoned forever, so a second operation referencing it fails with
ErrConsumed instead of silently double-spending.

The ledger also maintains a per-(type, owner) index so that external clients
can enumerate live holdings for input selection and account closing. The
engine itself never queries this index during a state transition.
*/
package asset
