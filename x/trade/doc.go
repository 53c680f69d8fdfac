/*
Package trade implements atomic two-leg swaps between accounts.

The proposer escrows the offered value and grants, in the same breath, a
pre-approval for the value wanted in return. The receiver settles by handing
over a matching record: both legs move together or not at all. Either side
can walk away before settlement, returning the escrowed value to the
proposer.
*/
package trade
