/*
Package preapproval implements standing consent for incoming value.

A pre-approval is the receiving side's signature captured ahead of time: it
names the exact asset snapshot the grantor is willing to receive. Whoever
later moves a matching record may redeem the pre-approval in place of a live
signature of the new owner. A redeemed pre-approval is consumed; one that no
longer suits either side is cancelled by the grantor or rejected by the
expected payer.
*/
package preapproval
