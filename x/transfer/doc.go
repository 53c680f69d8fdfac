/*
Package transfer implements offer based value transfer between accounts.

A transfer never moves value directly: the sender's records are consumed and
the offered portions are parked in transfer offers, one per recipient, with
any remainder reissued to the sender. Each offer is then resolved on its own:
deposited by the recipient, rejected by the recipient, cancelled by the
sender, or deposited by the sender against a standing pre-approval of the
recipient. Value inside an open offer belongs to nobody's account and can
only leave through one of these four doors.
*/
package transfer
