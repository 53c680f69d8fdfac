package holdingstest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/holdings-one/holdings"
)

// NewCondition returns a random condition that can stand in for a principal
// in tests.
func NewCondition() holdings.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return holdings.NewCondition("sigs", "ed25519", data)
}

// SequenceID returns the n-th identifier as issued by an orm.Sequence.
// Sequences are counting from 1.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
