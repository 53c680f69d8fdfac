package orm

import (
	"encoding/binary"
	"fmt"

	"github.com/holdings-one/holdings"
)

// Sequence maintains a counter in the store and issues unique 8-byte
// big-endian identifiers. Identifiers are never reused, which keeps consumed
// record ids permanently distinguishable from fresh ones.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter scoped to the given bucket and
// name.
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte(fmt.Sprintf("_s.%s:%s", bucket, name)),
	}
}

// NextVal increments the sequence and returns its new value as an 8-byte
// key.
func (s Sequence) NextVal(db holdings.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, err
	}
	var val uint64
	if raw != nil {
		val = binary.BigEndian.Uint64(raw)
	}
	val++
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	if err := db.Set(s.id, bz); err != nil {
		return nil, err
	}
	return bz, nil
}

// Latest returns the last value issued by the sequence, or zero when none
// was issued yet.
func (s Sequence) Latest(db holdings.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(raw), nil
}
