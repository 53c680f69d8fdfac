package orm

import (
	"fmt"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
)

// Index maintains a secondary index from an index key to primary bucket
// keys. One index key may reference many entities. It backs the read-only
// enumeration interface: clients list live records by (asset type, owner)
// key without the engine exposing free-form queries.
type Index struct {
	prefix []byte
}

// NewIndex returns a named index scoped to the given bucket.
func NewIndex(bucket, name string) Index {
	return Index{
		prefix: []byte(fmt.Sprintf("_i.%s:%s:", bucket, name)),
	}
}

func (i Index) entryKey(indexKey, primaryKey []byte) []byte {
	key := make([]byte, 0, len(i.prefix)+len(indexKey)+1+len(primaryKey))
	key = append(key, i.prefix...)
	key = append(key, indexKey...)
	key = append(key, ':')
	return append(key, primaryKey...)
}

// Insert registers the primary key under the given index key.
func (i Index) Insert(db holdings.KVStore, indexKey, primaryKey []byte) error {
	if len(indexKey) == 0 || len(primaryKey) == 0 {
		return errors.Wrap(errors.ErrEmpty, "index entry")
	}
	return db.Set(i.entryKey(indexKey, primaryKey), primaryKey)
}

// Remove drops the primary key registration under the given index key.
func (i Index) Remove(db holdings.KVStore, indexKey, primaryKey []byte) error {
	return db.Delete(i.entryKey(indexKey, primaryKey))
}

// Keys returns all primary keys registered under the given index key, in
// insertion-id order.
func (i Index) Keys(db holdings.ReadOnlyKVStore, indexKey []byte) ([][]byte, error) {
	start := make([]byte, 0, len(i.prefix)+len(indexKey)+1)
	start = append(start, i.prefix...)
	start = append(start, indexKey...)
	start = append(start, ':')
	end := prefixEnd(start)

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		_, value, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				return keys, nil
			}
			return nil, err
		}
		keys = append(keys, value)
	}
}

// prefixEnd returns the lowest key that is above all keys with the given
// prefix, to be used as an exclusive iteration end.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// all 0xff, iterate to the end of the store
	return nil
}
