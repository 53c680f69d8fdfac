package orm

import (
	"regexp"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	holdings.Persistent
	Validate() error
}

// Bucket is a generic holder that stores models of one type under a common
// key prefix. All storage is by serialized bytes; mutation is always a fresh
// Put of a new value, never an in-place edit.
type Bucket struct {
	prefix []byte
}

// NewBucket creates a bucket with the given name as key namespace. The name
// must be a valid bucket name, or this panics. Always call during setup.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return Bucket{
		prefix: append([]byte(name), ':'),
	}
}

// DBKey returns the full key under which the given primary key is stored.
func (b Bucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// One queries the database for a single model instance. Lookup is done by
// the primary key. The result is loaded into the given destination model.
// This method returns ErrNotFound if the entity does not exist.
func (b Bucket) One(db holdings.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T with key %X", dest, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Put validates and saves the given model under the given key.
func (b Bucket) Put(db holdings.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes an entity with the given primary key. It returns
// ErrNotFound if the entity does not exist.
func (b Bucket) Delete(db holdings.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return db.Delete(dbkey)
}

// Has returns true if an entity with the given primary key exists.
func (b Bucket) Has(db holdings.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}
