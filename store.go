package holdings

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is invalid.
	// A nil start is interpreted as an empty byteslice. If a nil end is
	// passed, it iterates past the end of the store.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be greater than end, or the Iterator is
	// invalid. If a nil end is passed, it iterates from the end of the
	// store.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the basic interface to get and set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a committable store.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap branches a store. The branch can be flushed into the parent
// with Write, or dropped without effect with Discard. This is the atomic
// multi-record commit primitive: all record changes of one operation are
// written into a cache wrap and take effect together or not at all.
type KVCacheWrap interface {
	// CacheableKVStore allows the cache wrap to be layered again.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// Iterator allows iteration over a domain of keys. Release must be called
// when done.
type Iterator interface {
	// Next moves the iterator to the next sequential key in the database.
	// It returns the key and value at the new position, or ErrIteratorDone
	// when the iterator is exhausted.
	Next() (key, value []byte, err error)

	// Release frees any resources held by the iterator.
	Release()
}
