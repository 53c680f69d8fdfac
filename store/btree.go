package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/holdings-one/holdings/errors"
)

// defaultFreeListSize is the size we hold for free nodes in the btree.
const defaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple in-memory implementation. There is no
// persistence here; it stands in for the ledger substrate in tests and the
// demo runner.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(defaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
//
// Uses NonAtomicBatch as it is only backed by another in-memory batch.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to our
// cachewrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store. And then cleans up.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all cached data.
func (b BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = rem == nil
	}
}

// Set writes to the BTree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

// Delete marks as deleted in the BTree and in the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

// Get reads from the btree if present, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		default:
			return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Get(key)
}

// Has reads from the btree if present, else the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		default:
			return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order. Combines results from
// the btree overlay and the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	pairs, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(pairs), nil
}

// ReverseIterator over a domain of keys in descending order. Combines
// results from the btree overlay and the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	pairs, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return NewSliceIterator(pairs), nil
}

// merged materializes the view of the given key range, overlaying the local
// btree modifications on top of the backing store. Stores are in-memory and
// ranges are bucket-scoped, so an eager snapshot is both simple and safe
// against modification during iteration.
func (b BTreeCacheWrap) merged(start, end []byte) ([]Pair, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer parent.Release()

	var pairs []Pair
	for {
		key, value, err := parent.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				break
			}
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	overlay := func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			pairs = overlayPair(pairs, Pair{Key: t.key, Value: t.value})
		case deletedItem:
			pairs = removePair(pairs, t.key)
		}
		return true
	}
	if start == nil && end == nil {
		b.bt.Ascend(overlay)
	} else if end == nil {
		b.bt.AscendGreaterOrEqual(bkey{start}, overlay)
	} else if start == nil {
		b.bt.AscendLessThan(bkey{end}, overlay)
	} else {
		b.bt.AscendRange(bkey{start}, bkey{end}, overlay)
	}
	return pairs, nil
}

// overlayPair inserts or replaces the pair keeping the slice sorted.
func overlayPair(pairs []Pair, p Pair) []Pair {
	for i, cur := range pairs {
		switch bytes.Compare(cur.Key, p.Key) {
		case 0:
			pairs[i] = p
			return pairs
		case 1:
			pairs = append(pairs, Pair{})
			copy(pairs[i+1:], pairs[i:])
			pairs[i] = p
			return pairs
		}
	}
	return append(pairs, p)
}

func removePair(pairs []Pair, key []byte) []Pair {
	for i, cur := range pairs {
		if bytes.Equal(cur.Key, key) {
			return append(pairs[:i], pairs[i+1:]...)
		}
	}
	return pairs
}

// Items stored in the btree. We enforce all data in the btree implements
// keyer so we can compare nicely.

type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff the second argument is greater than the first.
//
// Panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
