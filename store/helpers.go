package store

import "github.com/holdings-one/holdings/errors"

// Pair is a key-value pair as returned by iterators.
type Pair struct {
	Key   []byte
	Value []byte
}

// EmptyKVStore never holds any data. It is useful as the bottom layer of a
// cache-wrap stack.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (EmptyKVStore) Set(key, value []byte) error { return nil }

func (EmptyKVStore) Delete(key []byte) error { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

// op is one recorded write operation.
type op struct {
	key    []byte
	value  []byte // nil means delete
	delete bool
}

func (o op) apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch just piles up ops and executes them later on the underlying
// store. Only use this for in-memory wrappers around other atomic stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to the given
// store.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: key, delete: true})
	return nil
}

// Write executes all ops on the underlying store and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		if err := o.apply(b.out); err != nil {
			return errors.Wrap(err, "writing batch")
		}
	}
	b.ops = nil
	return nil
}

// SliceIterator wraps an in-memory snapshot of key-value pairs.
type SliceIterator struct {
	data []Pair
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates an iterator over the given pairs. The pairs must
// already be ordered as desired.
func NewSliceIterator(data []Pair) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	p := s.data[s.idx]
	s.idx++
	return p.Key, p.Value, nil
}

// Release frees the snapshot.
func (s *SliceIterator) Release() {
	s.data = nil
	s.idx = 0
}
