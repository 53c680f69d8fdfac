package orm

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/store"
)

type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) { return cbor.Marshal(c) }
func (c *counter) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, c)
}
func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative counter")
	}
	return nil
}

func TestBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")
	key := []byte("alice")

	var dest counter
	err := b.One(db, key, &dest)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Put(db, key, &counter{Count: 5}))
	require.NoError(t, b.One(db, key, &dest))
	assert.Equal(t, int64(5), dest.Count)

	ok, err := b.Has(db, key)
	assert.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Delete(db, key))
	err = b.One(db, key, &dest)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, key)))
}

func TestBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")
	err := b.Put(db, []byte("bob"), &counter{Count: -1})
	assert.True(t, errors.ErrModel.Is(err))
}

func TestBucketNamePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on invalid bucket name")
		}
	}()
	NewBucket("Not Valid!")
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("cnts", "id")

	first, err := seq.NextVal(db)
	require.NoError(t, err)
	second, err := seq.NextVal(db)
	require.NoError(t, err)

	assert.Equal(t, 8, len(first))
	assert.NotEqual(t, first, second)

	latest, err := seq.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest)

	// independent sequences do not interfere
	other := NewSequence("cnts", "other")
	v, err := other.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, first, v)
}

func TestIndexInsertRemoveKeys(t *testing.T) {
	db := store.MemStore()
	idx := NewIndex("cnts", "owner")
	owner := []byte("owner-key")

	keys, err := idx.Keys(db, owner)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, idx.Insert(db, owner, []byte("id1")))
	require.NoError(t, idx.Insert(db, owner, []byte("id2")))
	require.NoError(t, idx.Insert(db, []byte("other"), []byte("id3")))

	keys, err = idx.Keys(db, owner)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("id1"), []byte("id2")}, keys)

	require.NoError(t, idx.Remove(db, owner, []byte("id1")))
	keys, err = idx.Keys(db, owner)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("id2")}, keys)
}
