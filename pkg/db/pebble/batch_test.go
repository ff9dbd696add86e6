package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/pkg/db"
)

func TestBatch(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store db.KVStore)
	}{
		{
			name: "basic_batch_operations",
			fn:   testBasicBatchOperations,
		},
		{
			name: "read_own_writes",
			fn:   testReadOwnWrites,
		},
		{
			name: "close_discards_writes",
			fn:   testCloseDiscards,
		},
		{
			name: "batch_commit_closure",
			fn:   testBatchCommitAndClose,
		},
		{
			name: "batch_iterator",
			fn:   testBatchIterator,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewKVStore()
			require.NoError(t, err)
			defer store.Close() //nolint:errcheck

			tc.fn(t, store)
		})
	}
}

func testBasicBatchOperations(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	keys := [][]byte{[]byte("key1"), []byte("key2"), []byte("key3")}
	values := [][]byte{[]byte("value1"), []byte("value2"), []byte("value3")}

	for i := range keys {
		err := batch.Put(keys[i], values[i])
		require.NoError(t, err)
	}

	// Delete one key in the same batch
	err := batch.Delete(keys[1])
	require.NoError(t, err)

	err = batch.Commit()
	require.NoError(t, err)

	val1, err := store.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, values[0], val1)

	_, err = store.Get(keys[1])
	assert.ErrorIs(t, err, ErrNotFound)

	val3, err := store.Get(keys[2])
	require.NoError(t, err)
	assert.Equal(t, values[2], val3)
}

func testReadOwnWrites(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("committed"), []byte("old")))

	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	v, err := batch.Get([]byte("committed"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)

	require.NoError(t, batch.Put([]byte("committed"), []byte("new")))
	require.NoError(t, batch.Put([]byte("pending"), []byte("p")))

	v, err = batch.Get([]byte("committed"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	v, err = batch.Get([]byte("pending"))
	require.NoError(t, err)
	assert.Equal(t, []byte("p"), v)

	require.NoError(t, batch.Delete([]byte("pending")))
	_, err = batch.Get([]byte("pending"))
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing is visible outside the batch before commit
	v, err = store.Get([]byte("committed"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)
}

func testCloseDiscards(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	require.NoError(t, batch.Put([]byte("key"), []byte("value")))
	require.NoError(t, batch.Close())

	_, err := store.Get([]byte("key"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = batch.Get([]byte("key"))
	assert.ErrorIs(t, err, ErrBatchDone)
}

func testBatchCommitAndClose(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()

	err := batch.Put([]byte("key"), []byte("value"))
	require.NoError(t, err)

	err = batch.Commit()
	require.NoError(t, err)

	// Operations after commit should fail
	err = batch.Put([]byte("key2"), []byte("value2"))
	assert.ErrorIs(t, err, ErrBatchDone)

	err = batch.Delete([]byte("key2"))
	assert.ErrorIs(t, err, ErrBatchDone)

	err = batch.Commit()
	assert.ErrorIs(t, err, ErrBatchDone)

	err = batch.Close()
	assert.NoError(t, err)

	err = batch.Close()
	assert.NoError(t, err)
}

func testBatchIterator(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("a1"), []byte("committed")))

	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck
	require.NoError(t, batch.Put([]byte("a2"), []byte("pending")))
	require.NoError(t, batch.Put([]byte("b1"), []byte("outside")))

	iter, err := batch.NewIterator([]byte("a"), []byte("b"))
	require.NoError(t, err)

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Close())
	assert.Equal(t, []string{"a1", "a2"}, keys)
}
