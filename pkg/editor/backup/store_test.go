package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndTake(t *testing.T) {
	store := NewStore()

	store.Save("/tmp/a.txt", "original content")
	assert.Equal(t, 1, store.Len())

	snap, ok := store.Take("/tmp/a.txt")
	require.True(t, ok)
	assert.Equal(t, "original content", snap.Content)
	assert.Equal(t, "/tmp/a.txt", snap.Path)
	assert.False(t, snap.Timestamp.IsZero())

	// Snapshots are single-use.
	_, ok = store.Take("/tmp/a.txt")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_SaveOverwritesPrior(t *testing.T) {
	store := NewStore()

	store.Save("/tmp/a.txt", "first")
	store.Save("/tmp/a.txt", "second")
	assert.Equal(t, 1, store.Len())

	snap, ok := store.Take("/tmp/a.txt")
	require.True(t, ok)
	assert.Equal(t, "second", snap.Content)
}

func TestStore_TakeMissing(t *testing.T) {
	store := NewStore()

	_, ok := store.Take("/tmp/nope.txt")
	assert.False(t, ok)
}

func TestStore_IndependentPaths(t *testing.T) {
	store := NewStore()

	store.Save("/a", "aaa")
	store.Save("/b", "bbb")
	assert.Equal(t, 2, store.Len())

	snapA, ok := store.Take("/a")
	require.True(t, ok)
	assert.Equal(t, "aaa", snapA.Content)

	snapB, ok := store.Take("/b")
	require.True(t, ok)
	assert.Equal(t, "bbb", snapB.Content)
}
