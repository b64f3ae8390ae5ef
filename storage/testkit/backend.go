package testkit

import (
	"context"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/storage"
)

// NewBackend constructs a fresh, empty backend for a test.
// The returned backend MUST be isolated from other tests.
type NewBackend func(t *testing.T) storage.Backend

// RunConformance checks the contract every storage.Backend must honor.
func RunConformance(t *testing.T, newBackend NewBackend) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		b := newBackend(t)
		key := datastore.NewKey("/imbibers/77617a6d31")
		want := []byte("record")

		require.NoError(t, b.Put(ctx, key, want))
		got, err := b.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, want, got)

		has, err := b.Has(ctx, key)
		require.NoError(t, err)
		require.True(t, has)
	})

	t.Run("MissingKeyIsNotFound", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(ctx, datastore.NewKey("/config"))
		require.True(t, storage.IsNotFound(err), "got %v", err)

		has, err := b.Has(ctx, datastore.NewKey("/config"))
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("OverwriteReplacesValue", func(t *testing.T) {
		b := newBackend(t)
		key := datastore.NewKey("/config")
		require.NoError(t, b.Put(ctx, key, []byte("one")))
		require.NoError(t, b.Put(ctx, key, []byte("two")))
		got, err := b.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, []byte("two"), got)
	})

	t.Run("BatchInvisibleUntilCommit", func(t *testing.T) {
		b := newBackend(t)
		batch, err := b.Batch(ctx)
		require.NoError(t, err)

		k1 := datastore.NewKey("/config")
		k2 := datastore.NewKey("/imbibers/01")
		require.NoError(t, batch.Put(ctx, k1, []byte("cfg")))
		require.NoError(t, batch.Put(ctx, k2, []byte("rec")))

		has, err := b.Has(ctx, k1)
		require.NoError(t, err)
		require.False(t, has, "batched write visible before Commit")

		require.NoError(t, batch.Commit(ctx))
		for _, k := range []datastore.Key{k1, k2} {
			has, err := b.Has(ctx, k)
			require.NoError(t, err)
			require.True(t, has, "missing %s after Commit", k)
		}
	})

	t.Run("QueryPrefix", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, datastore.NewKey("/imbibers/01"), []byte("a")))
		require.NoError(t, b.Put(ctx, datastore.NewKey("/imbibers/02"), []byte("b")))
		require.NoError(t, b.Put(ctx, datastore.NewKey("/config"), []byte("c")))

		res, err := b.Query(ctx, query.Query{Prefix: "/imbibers"})
		require.NoError(t, err)
		entries, err := res.Rest()
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})
}
