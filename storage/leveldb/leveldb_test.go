package leveldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/storage"
	"xdao.co/jumpring/storage/testkit"
)

func TestConformance(t *testing.T) {
	testkit.RunConformance(t, func(t *testing.T) storage.Backend {
		b, err := New(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")

	b, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, datastore.NewKey("/config"), []byte("cfg")))
	require.NoError(t, b.Close())

	b, err = New(dir)
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Get(ctx, datastore.NewKey("/config"))
	require.NoError(t, err)
	require.Equal(t, []byte("cfg"), got)
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}
