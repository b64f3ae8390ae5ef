package state

import (
	"context"
	"testing"

	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

func newStore() *Store {
	return New(ds_sync.MutexWrap(ds.NewMapDatastore()))
}

func testImbiber(addr model.Identity) model.Imbiber {
	return model.Imbiber{
		Address:   addr,
		Species:   model.Species{Name: "Cyborg", SapienceLevel: model.SapienceHigh},
		Name:      "Hugh",
		CyborgDNA: []byte{1, 2, 3, 4},
	}
}

func TestStore_MissingRecordsAreNotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	_, err := s.View().LoadConfig(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.View().LoadImbiber(ctx, "wasm1nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)

	has, err := s.View().HasImbiber(ctx, "wasm1nobody")
	require.NoError(t, err)
	require.False(t, has)
}

func TestTxn_CommitMakesWritesVisible(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	cfg := model.Config{Owner: "wasm1owner", DNALength: 8, DNAModulus: 10, Swigs: 3}
	rec := testImbiber("wasm1hugh")

	txn := s.Begin()
	require.NoError(t, txn.SaveConfig(ctx, cfg))
	require.NoError(t, txn.SaveImbiber(ctx, rec.Address, rec))

	// Own writes are readable inside the transaction.
	got, err := txn.LoadConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	// Nothing is visible outside until Commit.
	_, err = s.View().LoadConfig(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.Len(t, txn.Writes(), 2)
	require.NoError(t, txn.Commit(ctx))

	got, err = s.View().LoadConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	gotRec, err := s.View().LoadImbiber(ctx, rec.Address)
	require.NoError(t, err)
	require.Equal(t, rec, gotRec)

	require.ErrorIs(t, txn.Commit(ctx), ErrTxnDone)
	require.ErrorIs(t, txn.SaveConfig(ctx, cfg), ErrTxnDone)
}

func TestTxn_DiscardLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	before, err := s.Root(ctx)
	require.NoError(t, err)

	txn := s.Begin()
	require.NoError(t, txn.SaveConfig(ctx, model.Config{Owner: "wasm1owner", Swigs: 3}))
	txn.Discard()
	require.Empty(t, txn.Writes())

	after, err := s.Root(ctx)
	require.NoError(t, err)
	require.True(t, before.Equals(after))

	_, err = s.View().LoadConfig(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RootIsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	a, b := newStore(), newStore()

	recs := []model.Imbiber{testImbiber("wasm1a"), testImbiber("wasm1b"), testImbiber("wasm1c")}

	txn := a.Begin()
	for _, r := range recs {
		require.NoError(t, txn.SaveImbiber(ctx, r.Address, r))
	}
	require.NoError(t, txn.Commit(ctx))

	for i := len(recs) - 1; i >= 0; i-- {
		txn := b.Begin()
		require.NoError(t, txn.SaveImbiber(ctx, recs[i].Address, recs[i]))
		require.NoError(t, txn.Commit(ctx))
	}

	ra, err := a.Root(ctx)
	require.NoError(t, err)
	rb, err := b.Root(ctx)
	require.NoError(t, err)
	require.True(t, ra.Equals(rb), "%s != %s", ra, rb)

	txn = b.Begin()
	rec := testImbiber("wasm1a")
	rec.Name = "Renamed"
	require.NoError(t, txn.SaveImbiber(ctx, rec.Address, rec))
	require.NoError(t, txn.Commit(ctx))
	rb, err = b.Root(ctx)
	require.NoError(t, err)
	require.False(t, ra.Equals(rb))
}

func TestStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	backend := ds_sync.MutexWrap(ds.NewMapDatastore())
	require.NoError(t, backend.Put(ctx, configKey, []byte{0xff, 0x00}))

	_, err := New(backend).View().LoadConfig(ctx)
	require.ErrorIs(t, err, storage.ErrCorrupt)
}

func TestStore_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newStore()
	txn := src.Begin()
	require.NoError(t, txn.SaveConfig(ctx, model.Config{Owner: "wasm1owner", DNALength: 4, DNAModulus: 9, Swigs: 1}))
	require.NoError(t, txn.SaveImbiber(ctx, "wasm1a", testImbiber("wasm1a")))
	require.NoError(t, txn.Commit(ctx))

	entries, err := src.Entries(ctx)
	require.NoError(t, err)

	dst := newStore()
	require.NoError(t, dst.Restore(ctx, entries))
	require.Error(t, dst.Restore(ctx, entries), "restore into non-empty store")

	r1, err := src.Root(ctx)
	require.NoError(t, err)
	r2, err := dst.Root(ctx)
	require.NoError(t, err)
	require.True(t, r1.Equals(r2))
}

func TestImbiberKeyIsHexOfIdentityBytes(t *testing.T) {
	require.Equal(t, "/imbibers/612f62", imbiberKey("a/b").String())
}

func TestValidKey(t *testing.T) {
	require.True(t, ValidKey("/config"))
	require.True(t, ValidKey(imbiberKey("wasm1hugh").String()))

	for _, key := range []string{
		"",
		"/other",
		"/imbibers",
		"/imbibers/",
		"/imbibers/zz",
		"/imbibers/7761736D31",
		"/imbibers/7761736d31/extra",
		"/config/extra",
	} {
		require.False(t, ValidKey(key), key)
	}
}
