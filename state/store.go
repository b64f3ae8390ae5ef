package state

import (
	"context"
	"fmt"
	"sort"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"

	"xdao.co/jumpring/cidutil"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

// Reader is the read half of the typed state interface.
type Reader interface {
	LoadConfig(ctx context.Context) (model.Config, error)
	LoadImbiber(ctx context.Context, id model.Identity) (model.Imbiber, error)
	HasImbiber(ctx context.Context, id model.Identity) (bool, error)
}

// Storage is the typed load/save interface the contract runs against.
//
// Load* return an error wrapping storage.ErrNotFound when the record is
// absent. SaveImbiber is create-or-overwrite; uniqueness is the caller's
// policy.
type Storage interface {
	Reader
	SaveConfig(ctx context.Context, cfg model.Config) error
	SaveImbiber(ctx context.Context, id model.Identity, rec model.Imbiber) error
}

// Entry is one persisted key/value pair.
type Entry struct {
	Key   string
	Value []byte
}

type kvReader interface {
	Get(ctx context.Context, key datastore.Key) ([]byte, error)
	Has(ctx context.Context, key datastore.Key) (bool, error)
}

// Store owns the contract's persisted state on top of a raw backend.
//
// All mutation goes through a Txn, so a transition's writes become visible
// together or not at all.
type Store struct {
	backend storage.Backend
}

// New wraps a backend. The Store takes ownership; Close closes the backend.
func New(b storage.Backend) *Store {
	return &Store{backend: b}
}

// Begin starts a write-buffering transaction.
func (s *Store) Begin() *Txn {
	return &Txn{backend: s.backend, writes: map[datastore.Key][]byte{}}
}

// View returns a read-only accessor over committed state.
func (s *Store) View() Reader {
	return view{r: s.backend}
}

func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Entries returns every persisted pair in key order.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	res, err := s.backend.Query(ctx, query.Query{})
	if err != nil {
		return nil, fmt.Errorf("state: query: %w", err)
	}
	all, err := res.Rest()
	if err != nil {
		return nil, fmt.Errorf("state: query: %w", err)
	}
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		out = append(out, Entry{Key: e.Key, Value: e.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Root commits to the whole state: the dag-cbor CID of the ordered list of
// [key, value] pairs. Equal state yields an equal root on every backend.
func (s *Store) Root(ctx context.Context) (cid.Cid, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return cid.Undef, err
	}
	return RootOf(entries)
}

// RootOf computes the state root of an already ordered entry list.
func RootOf(entries []Entry) (cid.Cid, error) {
	pairs := make([][2]any, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, [2]any{e.Key, e.Value})
	}
	b, err := Marshal(pairs)
	if err != nil {
		return cid.Undef, err
	}
	return cidutil.DagCBORSHA256(b)
}

// Restore writes entries into an empty store in one batch.
func (s *Store) Restore(ctx context.Context, entries []Entry) error {
	existing, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("state: restore into non-empty store (%d entries)", len(existing))
	}
	batch, err := s.backend.Batch(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := batch.Put(ctx, datastore.NewKey(e.Key), e.Value); err != nil {
			return err
		}
	}
	return batch.Commit(ctx)
}

type view struct {
	r kvReader
}

func (v view) LoadConfig(ctx context.Context) (model.Config, error) {
	return loadConfig(ctx, v.r)
}

func (v view) LoadImbiber(ctx context.Context, id model.Identity) (model.Imbiber, error) {
	return loadImbiber(ctx, v.r, id)
}

func (v view) HasImbiber(ctx context.Context, id model.Identity) (bool, error) {
	return v.r.Has(ctx, imbiberKey(id))
}

func loadConfig(ctx context.Context, r kvReader) (model.Config, error) {
	var cfg model.Config
	b, err := r.Get(ctx, configKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return cfg, fmt.Errorf("state: config: %w", storage.ErrNotFound)
		}
		return cfg, fmt.Errorf("state: load config: %w", err)
	}
	if err := unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("state: config: %w", err)
	}
	return cfg, nil
}

func loadImbiber(ctx context.Context, r kvReader, id model.Identity) (model.Imbiber, error) {
	var rec model.Imbiber
	b, err := r.Get(ctx, imbiberKey(id))
	if err != nil {
		if storage.IsNotFound(err) {
			return rec, fmt.Errorf("state: imbiber %q: %w", id, storage.ErrNotFound)
		}
		return rec, fmt.Errorf("state: load imbiber %q: %w", id, err)
	}
	if err := unmarshal(b, &rec); err != nil {
		return rec, fmt.Errorf("state: imbiber %q: %w", id, err)
	}
	return rec, nil
}
