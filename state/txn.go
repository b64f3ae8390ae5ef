package state

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ipfs/go-datastore"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

var ErrTxnDone = errors.New("state: transaction already committed or discarded")

// Txn buffers the writes of one transition. Reads see the transaction's own
// writes first, then committed state. Nothing reaches the backend until
// Commit, which applies the whole write set as one batch.
//
// A Txn is not safe for concurrent use; transitions run one at a time.
type Txn struct {
	backend storage.Backend
	writes  map[datastore.Key][]byte
	done    bool
}

var _ Storage = (*Txn)(nil)

func (t *Txn) Get(ctx context.Context, key datastore.Key) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return t.backend.Get(ctx, key)
}

func (t *Txn) Has(ctx context.Context, key datastore.Key) (bool, error) {
	if _, ok := t.writes[key]; ok {
		return true, nil
	}
	return t.backend.Has(ctx, key)
}

func (t *Txn) put(key datastore.Key, value []byte) error {
	if t.done {
		return ErrTxnDone
	}
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *Txn) LoadConfig(ctx context.Context) (model.Config, error) {
	return loadConfig(ctx, t)
}

func (t *Txn) SaveConfig(_ context.Context, cfg model.Config) error {
	b, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("state: encode config: %w", err)
	}
	return t.put(configKey, b)
}

func (t *Txn) LoadImbiber(ctx context.Context, id model.Identity) (model.Imbiber, error) {
	return loadImbiber(ctx, t, id)
}

func (t *Txn) HasImbiber(ctx context.Context, id model.Identity) (bool, error) {
	return t.Has(ctx, imbiberKey(id))
}

func (t *Txn) SaveImbiber(_ context.Context, id model.Identity, rec model.Imbiber) error {
	b, err := Marshal(rec)
	if err != nil {
		return fmt.Errorf("state: encode imbiber: %w", err)
	}
	return t.put(imbiberKey(id), b)
}

// Writes returns the pending write set in key order.
func (t *Txn) Writes() []Entry {
	out := make([]Entry, 0, len(t.writes))
	for k, v := range t.writes {
		out = append(out, Entry{Key: k.String(), Value: append([]byte(nil), v...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Commit applies the write set atomically. An empty write set commits
// nothing and touches no backend.
func (t *Txn) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxnDone
	}
	t.done = true
	if len(t.writes) == 0 {
		return nil
	}
	batch, err := t.backend.Batch(ctx)
	if err != nil {
		return fmt.Errorf("state: begin batch: %w", err)
	}
	for _, e := range t.Writes() {
		if err := batch.Put(ctx, datastore.NewKey(e.Key), e.Value); err != nil {
			return fmt.Errorf("state: batch put %s: %w", e.Key, err)
		}
	}
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("state: commit: %w", err)
	}
	return nil
}

// Discard drops the write set. Discarding a finished transaction is a no-op.
func (t *Txn) Discard() {
	t.done = true
	t.writes = map[datastore.Key][]byte{}
}
