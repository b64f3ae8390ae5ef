package storage

import (
	"github.com/ipfs/go-datastore"
)

// Backend is the raw key-value engine underneath the typed state store.
//
// Contract:
// - Get MUST return datastore.ErrNotFound when the key is absent.
// - A Batch MUST become visible all at once on Commit, or not at all.
// - Keys are opaque to the backend; the state package owns the layout.
type Backend interface {
	datastore.Batching
}
