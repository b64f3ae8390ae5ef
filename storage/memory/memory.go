// Package memory provides an in-memory storage backend for tests and
// ephemeral nodes.
package memory

import (
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"

	"xdao.co/jumpring/storage"
	"xdao.co/jumpring/storage/registry"
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "memory",
		Description: "In-memory map datastore (state is lost on exit)",
		Usage:       registry.UsageEmbedded,
		Open: func(map[string]string) (storage.Backend, error) {
			return New(), nil
		},
	})
}

// New returns an empty, goroutine-safe in-memory backend.
func New() storage.Backend {
	return dssync.MutexWrap(datastore.NewMapDatastore())
}
