package storage

import (
	"errors"

	"github.com/ipfs/go-datastore"
)

var (
	ErrNotFound     = errors.New("storage: not found")
	ErrCorrupt      = errors.New("storage: corrupt record")
	ErrRootMismatch = errors.New("storage: state root mismatch")
	ErrNoBackend    = errors.New("storage: no backend")
)

// IsNotFound reports whether err is a missing-key error from this package or
// from the underlying datastore.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, datastore.ErrNotFound)
}
