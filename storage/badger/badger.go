// Package badger provides the persistent Badger v2 storage backend.
package badger

import (
	"errors"
	"os"
	"strconv"

	badgerds "github.com/ipfs/go-ds-badger2"

	"xdao.co/jumpring/storage"
	"xdao.co/jumpring/storage/registry"
)

const (
	optDir        = "badger-dir"
	optSyncWrites = "badger-sync-writes"
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "badger",
		Description: "Badger v2 datastore (directory)",
		Usage:       registry.UsageCLI | registry.UsageEmbedded,
		Options: []registry.Option{
			{Name: optDir, Usage: "Badger state directory"},
			{Name: optSyncWrites, Usage: "fsync every commit", Default: "true"},
		},
		Open: func(cfg map[string]string) (storage.Backend, error) {
			sync, err := strconv.ParseBool(cfg[optSyncWrites])
			if err != nil {
				return nil, errors.New("badger: " + optSyncWrites + " must be a boolean")
			}
			return New(cfg[optDir], sync)
		},
	})
}

// New opens (creating if needed) a Badger backend rooted at dir.
func New(dir string, syncWrites bool) (storage.Backend, error) {
	if dir == "" {
		return nil, errors.New("badger: state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	opts := badgerds.DefaultOptions
	opts.SyncWrites = syncWrites
	return badgerds.NewDatastore(dir, &opts)
}
