// Package leveldb provides the persistent LevelDB storage backend.
package leveldb

import (
	"errors"
	"os"

	levelds "github.com/ipfs/go-ds-leveldb"
	ldbopts "github.com/syndtr/goleveldb/leveldb/opt"

	"xdao.co/jumpring/storage"
	"xdao.co/jumpring/storage/registry"
)

const optDir = "leveldb-dir"

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "leveldb",
		Description: "LevelDB datastore (directory)",
		Usage:       registry.UsageCLI | registry.UsageEmbedded,
		Options: []registry.Option{
			{Name: optDir, Usage: "LevelDB state directory"},
		},
		Open: func(cfg map[string]string) (storage.Backend, error) {
			return New(cfg[optDir])
		},
	})
}

// New opens (creating if needed) a LevelDB backend rooted at dir.
//
// Writes are synced before Commit returns.
func New(dir string) (storage.Backend, error) {
	if dir == "" {
		return nil, errors.New("leveldb: state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return levelds.NewDatastore(dir, &levelds.Options{
		Compression: ldbopts.NoCompression,
		NoSync:      false,
		Strict:      ldbopts.StrictAll,
	})
}
