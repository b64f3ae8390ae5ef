package state

import (
	"encoding/hex"
	"strings"

	"github.com/ipfs/go-datastore"

	"xdao.co/jumpring/model"
)

var (
	configKey     = datastore.NewKey("/config")
	imbiberPrefix = datastore.NewKey("/imbibers")
)

// imbiberKey maps raw identity bytes to a datastore key. Hex keeps the key
// free of path separators whatever bytes the identity contains.
func imbiberKey(id model.Identity) datastore.Key {
	return imbiberPrefix.ChildString(hex.EncodeToString(id.Bytes()))
}

// ValidKey reports whether key is one the store itself writes: the config
// singleton or an imbiber record under its lower-case hex identity.
func ValidKey(key string) bool {
	if key == configKey.String() {
		return true
	}
	rest, ok := strings.CutPrefix(key, imbiberPrefix.String()+"/")
	if !ok || rest == "" {
		return false
	}
	raw, err := hex.DecodeString(rest)
	if err != nil {
		return false
	}
	return imbiberKey(model.Identity(raw)).String() == key
}
