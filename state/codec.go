package state

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"xdao.co/jumpring/storage"
)

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Marshal encodes v in CBOR core deterministic form. Identical values always
// encode to identical bytes, which the state root depends on.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func unmarshal(b []byte, v any) error {
	if err := cbor.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return nil
}
