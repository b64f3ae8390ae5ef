package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// RawSHA256 returns a CIDv1 using the "raw" multicodec and a sha2-256
// multihash. Snapshot entries are addressed this way.
func RawSHA256(data []byte) (cid.Cid, error) {
	return sum(cid.Raw, data)
}

// DagCBORSHA256 returns a CIDv1 using the "dag-cbor" multicodec and a
// sha2-256 multihash. The state root is addressed this way, over the
// deterministic CBOR encoding of the state entries.
func DagCBORSHA256(data []byte) (cid.Cid, error) {
	return sum(cid.DagCBOR, data)
}

func sum(codec uint64, data []byte) (cid.Cid, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(codec, mh), nil
}
