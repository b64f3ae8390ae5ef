package cidutil

import (
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
)

func TestCodecsDiffer(t *testing.T) {
	data := []byte("state")

	raw, err := RawSHA256(data)
	require.NoError(t, err)
	dag, err := DagCBORSHA256(data)
	require.NoError(t, err)

	require.Equal(t, uint64(cid.Raw), raw.Prefix().Codec)
	require.Equal(t, uint64(cid.DagCBOR), dag.Prefix().Codec)
	require.Equal(t, raw.Hash(), dag.Hash())
	require.NotEqual(t, raw, dag)
}

func TestDeterministic(t *testing.T) {
	a, err := DagCBORSHA256([]byte{0x80})
	require.NoError(t, err)
	b, err := DagCBORSHA256([]byte{0x80})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Equal(t, uint64(1), a.Version())
}
