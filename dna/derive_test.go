package dna

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/model"
)

func TestDeriveDeterministic(t *testing.T) {
	a, err := Derive("wasm1imbiber", 8, 10)
	require.NoError(t, err)
	b, err := Derive("wasm1imbiber", 8, 10)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Derive("wasm1traveler", 8, 10)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestDeriveKnownVectors(t *testing.T) {
	cases := []struct {
		identity string
		length   uint
		modulus  uint8
		want     []byte
	}{
		// keccak256("hello") = 1c8aff950685c2ed...
		{"hello", 8, 10, []byte{8, 8, 5, 9, 6, 3, 4, 7}},
		{"hello", 4, 255, []byte{28, 138, 0, 149}},
		{"wasm1imbiber", 8, 10, []byte{2, 8, 5, 4, 2, 2, 6, 3}},
		{"wasm1traveler", 8, 10, []byte{3, 2, 7, 7, 6, 3, 3, 3}},
		{"hello", 3, 1, []byte{0, 0, 0}},
		{"hello", 0, 7, []byte{}},
	}
	for _, tc := range cases {
		got, err := Derive(tc.identity, tc.length, tc.modulus)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "Derive(%q, %d, %d)", tc.identity, tc.length, tc.modulus)
	}
}

func TestDeriveOutputLength(t *testing.T) {
	for length := uint(0); length <= DigestSize; length++ {
		got, err := Derive("wasm1imbiber", length, 255)
		require.NoError(t, err)
		require.Len(t, got, int(length))
		for _, b := range got {
			require.Less(t, b, uint8(255))
		}
	}
}

func TestDeriveRejectsOutOfRange(t *testing.T) {
	_, err := Derive("wasm1imbiber", DigestSize+1, 10)
	require.True(t, model.IsKind(err, model.KindOutOfRange), "got %v", err)

	_, err = Derive("wasm1imbiber", 8, 0)
	require.True(t, model.IsKind(err, model.KindOutOfRange), "got %v", err)
}
