package dna

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"xdao.co/jumpring/model"
)

// DigestSize is the width of the Keccak-256 digest the derivation reads from.
const DigestSize = 32

// Derive returns the first length bytes of keccak256(identity), each reduced
// mod modulus.
//
// length must not exceed DigestSize and modulus must be at least 1; both
// violations are reported as model.KindOutOfRange.
func Derive(identity string, length uint, modulus uint8) ([]byte, error) {
	if err := CheckParams(length, modulus); err != nil {
		return nil, err
	}

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(identity))
	sum := h.Sum(nil)

	out := make([]byte, length)
	for i := range out {
		out[i] = sum[i] % modulus
	}
	return out, nil
}

// CheckParams validates derivation parameters without hashing anything.
func CheckParams(length uint, modulus uint8) error {
	if length > DigestSize {
		return model.NewError(model.KindOutOfRange, fmt.Sprintf("dna length %d exceeds digest width %d", length, DigestSize))
	}
	if modulus == 0 {
		return model.NewError(model.KindOutOfRange, "dna modulus must be at least 1")
	}
	return nil
}
