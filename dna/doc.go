// Package dna derives the fixed-length "cyborg DNA" carried by every imbiber
// record.
//
// Derive is pure: identical inputs always produce identical bytes, with no
// randomness and no dependence on wall-clock time, so records can be
// re-derived for verification or migration without external state.
package dna
