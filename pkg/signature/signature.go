// Package signature builds MinHash signatures from a corpus of documents
// using either the multi-hash or bottom-k strategy, and defines the
// signature value shared by both.
package signature

import (
	"math/big"
	"strings"
)

// Signature is an immutable ordered tuple of permutations signed integers
// produced by a Builder. Two signatures are equal iff all positions match.
//
// Go has no native comparable arbitrary-precision integer, so Signature
// cannot be used directly as a map key; use Key for that purpose (also the
// canonical band rendering used by the LSH index, so banding and signature
// de-duplication share one textual form).
type Signature []*big.Int

// Len returns the number of permutations in the signature.
func (s Signature) Len() int {
	return len(s)
}

// Equal reports whether s and other have the same length and equal entries
// at every position.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i].Cmp(other[i]) != 0 {
			return false
		}
	}

	return true
}

// Key returns the canonical textual rendering of the signature, usable as a
// map key or set element.
func (s Signature) Key() string {
	return Render(s)
}

// Render renders a tuple of integers in the canonical textual form used as
// the wire contract between implementations: "(" + comma-space separated
// decimal integers + (a trailing comma if there is exactly one element) +
// ")". Changing this rendering invalidates every index built with a prior
// version, since it feeds the band bucket hash (see lsh.Index).
func Render(vals []*big.Int) string {
	var b strings.Builder

	b.WriteByte('(')

	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(v.String())
	}

	if len(vals) == 1 {
		b.WriteByte(',')
	}

	b.WriteByte(')')

	return b.String()
}
