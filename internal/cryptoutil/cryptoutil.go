// Package cryptoutil provides the small hashing helpers used by puzzles and
// tooling. None of this is meant to be cryptographically strong; the iterated
// digest exists to derive stable, opaque identifiers from names.
package cryptoutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/bits"
)

// ErrEmptyKey is returned when an XOR key has zero length.
var ErrEmptyKey = errors.New("cryptoutil: empty key")

// IteratedHash returns a hex digest produced by hashing the input `rounds`
// times. Each round mixes in the little-endian bytes of the round index so
// consecutive rounds differ even on identical input. Rounds below 1 are
// treated as 1.
func IteratedHash(data []byte, rounds int) string {
	if rounds < 1 {
		rounds = 1
	}
	h := data
	for i := 0; i < rounds; i++ {
		m := sha256.New()
		m.Write(h)
		m.Write(roundSalt(i))
		h = m.Sum(nil)
	}
	return hex.EncodeToString(h)
}

// roundSalt encodes i as the minimal little-endian byte slice, always at
// least one byte.
func roundSalt(i int) []byte {
	n := bits.Len(uint(i))/8 + 1
	buf := make([]byte, n)
	v := uint64(i)
	for j := 0; j < n; j++ {
		buf[j] = byte(v)
		v >>= 8
	}
	return buf
}

// XORBytes XORs data with a repeating key.
func XORBytes(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

// Fingerprint returns a short fingerprint: the first 16 hex characters of
// the text's SHA-256 digest.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}
