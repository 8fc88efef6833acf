package jsonschema

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Canonical returns the canonical JSON form of s: keywords in fixed order,
// map keys sorted, numbers normalized. Two schemas are structurally equal
// exactly when their canonical forms are byte-identical.
func Canonical(s Schema) []byte {
	b, err := Marshal(s)
	if err != nil {
		// Only unencodable Extra values can fail; fall back to a form that
		// never equals a well-formed schema.
		return []byte("!" + err.Error())
	}
	return b
}

// Equal reports deep structural equality of two schemas.
func Equal(a, b Schema) bool {
	return bytes.Equal(Canonical(a), Canonical(b))
}

// Fingerprint hashes the canonical form of s.
func Fingerprint(s Schema) uint64 {
	return xxhash.Sum64(Canonical(s))
}

// Dedupe removes structural duplicates, keeping the first occurrence of each
// schema and the original order otherwise.
func Dedupe(in []Schema) []Schema {
	if len(in) < 2 {
		return in
	}
	seen := make(map[uint64][][]byte, len(in))
	out := make([]Schema, 0, len(in))
next:
	for _, s := range in {
		c := Canonical(s)
		h := xxhash.Sum64(c)
		for _, prev := range seen[h] {
			if bytes.Equal(prev, c) {
				continue next
			}
		}
		seen[h] = append(seen[h], c)
		out = append(out, s)
	}
	return out
}
