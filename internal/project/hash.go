package project

import (
	"cmp"
	"crypto/sha256"
	"encoding/binary"
	"slices"
)

// Digest is the cache key of one component (same size as source.File.Hash).
type Digest [32]byte

// Dep is a subcomponent together with its own key.
type Dep struct {
	Name string
	Key  Digest
}

// Combine builds a component key from its own content digest and the keys of
// its subcomponents. deps are hashed sorted by name, so the caller's order
// does not matter, while renaming an instance target does.
func Combine(content Digest, deps []Dep) Digest {
	sorted := slices.SortedFunc(slices.Values(deps), func(a, b Dep) int {
		return cmp.Compare(a.Name, b.Name)
	})
	h := sha256.New()
	_, _ = h.Write(content[:])
	var n [4]byte
	for _, d := range sorted {
		// длина перед именем: ("ab","c") и ("a","bc") не совпадут
		binary.LittleEndian.PutUint32(n[:], uint32(len(d.Name))) //nolint:gosec // names are short
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(d.Name))
		_, _ = h.Write(d.Key[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
