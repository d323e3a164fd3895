package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"cdl/internal/project"
	"cdl/internal/sema"
)

// contentDigest hashes the chunk text together with everything else that
// changes the generated VHDL of this component alone.
func contentDigest(text []byte, indentWidth int) project.Digest {
	h := sha256.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint16(hdr[2:], uint16(indentWidth)) //nolint:gosec // indent is small
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(text)
	var out project.Digest
	copy(out[:], h.Sum(nil))
	return out
}

// ComputeUnitHashes walks the check order (dependencies first) so every
// subcomponent hash exists before its users combine it. A component's key
// changes whenever any transitive subcomponent changes.
func (a *Analysis) ComputeUnitHashes(indentWidth int) map[string]project.Digest {
	if a.Sema == nil {
		return nil
	}
	keys := make(map[string]project.Digest, a.Registry.Len())
	for _, name := range a.Sema.Order() {
		c, ok := a.Chunk(name)
		if !ok {
			continue
		}
		text := a.FileSet.Get(c.File).Content[c.Start:c.End]
		deps := dependencyKeys(a.Sema, name, keys)
		keys[name] = project.Combine(contentDigest(text, indentWidth), deps)
	}
	return keys
}

func dependencyKeys(res *sema.Result, name string, keys map[string]project.Digest) []project.Dep {
	names := res.Deps(name)
	out := make([]project.Dep, 0, len(names))
	for _, dep := range names {
		if k, ok := keys[dep]; ok {
			out = append(out, project.Dep{Name: dep, Key: k})
		}
	}
	return out
}
