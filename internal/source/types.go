package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes how a file entered the set.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF endings were rewritten to LF.
	FileNormalizedCRLF
)

// File holds the normalized content of one CDL source.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
