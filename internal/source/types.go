package source

type (
	// FileID uniquely identifies a script file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a script file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single script source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a file. Both fields are 1-based;
// zero means the value is unknown.
type LineCol struct {
	Line uint32
	Col  uint32
}
