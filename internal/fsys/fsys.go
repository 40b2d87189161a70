package fsys

import "io"

// FS is the filesystem surface the editor core depends on. It mirrors the
// handful of operations the upstream implementation needed from its host
// filesystem: open, exists, read/write, and a working-directory-relative
// join.
type FS interface {
	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
	// Create opens path for writing, truncating any existing content.
	Create(path string) (io.WriteCloser, error)
	// Exists reports whether path refers to an existing file.
	Exists(path string) bool
	// Join joins path elements using the host's separator.
	Join(elem ...string) string
}
