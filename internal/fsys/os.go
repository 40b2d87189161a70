package fsys

import (
	"io"
	"os"
	"path/filepath"
)

// OSFS is the FS implementation backed by the host operating system.
type OSFS struct{}

// NewOSFS returns an FS backed by the real filesystem.
func NewOSFS() OSFS {
	return OSFS{}
}

func (OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (OSFS) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}
