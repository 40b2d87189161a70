// Package fsys is the narrow filesystem abstraction the editor core is
// built against: open for read, create for write, existence checks, and
// path joining. It exists so the buffer package never imports "os"
// directly, keeping the core testable against an in-memory filesystem.
package fsys
