package buffer

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hsaturn/vied/internal/fsys"
	"github.com/hsaturn/vied/internal/splitter"
)

// ErrorSink receives non-fatal warnings produced while reading a file,
// such as a stray EOL byte that didn't match the file's inferred line
// ending. A nil sink is valid and discards warnings.
type ErrorSink interface {
	Warn(format string, args ...any)
}

// Option configures a new Buffer.
type Option func(*Buffer)

// WithErrorSink routes Read's non-fatal warnings to sink instead of
// discarding them.
func WithErrorSink(sink ErrorSink) Option {
	return func(b *Buffer) { b.errSink = sink }
}

// WithFilename pre-sets the buffer's filename, as used for the scratch
// command-line buffer keyed as ":" which is never read from disk.
func WithFilename(name string) Option {
	return func(b *Buffer) { b.filename = name }
}

// Buffer is an in-memory document: a 1-based, gapless mapping from line
// number to line text, plus the end-of-line convention inferred from
// whatever was last read from disk.
type Buffer struct {
	mu       sync.RWMutex
	lines    map[int]string
	filename string
	cr1, cr2 byte
	modified bool
	wbuffs   map[splitter.Wid]*WindowBuffer
	errSink  ErrorSink
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:  make(map[int]string),
		wbuffs: make(map[splitter.Wid]*WindowBuffer),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Buffer) warn(format string, args ...any) {
	if b.errSink != nil {
		b.errSink.Warn(format, args...)
	}
}

// Filename returns the buffer's current filesystem path, empty for
// scratch buffers.
func (b *Buffer) Filename() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filename
}

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// Lines returns the maximum line number present, or 0 if the buffer is
// empty.
func (b *Buffer) Lines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.linesLocked()
}

func (b *Buffer) linesLocked() int {
	max := 0
	for n := range b.lines {
		if n > max {
			max = n
		}
	}
	return max
}

// GetLine returns line n, or an empty string if it is absent. It never
// mutates the buffer.
func (b *Buffer) GetLine(n int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines[n]
}

// SetLine writes text as the content of line n and marks the buffer
// modified.
func (b *Buffer) SetLine(n int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines[n] = text
	b.modified = true
}

// InsertLine shifts lines [n..last] down by one, leaving a new empty
// line at n. Inserting past last+1 is idempotent: it just appends an
// empty line at last+1 rather than leaving a gap.
func (b *Buffer) InsertLine(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	last := b.linesLocked()
	if n > last+1 {
		n = last + 1
	}
	for i := last; i >= n; i-- {
		b.lines[i+1] = b.lines[i]
	}
	b.lines[n] = ""
	b.modified = true
}

// DeleteLine removes line n, shifting [n+1..last] up by one, and returns
// the removed text. It is a no-op returning "" if n is past the last
// line.
func (b *Buffer) DeleteLine(n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	last := b.linesLocked()
	if n > last || n < 1 {
		return ""
	}
	removed := b.lines[n]
	for i := n; i < last; i++ {
		b.lines[i] = b.lines[i+1]
	}
	delete(b.lines, last)
	b.modified = true
	return removed
}

// AddWindow creates and registers a new WindowBuffer viewing b through
// wid, unless one already exists for wid, in which case it returns nil.
func (b *Buffer) AddWindow(wid splitter.Wid) *WindowBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.wbuffs[wid]; exists {
		return nil
	}
	wb := newWindowBuffer(b)
	b.wbuffs[wid] = wb
	return wb
}

// RemoveWindow drops the WindowBuffer registered for wid, if any.
func (b *Buffer) RemoveWindow(wid splitter.Wid) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.wbuffs, wid)
}

// RekeyWindow moves the WindowBuffer registered for oldWid to newWid,
// used when a window's leaf gets split and its remaining half is
// re-addressed under a new Wid.
func (b *Buffer) RekeyWindow(oldWid, newWid splitter.Wid) {
	b.mu.Lock()
	defer b.mu.Unlock()
	wb, ok := b.wbuffs[oldWid]
	if !ok {
		return
	}
	delete(b.wbuffs, oldWid)
	b.wbuffs[newWid] = wb
}

// GetWindow returns the WindowBuffer registered for wid, or nil.
func (b *Buffer) GetWindow(wid splitter.Wid) *WindowBuffer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.wbuffs[wid]
}

// Read loads path, appending lines to the buffer and inferring its
// end-of-line convention. It reports true on successful open; I/O
// errors opening the file are returned as the second value. EOL bytes
// that contradict an already-established convention are reported
// through the buffer's error sink and dropped rather than treated as a
// line break.
func (b *Buffer) Read(fs fsys.FS, path string) (bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var data bytes.Buffer
	if _, err := data.ReadFrom(f); err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.filename = path
	b.load(data.Bytes())
	return true, nil
}

// load scans raw bytes into lines, inferring cr1/cr2 as described in
// the buffer's EOL-detection rules. Must be called with b.mu held.
func (b *Buffer) load(data []byte) {
	lineNo := 1
	var cur bytes.Buffer
	i, n := 0, len(data)

	isEOLByte := func(c byte) bool { return c == '\r' || c == '\n' }

	for i < n {
		c := data[i]
		if !isEOLByte(c) {
			cur.WriteByte(c)
			i++
			continue
		}

		consumed, ok := b.consumeEOL(data, i)
		if !ok {
			b.warn("buffer: stray EOL byte %q at offset %d, dropped", c, i)
			i++
			continue
		}
		b.lines[lineNo] = cur.String()
		lineNo++
		cur.Reset()
		i += consumed
	}
	if cur.Len() > 0 {
		b.lines[lineNo] = cur.String()
	}
}

// consumeEOL inspects data at offset i (data[i] is known to be '\r' or
// '\n') and returns how many bytes the line terminator there consumes,
// establishing cr1/cr2 on the first call. It returns ok=false if the
// byte at i contradicts an already-established convention.
func (b *Buffer) consumeEOL(data []byte, i int) (consumed int, ok bool) {
	c := data[i]
	next := byte(0)
	if i+1 < len(data) {
		next = data[i+1]
	}

	if b.cr1 == 0 {
		b.cr1 = c
		if next != 0 && next != c && (next == '\r' || next == '\n') {
			b.cr2 = next
			return 2, true
		}
		return 1, true
	}

	if c == b.cr1 {
		if b.cr2 != 0 {
			if next == b.cr2 {
				return 2, true
			}
			return 0, false
		}
		return 1, true
	}
	if b.cr2 != 0 && c == b.cr2 {
		return 1, true
	}
	return 0, false
}

// eol returns the buffer's line terminator bytes, defaulting to "\r\n"
// if none was ever inferred (an empty or newly created buffer).
func (b *Buffer) eol() []byte {
	if b.cr1 == 0 {
		return []byte{'\r', '\n'}
	}
	if b.cr2 == 0 {
		return []byte{b.cr1}
	}
	return []byte{b.cr1, b.cr2}
}

// Save writes the buffer to path. If path is empty it writes to the
// buffer's own filename, always overwriting. Otherwise it writes to
// path only if force is true or the file does not already exist. It
// returns false (with ErrExists) if the write would silently overwrite
// an existing file without force.
func (b *Buffer) Save(fs fsys.FS, path string, force bool) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	target := path
	if target == "" {
		target = b.filename
		force = true
	} else if !force && fs.Exists(target) {
		return false, ErrExists
	}

	w, err := fs.Create(target)
	if err != nil {
		return false, err
	}
	defer w.Close()

	eol := b.eol()
	last := b.linesLocked()
	for n := 1; n <= last; n++ {
		if _, err := w.Write([]byte(b.lines[n])); err != nil {
			return false, err
		}
		if _, err := w.Write(eol); err != nil {
			return false, err
		}
	}

	b.filename = target
	b.modified = false
	return true, nil
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer{filename=%q, lines=%d, modified=%v}", b.filename, b.linesLocked(), b.modified)
}
