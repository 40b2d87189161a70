package editor

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hsaturn/vied/internal/assist"
	"github.com/hsaturn/vied/internal/buffer"
	"github.com/hsaturn/vied/internal/fsys"
	"github.com/hsaturn/vied/internal/geometry"
	"github.com/hsaturn/vied/internal/resolver"
	"github.com/hsaturn/vied/internal/script"
	"github.com/hsaturn/vied/internal/splitter"
	"github.com/hsaturn/vied/internal/term"
)

// fileView pairs one open Buffer with the WindowBuffer viewing it through
// a particular split and the Wid addressing that split.
type fileView struct {
	wid  splitter.Wid
	buf  *buffer.Buffer
	view *buffer.WindowBuffer
}

// Editor is the application's single top-level coordinator: it has no
// internal lock, unlike most of the teacher's structs, because the core
// is specified as strictly single-threaded and cooperative — the one
// re-entrant case is macro playback, which is bounded recursion within
// the same call frame, not concurrency.
type Editor struct {
	term  term.Terminal
	fs    fsys.FS
	split *splitter.Splitter
	full  geometry.Window

	resolver *resolver.Resolver
	vim      buffer.VimSettings

	files  []*fileView
	active int

	cmdBuf  *buffer.Buffer
	cmdWid  splitter.Wid
	cmdView *buffer.WindowBuffer

	mode         buffer.Mode
	rptCount     int
	lastWasDigit bool
	scmd         string
	cmdline      string

	clipboard string

	record      []term.Event
	lastCommand []term.Event
	playing     bool

	nextOrientation splitter.Orientation
	running         bool

	statusMsg string

	script *script.Engine
	assist assist.Settings
}

// New creates an Editor sized to t's current terminal dimensions. vim
// carries the scroll-off/tab-width settings; table overrides the default
// resolver command table (pass resolver.DefaultTable for the built-in
// one).
func New(t term.Terminal, fs fsys.FS, vim buffer.VimSettings, table string) *Editor {
	cols, rows := t.Size()
	full := geometry.NewWindow(1, 1, int16(cols), int16(rows))

	e := &Editor{
		term:            t,
		fs:              fs,
		split:           splitter.New(int16(rows)),
		full:            full,
		resolver:        resolver.New(table),
		vim:             vim,
		mode:            buffer.Normal,
		nextOrientation: splitter.Vertical,
		running:         true,
	}

	e.cmdBuf = buffer.New(buffer.WithFilename(":"))
	_, e.cmdWid = splitter.Root.Children()
	e.cmdView = e.cmdBuf.AddWindow(e.cmdWid)
	e.script = script.New(e)
	return e
}

// SetAssistSettings configures the enabled flag, model and API-key
// environment variable the :ai command extension uses.
func (e *Editor) SetAssistSettings(s assist.Settings) {
	e.assist = s
}

// Close releases resources the editor owns outside of its buffers,
// currently just the scripting engine's Lua state.
func (e *Editor) Close() {
	e.script.Close()
}

// Running reports whether the editor should keep reading keys.
func (e *Editor) Running() bool {
	return e.running
}

func (e *Editor) activeFile() *fileView {
	if e.active < 0 || e.active >= len(e.files) {
		return nil
	}
	return e.files[e.active]
}

// findBuffer returns an already-open buffer for path, or nil.
func (e *Editor) findBuffer(path string) *fileView {
	for _, f := range e.files {
		if f.buf.Filename() == path {
			return f
		}
	}
	return nil
}

// OpenFile opens path into a buffer and gives it a window. The first
// buffer opened takes the full editing region (the root's side-1 child);
// each subsequent distinct buffer splits the most recently opened
// window, alternating vertical/horizontal orientation and halving the
// split dimension.
func (e *Editor) OpenFile(path string) error {
	if fv := e.findBuffer(path); fv != nil {
		e.active = e.indexOf(fv)
		return nil
	}

	b := buffer.New(buffer.WithErrorSink(e), buffer.WithFilename(path))
	if _, err := b.Read(e.fs, path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		// A launch argument naming a file that doesn't exist yet opens an
		// empty buffer under that name, to be created on first save.
	}

	var wid splitter.Wid
	if len(e.files) == 0 {
		wid, _ = splitter.Root.Children()
	} else {
		prev := e.files[len(e.files)-1]
		win, ok := e.split.CalcWindow(prev.wid, e.full)
		if !ok {
			win = e.full
		}
		var size int16
		if e.nextOrientation == splitter.Vertical {
			size = win.Width / 2
		} else {
			size = win.Height / 2
		}
		if _, ok := e.split.Split(prev.wid, e.nextOrientation, size); !ok {
			wid = prev.wid
		} else {
			c1, c0 := prev.wid.Children()
			wid = c1
			prev.buf.RekeyWindow(prev.wid, c0)
			prev.wid = c0
		}
		if e.nextOrientation == splitter.Vertical {
			e.nextOrientation = splitter.Horizontal
		} else {
			e.nextOrientation = splitter.Vertical
		}
	}

	view := b.AddWindow(wid)
	e.files = append(e.files, &fileView{wid: wid, buf: b, view: view})
	e.active = len(e.files) - 1
	return nil
}

// OpenFiles returns the paths of currently open files, in the order
// they were opened.
func (e *Editor) OpenFiles() []string {
	paths := make([]string, len(e.files))
	for i, f := range e.files {
		paths[i] = f.buf.Filename()
	}
	return paths
}

// ActiveFile returns the path of the currently active file, or "" if
// none is open.
func (e *Editor) ActiveFile() string {
	fv := e.activeFile()
	if fv == nil {
		return ""
	}
	return fv.buf.Filename()
}

// WindowState returns the Wid and current buffer cursor of the window
// viewing path.
func (e *Editor) WindowState(path string) (wid splitter.Wid, cursor geometry.Cursor, ok bool) {
	fv := e.findBuffer(path)
	if fv == nil {
		return 0, geometry.Cursor{}, false
	}
	return fv.wid, fv.view.BuffCursor(), true
}

// RestoreCursor places path's window cursor at (row, col), clamped to
// the buffer's current line count, with the viewport reset to the top
// of the file (pos 1,1).
func (e *Editor) RestoreCursor(path string, row, col int16) {
	fv := e.findBuffer(path)
	if fv == nil {
		return
	}
	if max := int16(fv.buf.Lines()); max > 0 && row > max {
		row = max
	}
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	fv.view.Restore(geometry.NewCursor(1, 1), geometry.NewCursor(row, col))
}

// InsertAtCursor splices text into the active buffer at the cursor,
// used by the scripting layer's vied.insert.
func (e *Editor) InsertAtCursor(text string) {
	if fv := e.activeFile(); fv != nil {
		fv.view.InsertText(text)
	}
}

// CurrentLine returns the active buffer's current line, used by the
// scripting layer's vied.line.
func (e *Editor) CurrentLine() string {
	fv := e.activeFile()
	if fv == nil {
		return ""
	}
	return fv.view.CurrentLine()
}

// MapKey registers lhs as an additional alias for whatever command rhs
// already resolves to, used by the scripting layer's vied.map. It
// reports whether rhs was a recognized command.
func (e *Editor) MapKey(lhs, rhs string) bool {
	return e.resolver.AddAlias(lhs, rhs)
}

// SetActiveFile makes path the active file, if it is open.
func (e *Editor) SetActiveFile(path string) {
	if fv := e.findBuffer(path); fv != nil {
		e.active = e.indexOf(fv)
	}
}

func (e *Editor) indexOf(target *fileView) int {
	for i, f := range e.files {
		if f == target {
			return i
		}
	}
	return -1
}

// SetInitialRow moves the most recently opened buffer's cursor to row n,
// implementing the launch argument's "+N" token.
func (e *Editor) SetInitialRow(n int) {
	fv := e.activeFile()
	if fv == nil {
		return
	}
	win, ok := e.split.CalcWindow(fv.wid, e.full)
	if !ok {
		return
	}
	fv.view.OnAction(resolver.MoveLineBegin, win, e.vim, e.term, &e.clipboard, e)
	for i := 1; i < n; i++ {
		fv.view.OnAction(resolver.MoveDown, win, e.vim, e.term, &e.clipboard, e)
	}
}

// Warn implements buffer.ErrorSink, routing non-fatal buffer warnings
// (such as a stray EOL byte) to the status line the same way a failed
// command-line operation is reported.
func (e *Editor) Warn(format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
}

func geometryWindow(cols, rows int) geometry.Window {
	return geometry.NewWindow(1, 1, int16(cols), int16(rows))
}
