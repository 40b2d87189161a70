package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for a script run. Only the timeout is enforced, by
// gopher-lua via context cancellation; the instruction limit is stored
// on the Engine but never checked.
const (
	DefaultInstructionLimit = 1_000_000
	DefaultTimeout          = 2 * time.Second
)

// ErrEngineClosed is returned by any Engine method called after Close.
var ErrEngineClosed = errors.New("script engine is closed")

// Host is the editor surface a running script can reach through the
// vied module. Engine never touches internal/editor directly, so the
// application wires an Editor in as a Host at construction time.
type Host interface {
	// InsertAtCursor splices text into the active buffer at the cursor.
	InsertAtCursor(text string)
	// CurrentLine returns the active buffer's current line.
	CurrentLine() string
	// MapKey registers lhs as an alias for the command rhs already
	// resolves to. It reports whether rhs was recognized.
	MapKey(lhs, rhs string) bool
}

// Engine wraps one sandboxed gopher-lua state. It is not safe for
// concurrent use; the editor's single-threaded key loop is its only
// caller.
type Engine struct {
	l                *lua.LState
	instructionLimit int
	timeout          time.Duration
	closed           bool
}

// New creates an Engine bound to host, with only base, table, string
// and math opened — no io, os, debug or package, so a script cannot
// touch the filesystem or spawn processes.
func New(host Host) *Engine {
	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		l.SetGlobal(name, lua.LNil)
	}

	e := &Engine{
		l:                l,
		instructionLimit: DefaultInstructionLimit,
		timeout:          DefaultTimeout,
	}
	e.installVied(host)
	return e
}

func (e *Engine) installVied(host Host) {
	mod := e.l.NewTable()
	e.l.SetFuncs(mod, map[string]lua.LGFunction{
		"insert": func(l *lua.LState) int {
			host.InsertAtCursor(l.CheckString(1))
			return 0
		},
		"line": func(l *lua.LState) int {
			l.Push(lua.LString(host.CurrentLine()))
			return 1
		},
		"map": func(l *lua.LState) int {
			l.CheckString(1) // mode, reserved for a future per-mode table
			lhs := l.CheckString(2)
			rhs := l.CheckString(3)
			l.Push(lua.LBool(host.MapKey(lhs, rhs)))
			return 1
		},
	})
	e.l.SetGlobal("vied", mod)
}

// Run executes code to completion (or until it exceeds the engine's
// timeout) before returning. It is synchronous: no other Lua call may
// be in flight, matching the editor's single-threaded key loop.
func (e *Engine) Run(code string) error {
	if e.closed {
		return ErrEngineClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.l.SetContext(ctx)

	if err := e.doWithRecovery(code); err != nil {
		return err
	}
	return nil
}

func (e *Engine) doWithRecovery(code string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return e.l.DoString(code)
}

// Close releases the underlying Lua state. Further calls to Run return
// ErrEngineClosed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.l.Close()
	e.closed = true
}
