// Package app assembles vied's components into a runnable editor:
// configuration, terminal, and the editor core, in that bootstrap
// order, with a reverse-order shutdown that persists the session.
package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/hsaturn/vied/internal/assist"
	"github.com/hsaturn/vied/internal/buffer"
	"github.com/hsaturn/vied/internal/config"
	"github.com/hsaturn/vied/internal/editor"
	"github.com/hsaturn/vied/internal/fsys"
	"github.com/hsaturn/vied/internal/resolver"
	"github.com/hsaturn/vied/internal/session"
	"github.com/hsaturn/vied/internal/term"
)

// Options holds the command line's parsed settings.
type Options struct {
	ConfigPath    string
	WorkspacePath string
	Args          []string // file paths, interleaved with "+N" row markers
	Debug         bool
	LogLevel      string
}

// Application owns the editor's full component graph for one run.
type Application struct {
	logger *Logger
	cfg    config.Settings
	fs     fsys.FS
	term   term.Terminal
	ed     *editor.Editor
	opts   Options
}

// New bootstraps every component in dependency order: logger, config,
// terminal, then the editor core (which owns the splitter tree and
// buffers), then opens the files named on the command line (or restores
// a session). It does not start the event loop; call Run for that.
func New(opts Options) (*Application, error) {
	logger := NewLogger(ParseLogLevel(opts.LogLevel), os.Stderr).WithComponent("app")

	fs := fsys.NewOSFS()

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		return nil, &OperationError{Op: "load config", Err: err}
	}
	logger.Debug("config loaded: tabwidth=%d scrolloff=%d", cfg.Editor.TabWidth, cfg.Editor.ScrollOff)

	t, err := term.NewTcellTerminal()
	if err != nil {
		return nil, &OperationError{Op: "create terminal", Err: err}
	}
	if err := t.Init(); err != nil {
		return nil, &OperationError{Op: "init terminal", Err: err}
	}

	table := resolver.DefaultTable
	if cfg.Keymap != "" {
		table = cfg.Keymap
	}
	vim := buffer.VimSettings{
		ScrollOff:     cfg.Editor.ScrollOff,
		SideScrollOff: cfg.Editor.SideScrollOff,
		TabWidth:      cfg.Editor.TabWidth,
	}
	ed := editor.New(t, fs, vim, table)
	ed.SetAssistSettings(assist.Settings{
		Enabled:   cfg.Assist.Enabled,
		Model:     cfg.Assist.Model,
		APIKeyEnv: cfg.Assist.APIKeyEnv,
	})

	a := &Application{
		logger: logger,
		cfg:    cfg,
		fs:     fs,
		term:   t,
		ed:     ed,
		opts:   opts,
	}

	if err := a.openInitialFiles(); err != nil {
		t.Shutdown()
		return nil, err
	}

	return a, nil
}

// loadConfig resolves the layered configuration: the user config file
// is always an optional layer over the built-in defaults, and the
// project layer above it is an explicit -c path, else $VIED_CONFIG,
// else <workspace>/.vied.toml.
func loadConfig(fs fsys.FS, opts Options) (config.Settings, error) {
	userPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		userPath = fs.Join(home, ".config", "vied", "vied.toml")
	}

	projectPath := opts.ConfigPath
	if projectPath == "" {
		projectPath = os.Getenv("VIED_CONFIG")
	}
	if projectPath == "" && opts.WorkspacePath != "" {
		projectPath = fs.Join(opts.WorkspacePath, ".vied.toml")
	}

	return config.Load(fs, userPath, projectPath)
}

// openInitialFiles opens each file named on the command line, applying
// any preceding "+N" marker as that file's initial cursor row, then
// restores a persisted session if [session] restore is enabled and no
// files were given.
func (a *Application) openInitialFiles() error {
	pendingRow := 0
	opened := false

	for _, arg := range a.opts.Args {
		if strings.HasPrefix(arg, "+") {
			if n, err := strconv.Atoi(arg[1:]); err == nil {
				pendingRow = n
			}
			continue
		}
		if err := a.ed.OpenFile(arg); err != nil {
			return &OperationError{Op: "open", Target: arg, Err: err}
		}
		opened = true
		if pendingRow > 0 {
			a.ed.SetInitialRow(pendingRow)
			pendingRow = 0
		}
	}

	if !opened && a.cfg.Session.Restore {
		a.restoreSession()
	}

	if len(a.ed.OpenFiles()) == 0 {
		return ErrNoFiles
	}
	return nil
}

func (a *Application) sessionPath() string {
	dir := a.opts.WorkspacePath
	if dir == "" {
		dir = "."
	}
	return a.fs.Join(dir, session.FileName)
}

// restoreSession reopens the files named in a persisted session, in
// their saved order (so the splitter reproduces the same layout), then
// clamps each window's cursor to the file's current bounds.
func (a *Application) restoreSession() {
	state, ok, err := session.Load(a.fs, a.sessionPath())
	if err != nil {
		a.logger.Warn("session restore: %v", err)
		return
	}
	if !ok {
		return
	}

	for _, w := range state.Windows {
		if err := a.ed.OpenFile(w.Path); err != nil {
			a.logger.Warn("session restore: open %s: %v", w.Path, err)
			continue
		}
		a.ed.RestoreCursor(w.Path, w.Cursor.Row, w.Cursor.Col)
	}
	for _, w := range state.Windows {
		if w.Wid == state.ActiveWid {
			a.ed.SetActiveFile(w.Path)
			break
		}
	}
}

// persistSession captures each open window's Wid, path and cursor and
// writes it to the workspace session file.
func (a *Application) persistSession() {
	var state session.State
	active := a.ed.ActiveFile()
	for _, path := range a.ed.OpenFiles() {
		wid, cursor, ok := a.ed.WindowState(path)
		if !ok {
			continue
		}
		state.Windows = append(state.Windows, session.WindowState{
			Wid:    wid,
			Path:   path,
			Cursor: cursor,
		})
		if path == active {
			state.ActiveWid = wid
		}
	}
	if err := session.Save(a.fs, a.sessionPath(), state); err != nil {
		a.logger.Warn("session save: %v", err)
	}
}

// Run reads and dispatches keys until the editor terminates, then tears
// down every component in reverse bootstrap order.
func (a *Application) Run() error {
	defer a.shutdown()

	a.ed.Repaint()
	for a.ed.Running() {
		ev, err := a.term.PollEvent()
		if err != nil {
			return &OperationError{Op: "poll event", Err: err}
		}
		a.ed.OnKey(ev)
	}
	return nil
}

func (a *Application) shutdown() {
	if a.cfg.Session.Restore {
		a.persistSession()
	}
	a.ed.Close()
	a.term.Shutdown()
}
