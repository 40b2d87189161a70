package editor

import (
	"context"
	"strings"

	"github.com/hsaturn/vied/internal/assist"
	"github.com/hsaturn/vied/internal/buffer"
	"github.com/hsaturn/vied/internal/term"
)

// onCommandKey handles keys while in COMMAND mode: they are echoed into
// the command-line buffer rather than dispatched as view actions, per
// the editor's per-key flow step 6.
func (e *Editor) onCommandKey(ev term.Event) {
	switch ev.Key {
	case term.KeyEscape:
		e.mode = buffer.Normal
		e.cmdline = ""
		e.cmdBuf.SetLine(1, "")
		e.resetRecording()
		return
	case term.KeyEnter:
		cmd := e.cmdline
		e.cmdline = ""
		e.cmdBuf.SetLine(1, "")
		e.mode = buffer.Normal
		e.resetRecording()
		if err := e.evaluateCommand(cmd); err != nil {
			e.statusMsg = "Error: " + err.Error()
		}
		return
	case term.KeyBackspace:
		if n := len(e.cmdline); n > 0 {
			e.cmdline = e.cmdline[:n-1]
		}
	case term.KeyRune:
		e.cmdline += string(ev.Rune)
	default:
		return
	}
	e.cmdBuf.SetLine(1, ":"+e.cmdline)
	e.drawStatusStrip()
	e.term.Flush()
}

// evaluateCommand parses and runs one ':' command: one letter optionally
// followed by '!' and/or a path. Letters are not chained: everything after
// the first letter (and its optional '!') is taken as the path, so "wq"
// saves to a file named "q" and does not terminate.
//
//	w [path]   save to path (or the buffer's filename); ! forces overwrite
//	x [path]   w then terminate
//	q          terminate; q! force-closes without save
//	lua {code} run code through the scripting engine
//	ai {prompt} send prompt, with the current line for context, to the
//	            configured assist model, inserting its reply at the cursor
func (e *Editor) evaluateCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	if rest, ok := cutWord(cmd, "lua"); ok {
		return e.script.Run(rest)
	}
	if rest, ok := cutWord(cmd, "ai"); ok {
		return e.runAssist(rest)
	}

	letter := cmd[0]
	rest := cmd[1:]
	force := strings.HasPrefix(rest, "!")
	if force {
		rest = rest[1:]
	}
	path := strings.TrimSpace(rest)

	switch letter {
	case 'w':
		return e.save(path, force)
	case 'x':
		if err := e.save(path, force); err != nil {
			return err
		}
		e.running = false
		return nil
	case 'q':
		e.running = false
		return nil
	default:
		return errUnknownCommand
	}
}

// cutWord reports whether cmd begins with word followed by whitespace
// or end-of-string, returning the remainder with leading space trimmed.
func cutWord(cmd, word string) (rest string, ok bool) {
	if cmd == word {
		return "", true
	}
	if strings.HasPrefix(cmd, word+" ") {
		return strings.TrimSpace(cmd[len(word):]), true
	}
	return "", false
}

// runAssist sends prompt, with the active buffer's current line for
// context, to the configured AI model and inserts its reply at the
// cursor.
func (e *Editor) runAssist(prompt string) error {
	reply, err := assist.Ask(context.Background(), e.assist, prompt, e.CurrentLine())
	if err != nil {
		return err
	}
	e.InsertAtCursor(reply)
	return nil
}

func (e *Editor) save(path string, force bool) error {
	fv := e.activeFile()
	if fv == nil {
		return errNoActiveBuffer
	}
	ok, err := fv.buf.Save(e.fs, path, force)
	if err != nil {
		return err
	}
	if !ok {
		return errSaveRefused
	}
	return nil
}
