package editor

import (
	"github.com/hsaturn/vied/internal/buffer"
	"github.com/hsaturn/vied/internal/resolver"
	"github.com/hsaturn/vied/internal/term"
)

// OnKey is the editor's single entry point for input: it implements the
// mode state machine and count/record/dot-repeat bookkeeping described
// for the editor component, then routes the key to the command line or
// the active view.
func (e *Editor) OnKey(ev term.Event) {
	if ev.Type == term.EventResize {
		e.full = geometryWindow(ev.Width, ev.Height)
		e.Repaint()
		return
	}
	if ev.Type != term.EventKey {
		return
	}

	switch ev.Key {
	case term.KeyCtrlL:
		e.Repaint()
		return
	case term.KeyCtrlC:
		e.running = false
		return
	}

	if !e.playing {
		e.record = append(e.record, ev)
	}

	if e.mode == buffer.Command {
		e.onCommandKey(ev)
		return
	}

	if isArrow(ev.Key) {
		e.dispatchAction(arrowAction(ev.Key), 1)
		return
	}

	if ev.Key == term.KeyEscape {
		e.onEscape()
		return
	}

	if e.mode.IsEdit() {
		e.onEditKey(ev)
		return
	}

	e.onNormalKey(ev)
}

func isArrow(k term.Key) bool {
	switch k {
	case term.KeyUp, term.KeyDown, term.KeyLeft, term.KeyRight:
		return true
	}
	return false
}

func arrowAction(k term.Key) resolver.Action {
	switch k {
	case term.KeyUp:
		return resolver.MoveUp
	case term.KeyDown:
		return resolver.MoveDown
	case term.KeyLeft:
		return resolver.MoveLeft
	default:
		return resolver.MoveRight
	}
}

func (e *Editor) onEscape() {
	wasEdit := e.mode.IsEdit()
	e.mode = buffer.Normal
	if wasEdit && e.rptCount > 1 {
		e.playRecord(e.rptCount - 1)
	}
	e.resetRecording()
}

// resetRecording clears the count/scmd/record accumulators that a
// transition back to NORMAL mode must not carry forward, so a later
// dot-repeat never replays a stale prefix left over from a finished
// command.
func (e *Editor) resetRecording() {
	e.rptCount = 0
	e.lastWasDigit = false
	e.scmd = ""
	e.record = nil
}

// onNormalKey implements per-key flow step 4 (digit accumulation) and
// step 5 (scmd accumulation + resolver dispatch) of the editor's NORMAL
// mode handling.
func (e *Editor) onNormalKey(ev term.Event) {
	if ev.Key == term.KeyRune && ev.Rune == ':' && e.scmd == "" {
		e.mode = buffer.Command
		e.scmd = ""
		e.cmdline = ""
		return
	}

	if ev.Key == term.KeyRune && ev.Rune >= '0' && ev.Rune <= '9' {
		digit := int(ev.Rune - '0')
		if digit == 0 && e.rptCount == 0 && !e.lastWasDigit {
			// bare '0' is the MOVE_LINE_BEGIN alias, not a count.
		} else {
			e.rptCount = e.rptCount*10 + digit
			e.lastWasDigit = true
			return
		}
	}
	e.lastWasDigit = false

	if ev.Key != term.KeyRune {
		e.onViewKey(ev)
		return
	}

	e.scmd += string(ev.Rune)
	action, status := e.resolver.Lookup(e.scmd)
	switch status {
	case resolver.Unterminated:
		return
	case resolver.Unknown:
		e.scmd = ""
		e.rptCount = 0
		return
	case resolver.Resolved:
		count := 1
		if e.rptCount > 0 {
			count = e.rptCount
		}
		e.scmd = ""
		e.dispatchAction(action, count)
		if action != resolver.Repeat {
			e.rptCount = 0
		}
	}
}

// dispatchAction applies action count times to the active view and
// transitions the mode when the action enters an edit mode.
func (e *Editor) dispatchAction(action resolver.Action, count int) {
	fv := e.activeFile()
	if fv == nil {
		return
	}
	win, ok := e.split.CalcWindow(fv.wid, e.full)
	if !ok {
		return
	}

	for i := 0; i < count; i++ {
		fv.view.OnAction(action, win, e.vim, e.term, &e.clipboard, e)
	}

	switch action {
	case resolver.Insert, resolver.Append, resolver.OpenLine, resolver.Change, resolver.ChangeWord:
		e.mode = buffer.Insert
	case resolver.Replace:
		e.mode = buffer.Replace
	}
	e.vim.Mode = e.mode

	if action != resolver.Repeat && !e.playing {
		e.lastCommand = append([]term.Event(nil), e.record...)
	}
	e.term.Flush()
}

func (e *Editor) onViewKey(ev term.Event) {
	fv := e.activeFile()
	if fv == nil {
		return
	}
	win, ok := e.split.CalcWindow(fv.wid, e.full)
	if !ok {
		return
	}
	e.vim.Mode = e.mode
	fv.view.OnKey(ev, win, e.vim)
	e.term.Flush()
}

func (e *Editor) onEditKey(ev term.Event) {
	e.onViewKey(ev)
}

// Replay implements buffer.Replayer: the '.' action reaches here through
// the active view's OnAction, and replays once the keys recorded since
// the last return to NORMAL, as snapshotted at the latest non-Repeat
// action dispatched outside a replay.
func (e *Editor) Replay() {
	if len(e.lastCommand) == 0 {
		return
	}
	cmd := e.lastCommand
	e.playing = true
	for _, ev := range cmd {
		e.OnKey(ev)
	}
	e.playing = false
}

// playRecord re-feeds the current in-progress record n more times,
// appending a synthetic Esc after each pass so the replay always lands
// back in NORMAL — this is how a "<count><edit-command>...Esc" sequence
// repeats the whole edit, not just the command that opened it.
func (e *Editor) playRecord(n int) {
	if len(e.record) == 0 || n <= 0 {
		return
	}
	cmd := append([]term.Event(nil), e.record...)
	e.playing = true
	for i := 0; i < n; i++ {
		for _, ev := range cmd {
			e.OnKey(ev)
		}
		e.OnKey(term.Event{Type: term.EventKey, Key: term.KeyEscape})
	}
	e.playing = false
}
