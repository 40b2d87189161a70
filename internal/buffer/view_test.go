package buffer

import (
	"testing"

	"github.com/hsaturn/vied/internal/geometry"
	"github.com/hsaturn/vied/internal/resolver"
	"github.com/hsaturn/vied/internal/term"
)

func newTestView(lines ...string) (*Buffer, *WindowBuffer) {
	b := New()
	for i, l := range lines {
		b.SetLine(i+1, l)
	}
	return b, newWindowBuffer(b)
}

func TestDrawRendersLinesAndTilde(t *testing.T) {
	_, wb := newTestView("hello", "world")
	nt := term.NewNullTerminal(10, 5)
	win := geometry.NewWindow(1, 1, 10, 3)

	wb.Draw(win, nt, 0, 0)

	if got := nt.Row(1)[1:6]; got != "hello" {
		t.Errorf("row1 = %q, want %q", got, "hello")
	}
	if got := nt.Row(2)[1:6]; got != "world" {
		t.Errorf("row2 = %q, want %q", got, "world")
	}
	if got := nt.Row(3)[1:2]; got != "~" {
		t.Errorf("row3 = %q, want %q", got, "~")
	}
}

func TestValidateCursorScrollOffInvariant(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "x"
	}
	_, wb := newTestView(lines...)
	nt := term.NewNullTerminal(20, 10)
	win := geometry.NewWindow(1, 1, 20, 8)
	vim := VimSettings{ScrollOff: 3}

	wb.cursor.Row = 8
	wb.pos.Row = 1
	wb.ValidateCursor(win, vim, nt)

	if wb.cursor.Row > win.Height-vim.ScrollOff {
		t.Errorf("cursor.Row = %d, want <= %d (scrolloff respected)", wb.cursor.Row, win.Height-vim.ScrollOff)
	}
}

func TestValidateCursorClampsToBufferBounds(t *testing.T) {
	_, wb := newTestView("only")
	nt := term.NewNullTerminal(20, 10)
	win := geometry.NewWindow(1, 1, 20, 8)
	vim := VimSettings{}

	wb.pos.Row = 50
	wb.ValidateCursor(win, vim, nt)
	if wb.pos.Row != 1 {
		t.Errorf("pos.Row = %d, want clamped to 1", wb.pos.Row)
	}
}

func TestGotoWordSkipsToNextWord(t *testing.T) {
	_, wb := newTestView("foo bar_baz  qux")
	dest := wb.GotoWord(1, geometry.NewCursor(1, 1))
	if dest.Col != 5 {
		t.Errorf("GotoWord forward from col1 = %d, want 5 (start of bar_baz)", dest.Col)
	}
	dest2 := wb.GotoWord(1, dest)
	if dest2.Col != 14 {
		t.Errorf("GotoWord forward from col5 = %d, want 14 (start of qux)", dest2.Col)
	}
}

func TestGotoWordCrossesLineBoundary(t *testing.T) {
	_, wb := newTestView("end", "next")
	line := wb.buff.GetLine(1)
	dest := wb.GotoWord(1, geometry.NewCursor(1, int16(len(line))))
	if dest.Row != 2 || dest.Col != 1 {
		t.Errorf("GotoWord across boundary = %+v, want row 2 col 1", dest)
	}
}

func TestGotoWordStopsAtDocumentStart(t *testing.T) {
	_, wb := newTestView("abc")
	dest := wb.GotoWord(-1, geometry.NewCursor(1, 1))
	if dest.Row != 1 || dest.Col != 1 {
		t.Errorf("GotoWord backward from doc start = %+v, want (1,1)", dest)
	}
}

func TestOnActionDeleteWordAndPutAfter(t *testing.T) {
	_, wb := newTestView("hello world")
	nt := term.NewNullTerminal(40, 10)
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{}

	var clip string
	wb.OnAction(resolver.DeleteWord, win, vim, nt, &clip, nil)
	if got := wb.buff.GetLine(1); got != "world" {
		t.Fatalf("after DeleteWord = %q, want %q", got, "world")
	}
	if clip != "hello " {
		t.Fatalf("clipboard = %q, want %q", clip, "hello ")
	}

	wb.setBuffCol(1)
	wb.OnAction(resolver.PutAfter, win, vim, nt, &clip, nil)
	if got := wb.buff.GetLine(1); got != "whello orld" {
		t.Fatalf("after PutAfter = %q, want %q", got, "whello orld")
	}
}

func TestOnActionDeleteLineAndPutAfterMultiline(t *testing.T) {
	_, wb := newTestView("one", "two", "three")
	nt := term.NewNullTerminal(40, 10)
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{}

	var clip string
	wb.OnAction(resolver.DeleteLine, win, vim, nt, &clip, nil)
	if wb.buff.Lines() != 2 || wb.buff.GetLine(1) != "two" {
		t.Fatalf("after DeleteLine, line1=%q lines=%d", wb.buff.GetLine(1), wb.buff.Lines())
	}

	wb.OnAction(resolver.PutAfter, win, vim, nt, &clip, nil)
	if wb.buff.Lines() != 3 || wb.buff.GetLine(2) != "one" {
		t.Fatalf("after PutAfter, line2=%q lines=%d", wb.buff.GetLine(2), wb.buff.Lines())
	}
}

func TestOnActionJoin(t *testing.T) {
	_, wb := newTestView("foo ", " bar")
	nt := term.NewNullTerminal(40, 10)
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{}

	var clip string
	wb.OnAction(resolver.Join, win, vim, nt, &clip, nil)
	if got := wb.buff.GetLine(1); got != "foo bar" {
		t.Errorf("after Join = %q, want %q", got, "foo bar")
	}
	if wb.buff.Lines() != 1 {
		t.Errorf("Lines() after Join = %d, want 1", wb.buff.Lines())
	}
}

type countingReplayer struct{ calls int }

func (r *countingReplayer) Replay() { r.calls++ }

func TestOnActionRepeatCallsReplayer(t *testing.T) {
	_, wb := newTestView("x")
	nt := term.NewNullTerminal(40, 10)
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{}
	rep := &countingReplayer{}
	var clip string

	wb.OnAction(resolver.Repeat, win, vim, nt, &clip, rep)
	if rep.calls != 1 {
		t.Errorf("Replay() called %d times, want 1", rep.calls)
	}
}

func TestOnKeyInsertModeTypesCharacters(t *testing.T) {
	_, wb := newTestView("ac")
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{Mode: Insert}

	wb.setBuffCol(2)
	wb.OnKey(term.Event{Type: term.EventKey, Key: term.KeyRune, Rune: 'b'}, win, vim)
	if got := wb.buff.GetLine(1); got != "abc" {
		t.Errorf("after typing b = %q, want %q", got, "abc")
	}
}

func TestOnKeyReplaceModeOverwrites(t *testing.T) {
	_, wb := newTestView("abc")
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{Mode: Replace}

	wb.setBuffCol(2)
	wb.OnKey(term.Event{Type: term.EventKey, Key: term.KeyRune, Rune: 'X'}, win, vim)
	if got := wb.buff.GetLine(1); got != "aXc" {
		t.Errorf("after replacing = %q, want %q", got, "aXc")
	}
}

func TestOnKeyReturnInsertModePreservesIndent(t *testing.T) {
	_, wb := newTestView("  helloworld")
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{Mode: Insert}

	wb.setBuffCol(8)
	wb.OnKey(term.Event{Type: term.EventKey, Key: term.KeyEnter}, win, vim)
	if got := wb.buff.GetLine(1); got != "  hello" {
		t.Errorf("line1 = %q, want %q", got, "  hello")
	}
	if got := wb.buff.GetLine(2); got != "  world" {
		t.Errorf("line2 = %q, want %q", got, "  world")
	}
}

func TestOnKeyBackspaceInNormalModeOnlyMoves(t *testing.T) {
	_, wb := newTestView("abc")
	win := geometry.NewWindow(1, 1, 40, 5)
	vim := VimSettings{Mode: Normal}

	wb.setBuffCol(3)
	wb.OnKey(term.Event{Type: term.EventKey, Key: term.KeyBackspace}, win, vim)
	if got := wb.buff.GetLine(1); got != "abc" {
		t.Errorf("NORMAL backspace mutated buffer: %q", got)
	}
	if wb.BuffCursor().Col != 2 {
		t.Errorf("cursor.Col = %d, want 2", wb.BuffCursor().Col)
	}
}
