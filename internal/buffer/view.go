package buffer

import (
	"fmt"
	"strings"

	"github.com/hsaturn/vied/internal/geometry"
	"github.com/hsaturn/vied/internal/resolver"
	"github.com/hsaturn/vied/internal/term"
)

// Replayer replays a previously recorded key sequence. It is implemented
// by the editor's macro recorder; WindowBuffer only calls it in response
// to the REPEAT action.
type Replayer interface {
	Replay()
}

// WindowBuffer is a viewport plus cursor over a Buffer. pos is the
// buffer coordinate of the top-left visible character; cursor is
// screen-relative within the window. BuffCursor derives the logical
// editing position from the two.
type WindowBuffer struct {
	pos    geometry.Cursor
	cursor geometry.Cursor
	buff   *Buffer
}

func newWindowBuffer(buff *Buffer) *WindowBuffer {
	return &WindowBuffer{
		pos:    geometry.NewCursor(1, 1),
		cursor: geometry.NewCursor(1, 1),
		buff:   buff,
	}
}

// BuffCursor returns the buffer coordinate currently being edited:
// cursor + pos - (1,1).
func (wb *WindowBuffer) BuffCursor() geometry.Cursor {
	return wb.cursor.Add(wb.pos).Sub(geometry.NewCursor(1, 1))
}

// InsertText splices text into the current line at the cursor column,
// as if each byte had been typed in Insert mode, and advances the
// cursor past it. Used by the scripting layer's vied.insert, which
// edits outside of any key event.
func (wb *WindowBuffer) InsertText(text string) {
	if text == "" {
		return
	}
	bc := wb.BuffCursor()
	line := wb.buff.GetLine(int(bc.Row))
	col0 := clampCol(bc.Col, line)
	wb.buff.SetLine(int(bc.Row), line[:col0]+text+line[col0:])
	wb.setBuffCol(bc.Col + int16(len(text)))
}

// CurrentLine returns the text of the line the cursor is on.
func (wb *WindowBuffer) CurrentLine() string {
	return wb.buff.GetLine(int(wb.BuffCursor().Row))
}

// Restore sets the window's viewport origin and buffer cursor directly,
// used when reopening a window from a persisted session rather than
// starting at the top of the file.
func (wb *WindowBuffer) Restore(pos geometry.Cursor, bufCursor geometry.Cursor) {
	wb.pos = pos
	wb.setBuffRow(bufCursor.Row)
	wb.setBuffCol(bufCursor.Col)
}

func (wb *WindowBuffer) setBuffCol(col int16) {
	if col < 1 {
		col = 1
	}
	wb.cursor.Col = col - wb.pos.Col + 1
}

func (wb *WindowBuffer) setBuffRow(row int16) {
	if row < 1 {
		row = 1
	}
	wb.cursor.Row = row - wb.pos.Row + 1
}

// Draw renders win's visible slice of the buffer. first==0 requests a
// full redraw of every visible row; otherwise first/last are buffer
// line numbers, clipped to the currently visible range.
func (wb *WindowBuffer) Draw(win geometry.Window, t term.Terminal, first, last int) {
	t.HideCursor()
	defer t.ShowCursor()

	fullRedraw := first == 0
	var rowFrom, rowTo int
	if fullRedraw {
		rowFrom, rowTo = 0, int(win.Height)-1
	} else {
		viewTop := int(wb.pos.Row)
		viewBottom := viewTop + int(win.Height) - 1
		f, l := first, last
		if f < viewTop {
			f = viewTop
		}
		if l > viewBottom {
			l = viewBottom
		}
		if f > l {
			return
		}
		rowFrom = f - viewTop
		rowTo = l - viewTop
	}

	for r := rowFrom; r <= rowTo; r++ {
		bufLine := int(wb.pos.Row) + r
		screenRow := int(win.Top) + r
		wb.drawRow(win, t, screenRow, bufLine)
	}

	if fullRedraw {
		wb.drawStatusLine(win, t)
	}
}

func (wb *WindowBuffer) drawRow(win geometry.Window, t term.Terminal, screenRow, bufLine int) {
	width := int(win.Width)
	var content string
	if bufLine > wb.buff.Lines() {
		content = "~"
	} else {
		line := wb.buff.GetLine(bufLine)
		start := int(wb.pos.Col) - 1
		if start < 0 {
			start = 0
		}
		if start > len(line) {
			start = len(line)
		}
		end := start + width
		if end > len(line) {
			end = len(line)
		}
		content = line[start:end]
	}
	if len(content) > width {
		content = content[:width]
	}
	if pad := width - len(content); pad > 0 {
		content += strings.Repeat(" ", pad)
	}
	t.WriteStyled(screenRow, int(win.Left), content, term.Default)
}

func (wb *WindowBuffer) drawStatusLine(win geometry.Window, t term.Terminal) {
	_, rows := t.Size()
	statusRow := int(win.Top) + int(win.Height)
	if statusRow >= rows {
		return
	}

	bc := wb.BuffCursor()
	left := fmt.Sprintf("%d,%d", bc.Row, bc.Col)
	name := wb.buff.Filename()
	if wb.buff.Modified() {
		name += "*"
	}

	width := int(win.Width)
	line := left
	if pad := width - len(left) - len(name); pad > 0 {
		line += strings.Repeat(" ", pad) + name
	} else {
		avail := width - len(left)
		if avail < 0 {
			avail = 0
		}
		if len(name) > avail {
			name = name[len(name)-avail:]
		}
		line += name
	}
	if len(line) > width {
		line = line[:width]
	}
	t.WriteStyled(statusRow, int(win.Left), line, term.Default)
}

// ValidateCursor enforces the scroll and clamp invariants described for
// the view: cursor stays inside the window, scroll-off margins are
// respected where possible, pos stays within the buffer, and the
// terminal cursor is finally placed at the resulting screen position.
func (wb *WindowBuffer) ValidateCursor(win geometry.Window, vim VimSettings, t term.Terminal) {
	changed := false

	if wb.cursor.Col < 1 {
		delta := 1 - wb.cursor.Col
		wb.cursor.Col = 1
		if wb.pos.Col-delta >= 1 {
			wb.pos.Col -= delta
			changed = true
		} else if wb.pos.Col > 1 {
			wb.cursor.Col += wb.pos.Col - 1
			wb.pos.Col = 1
			changed = true
		}
	} else if wb.cursor.Col > win.Width {
		delta := wb.cursor.Col - win.Width
		wb.cursor.Col = win.Width
		wb.pos.Col += delta
		changed = true
	}
	if so := vim.SideScrollOff; so > 0 {
		if wb.cursor.Col-so < 1 && wb.pos.Col > 1 {
			want := so - wb.cursor.Col + 1
			if want > wb.pos.Col-1 {
				want = wb.pos.Col - 1
			}
			if want > 0 {
				wb.pos.Col -= want
				wb.cursor.Col += want
				changed = true
			}
		} else if wb.cursor.Col+so > win.Width {
			want := wb.cursor.Col + so - win.Width
			wb.pos.Col += want
			wb.cursor.Col -= want
			changed = true
		}
	}

	if wb.cursor.Row < 1 {
		delta := 1 - wb.cursor.Row
		wb.cursor.Row = 1
		if wb.pos.Row-delta >= 1 {
			wb.pos.Row -= delta
			changed = true
		} else if wb.pos.Row > 1 {
			wb.cursor.Row += wb.pos.Row - 1
			wb.pos.Row = 1
			changed = true
		}
	} else if wb.cursor.Row > win.Height {
		delta := wb.cursor.Row - win.Height
		wb.cursor.Row = win.Height
		wb.pos.Row += delta
		changed = true
	}
	if so := vim.ScrollOff; so > 0 {
		if wb.cursor.Row-so < 1 && wb.pos.Row > 1 {
			want := so - wb.cursor.Row + 1
			if want > wb.pos.Row-1 {
				want = wb.pos.Row - 1
			}
			if want > 0 {
				wb.pos.Row -= want
				wb.cursor.Row += want
				changed = true
			}
		} else if wb.cursor.Row+so > win.Height {
			want := wb.cursor.Row + so - win.Height
			wb.pos.Row += want
			wb.cursor.Row -= want
			changed = true
		}
	}

	maxLine := int16(wb.buff.Lines())
	if maxLine < 1 {
		maxLine = 1
	}
	if wb.pos.Row < 1 {
		wb.pos.Row = 1
		changed = true
	}
	if wb.pos.Row > maxLine {
		wb.pos.Row = maxLine
		changed = true
	}
	if wb.pos.Col < 1 {
		wb.pos.Col = 1
		changed = true
	}
	curLineLen := int16(len(wb.buff.GetLine(int(wb.pos.Row))))
	if curLineLen > 0 && wb.pos.Col > curLineLen {
		wb.pos.Col = curLineLen
		changed = true
	}

	if changed {
		wb.Draw(win, t, 0, 0)
	} else {
		wb.drawStatusLine(win, t)
	}

	t.MoveCursor(int(win.Top)+int(wb.cursor.Row)-1, int(win.Left)+int(wb.cursor.Col)-1)
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func charClass(line string, col0 int) int {
	if col0 < 0 || col0 >= len(line) {
		return 0
	}
	if isWordByte(line[col0]) {
		return 1
	}
	return 0
}

// GotoWord returns the position reached by moving one word in direction
// dir (+1 forward, -1 backward) from cur: first the run of the current
// character class is skipped, then the run of the opposite class, so the
// result lands on the first character of the next word. At a line
// boundary, forward motion descends to column 1 of the next line and
// backward motion ascends to the last column of the previous line; at a
// document boundary the motion stops there instead.
func (wb *WindowBuffer) GotoWord(dir int, cur geometry.Cursor) geometry.Cursor {
	row := int(cur.Row)
	col := int(cur.Col) - 1
	line := wb.buff.GetLine(row)

	step := func() bool {
		if dir > 0 {
			if col < len(line) {
				col++
				return true
			}
			if row >= wb.buff.Lines() {
				return false
			}
			row++
			line = wb.buff.GetLine(row)
			col = 0
			return true
		}
		if col > 0 {
			col--
			return true
		}
		if row <= 1 {
			return false
		}
		row--
		line = wb.buff.GetLine(row)
		col = len(line) - 1
		if col < 0 {
			col = 0
		}
		return true
	}

	start := charClass(line, col)
	for charClass(line, col) == start {
		if !step() {
			return geometry.NewCursor(int16(row), int16(col+1))
		}
	}
	opp := charClass(line, col)
	for charClass(line, col) == opp {
		if !step() {
			break
		}
	}
	return geometry.NewCursor(int16(row), int16(col+1))
}

// deleteRange removes the text between from and to (order-independent)
// and returns it, joining lines with "\r" the way clipboard content
// keeps multi-line spans distinguishable from single-line ones.
func (wb *WindowBuffer) deleteRange(from, to geometry.Cursor) string {
	if to.Row < from.Row || (to.Row == from.Row && to.Col < from.Col) {
		from, to = to, from
	}

	if from.Row == to.Row {
		line := wb.buff.GetLine(int(from.Row))
		f, t := clampCol(from.Col, line), clampCol(to.Col, line)
		if f > t {
			f, t = t, f
		}
		removed := line[f:t]
		wb.buff.SetLine(int(from.Row), line[:f]+line[t:])
		return removed
	}

	firstLine := wb.buff.GetLine(int(from.Row))
	lastLine := wb.buff.GetLine(int(to.Row))
	f := clampCol(from.Col, firstLine)
	t := clampCol(to.Col, lastLine)

	var removed strings.Builder
	removed.WriteString(firstLine[f:])
	removed.WriteString("\r")
	for r := int(from.Row) + 1; r < int(to.Row); r++ {
		removed.WriteString(wb.buff.GetLine(r))
		removed.WriteString("\r")
	}
	removed.WriteString(lastLine[:t])

	wb.buff.SetLine(int(from.Row), firstLine[:f]+lastLine[t:])
	for r := int(from.Row) + 1; r <= int(to.Row); r++ {
		wb.buff.DeleteLine(int(from.Row) + 1)
	}
	return removed.String()
}

func clampCol(col int16, line string) int {
	c := int(col) - 1
	if c < 0 {
		c = 0
	}
	if c > len(line) {
		c = len(line)
	}
	return c
}

func (wb *WindowBuffer) join(row int) {
	if row >= wb.buff.Lines() {
		return
	}
	cur := strings.TrimRight(wb.buff.GetLine(row), " ")
	next := strings.TrimLeft(wb.buff.DeleteLine(row+1), " ")
	wb.buff.SetLine(row, cur+" "+next)
}

func (wb *WindowBuffer) put(bc geometry.Cursor, after bool, clip string) {
	if clip == "" {
		return
	}
	if strings.Contains(clip, "\r") {
		segments := strings.Split(strings.TrimSuffix(clip, "\r"), "\r")
		insertAt := int(bc.Row)
		if after {
			insertAt++
		}
		for i, seg := range segments {
			wb.buff.InsertLine(insertAt + i)
			wb.buff.SetLine(insertAt+i, seg)
		}
		wb.setBuffRow(int16(insertAt))
		wb.setBuffCol(1)
		return
	}

	line := wb.buff.GetLine(int(bc.Row))
	col0 := clampCol(bc.Col, line)
	if after && col0 < len(line) {
		col0++
	}
	wb.buff.SetLine(int(bc.Row), line[:col0]+clip+line[col0:])
	wb.setBuffCol(bc.Col + int16(len(clip)))
}

// OnAction applies one resolved Action: it mutates the buffer and/or
// cursor, redraws the affected range (widened to the rest of the buffer
// when the action changed the line count), then validates the cursor.
// clip is the editor's shared clipboard, owned by the editor instance
// and passed in mutably rather than kept as view state, since yank/delete
// registers are shared across every view onto every buffer.
func (wb *WindowBuffer) OnAction(action resolver.Action, win geometry.Window, vim VimSettings, t term.Terminal, clip *string, replayer Replayer) {
	before := wb.buff.Lines()
	bc := wb.BuffCursor()
	row := bc.Row

	switch action {
	case resolver.MoveLeft:
		wb.cursor.Col--
	case resolver.MoveRight:
		wb.cursor.Col++
	case resolver.MoveUp:
		wb.cursor.Row--
	case resolver.MoveDown:
		wb.cursor.Row++
	case resolver.MoveLineBegin:
		wb.setBuffCol(1)
	case resolver.MoveLineEnd:
		line := wb.buff.GetLine(int(row))
		end := int16(len(line))
		if end < 1 {
			end = 1
		}
		wb.setBuffCol(end)
	case resolver.MoveDocEnd:
		wb.setBuffRow(int16(wb.buff.Lines()))
	case resolver.NextWord, resolver.PrevWord:
		dir := 1
		if action == resolver.PrevWord {
			dir = -1
		}
		dest := wb.GotoWord(dir, bc)
		wb.setBuffRow(dest.Row)
		wb.setBuffCol(dest.Col)
	case resolver.Append:
		wb.setBuffCol(bc.Col + 1)
	case resolver.Insert, resolver.Replace:
		// mode transition is the editor's responsibility; no motion here.
	case resolver.OpenLine:
		wb.buff.InsertLine(int(row) + 1)
		wb.setBuffRow(row + 1)
		wb.setBuffCol(1)
	case resolver.Delete:
		line := wb.buff.GetLine(int(row))
		col0 := clampCol(bc.Col, line)
		if col0 < len(line) {
			*clip = string(line[col0])
			newLine := line[:col0] + line[col0+1:]
			wb.buff.SetLine(int(row), newLine)
			if col0 == len(newLine) && col0 > 0 {
				wb.setBuffCol(bc.Col - 1)
			}
		}
	case resolver.DeleteLine:
		*clip = wb.buff.GetLine(int(row)) + "\r"
		wb.buff.DeleteLine(int(row))
	case resolver.DeleteWord:
		dest := wb.GotoWord(1, bc)
		*clip = wb.deleteRange(bc, dest)
		wb.setBuffRow(bc.Row)
		wb.setBuffCol(bc.Col)
	case resolver.Change:
		line := wb.buff.GetLine(int(row))
		end := geometry.NewCursor(row, int16(len(line))+1)
		*clip = wb.deleteRange(bc, end)
		wb.setBuffCol(bc.Col)
	case resolver.ChangeWord:
		dest := wb.GotoWord(1, bc)
		*clip = wb.deleteRange(bc, dest)
		wb.setBuffCol(bc.Col)
	case resolver.Join:
		wb.join(int(row))
	case resolver.CopyLine:
		*clip = wb.buff.GetLine(int(row)) + "\r"
	case resolver.CopyWord:
		// reserved; not yet implemented, per spec.
	case resolver.PutAfter:
		wb.put(bc, true, *clip)
	case resolver.PutBefore:
		wb.put(bc, false, *clip)
	case resolver.Repeat:
		if replayer != nil {
			replayer.Replay()
		}
	case resolver.Undo, resolver.SearchNext, resolver.DeleteTill, resolver.Quit:
		// reserved; not yet implemented, per spec.
	}

	after := wb.buff.Lines()
	first, last := int(row), int(row)
	if after != before {
		last = after
		if last < first {
			last = first
		}
	}
	wb.Draw(win, t, first, last)
	wb.ValidateCursor(win, vim, t)
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// OnKey handles the keys that don't go through the action resolver:
// Return, Home, End, Backspace, Delete, Tab, and (in an edit mode)
// printable bytes. In NORMAL mode these keys move the cursor without
// editing; in INSERT/REPLACE they edit the buffer too.
func (wb *WindowBuffer) OnKey(ev term.Event, win geometry.Window, vim VimSettings) {
	editMode := vim.Mode.IsEdit()
	bc := wb.BuffCursor()

	switch ev.Key {
	case term.KeyEnter:
		if editMode {
			line := wb.buff.GetLine(int(bc.Row))
			col0 := clampCol(bc.Col, line)
			indent := leadingWhitespace(line)
			wb.buff.SetLine(int(bc.Row), line[:col0])
			wb.buff.InsertLine(int(bc.Row) + 1)
			wb.buff.SetLine(int(bc.Row)+1, indent+line[col0:])
			wb.setBuffRow(bc.Row + 1)
			wb.setBuffCol(int16(len(indent)) + 1)
		} else {
			wb.setBuffRow(bc.Row + 1)
			wb.setBuffCol(1)
		}
	case term.KeyHome:
		wb.cursor.Col = 1
		wb.pos.Col = 1
	case term.KeyEnd:
		line := wb.buff.GetLine(int(bc.Row))
		end := int16(len(line))
		if end < 1 {
			end = 1
		}
		wb.setBuffCol(end)
	case term.KeyBackspace:
		if bc.Col > 1 {
			line := wb.buff.GetLine(int(bc.Row))
			col0 := clampCol(bc.Col, line)
			if editMode && col0 > 0 && col0-1 < len(line) {
				wb.buff.SetLine(int(bc.Row), line[:col0-1]+line[col0:])
			}
			wb.setBuffCol(bc.Col - 1)
		}
	case term.KeyDelete:
		if editMode {
			line := wb.buff.GetLine(int(bc.Row))
			col0 := clampCol(bc.Col, line)
			if col0 < len(line) {
				wb.buff.SetLine(int(bc.Row), line[:col0]+line[col0+1:])
			}
		}
	case term.KeyTab:
		if !editMode && vim.TabWidth > 0 {
			advance := int(vim.TabWidth) - int(int(wb.pos.Col-1)%int(vim.TabWidth))
			wb.setBuffCol(bc.Col + int16(advance))
		}
	case term.KeyRune:
		if editMode && ev.Rune >= 0x20 && ev.Rune <= 0xFF {
			line := wb.buff.GetLine(int(bc.Row))
			col0 := clampCol(bc.Col, line)
			switch vim.Mode {
			case Insert:
				wb.buff.SetLine(int(bc.Row), line[:col0]+string(ev.Rune)+line[col0:])
			case Replace:
				if col0 >= len(line) {
					line += strings.Repeat(" ", col0-len(line))
					wb.buff.SetLine(int(bc.Row), line+string(ev.Rune))
				} else {
					wb.buff.SetLine(int(bc.Row), line[:col0]+string(ev.Rune)+line[col0+1:])
				}
			}
			wb.setBuffCol(bc.Col + 1)
		}
	}
}
