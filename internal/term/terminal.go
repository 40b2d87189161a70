package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal is the editor's terminal abstraction: size reporting, cursor
// placement and visibility, styled writes, and input polling.
type Terminal interface {
	Size() (cols, rows int)
	MoveCursor(row, col int)
	SaveCursor()
	RestoreCursor()
	HideCursor()
	ShowCursor()
	WriteStyled(row, col int, text string, style Style)
	WriteCell(row, col int, text string)
	Clear()
	Flush()
	PollEvent() (Event, error)
	Init() error
	Shutdown()
}

// tcellTerminal implements Terminal using tcell, the same backend the
// teacher package wraps.
type tcellTerminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	savedRow, savedCol int
	cursorRow, cursorCol int
	cursorHidden         bool
}

// NewTcellTerminal creates a Terminal backed by a new tcell screen. Init
// must be called before use.
func NewTcellTerminal() (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &tcellTerminal{screen: screen}, nil
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

func (t *tcellTerminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *tcellTerminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *tcellTerminal) MoveCursor(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorRow, t.cursorCol = row, col
	if !t.cursorHidden {
		t.screen.ShowCursor(col, row)
	}
}

func (t *tcellTerminal) SaveCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.savedRow, t.savedCol = t.cursorRow, t.cursorCol
}

func (t *tcellTerminal) RestoreCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorRow, t.cursorCol = t.savedRow, t.savedCol
	if !t.cursorHidden {
		t.screen.ShowCursor(t.savedCol, t.savedRow)
	}
}

func (t *tcellTerminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorHidden = true
	t.screen.HideCursor()
}

func (t *tcellTerminal) ShowCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorHidden = false
	t.screen.ShowCursor(t.cursorCol, t.cursorRow)
}

func (t *tcellTerminal) WriteStyled(row, col int, text string, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tcellStyle := convertStyle(style)
	c := col
	for _, r := range text {
		t.screen.SetContent(c, row, r, nil, tcellStyle)
		c++
	}
}

// WriteCell satisfies splitter.CellWriter so the splitter tree can draw
// its separator glyphs directly through a Terminal.
func (t *tcellTerminal) WriteCell(row, col int, text string) {
	t.WriteStyled(row, col, text, Default)
}

func (t *tcellTerminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *tcellTerminal) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *tcellTerminal) PollEvent() (Event, error) {
	ev := t.screen.PollEvent()
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e), nil
	case *tcell.EventResize:
		cols, rows := e.Size()
		return Event{Type: EventResize, Width: cols, Height: rows}, nil
	default:
		return Event{Type: EventNone}, nil
	}
}

func convertStyle(s Style) tcell.Style {
	st := tcell.StyleDefault
	if s.Fg != ColorDefault {
		r, g, b := s.Fg.Channels()
		st = st.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if s.Bg != ColorDefault {
		r, g, b := s.Bg.Channels()
		st = st.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

func convertKeyEvent(e *tcell.EventKey) Event {
	switch e.Key() {
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter}
	case tcell.KeyTab:
		return Event{Type: EventKey, Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: EventKey, Key: KeyBackspace}
	case tcell.KeyDelete:
		return Event{Type: EventKey, Key: KeyDelete}
	case tcell.KeyHome:
		return Event{Type: EventKey, Key: KeyHome}
	case tcell.KeyEnd:
		return Event{Type: EventKey, Key: KeyEnd}
	case tcell.KeyUp:
		return Event{Type: EventKey, Key: KeyUp}
	case tcell.KeyDown:
		return Event{Type: EventKey, Key: KeyDown}
	case tcell.KeyLeft:
		return Event{Type: EventKey, Key: KeyLeft}
	case tcell.KeyRight:
		return Event{Type: EventKey, Key: KeyRight}
	case tcell.KeyCtrlC:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case tcell.KeyCtrlL:
		return Event{Type: EventKey, Key: KeyCtrlL}
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}
	default:
		return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}
	}
}
