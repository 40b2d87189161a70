package term

// NullTerminal is a Terminal that records writes into an in-memory grid
// instead of driving a real screen. It exists for tests that need to
// assert on what was drawn without a tty.
type NullTerminal struct {
	width, height int
	cells         [][]rune
	cursorRow     int
	cursorCol     int
	cursorHidden  bool
	events        []Event
}

// NewNullTerminal creates a NullTerminal of the given size.
func NewNullTerminal(width, height int) *NullTerminal {
	n := &NullTerminal{width: width, height: height}
	n.cells = make([][]rune, height)
	for i := range n.cells {
		n.cells[i] = make([]rune, width)
		for j := range n.cells[i] {
			n.cells[i][j] = ' '
		}
	}
	return n
}

func (n *NullTerminal) Init() error   { return nil }
func (n *NullTerminal) Shutdown()     {}
func (n *NullTerminal) Clear()        {}
func (n *NullTerminal) Flush()        {}
func (n *NullTerminal) SaveCursor()   {}
func (n *NullTerminal) RestoreCursor() {}
func (n *NullTerminal) HideCursor()   { n.cursorHidden = true }
func (n *NullTerminal) ShowCursor()   { n.cursorHidden = false }

func (n *NullTerminal) Size() (int, int) { return n.width, n.height }

func (n *NullTerminal) MoveCursor(row, col int) {
	n.cursorRow, n.cursorCol = row, col
}

func (n *NullTerminal) WriteStyled(row, col int, text string, _ Style) {
	if row < 0 || row >= n.height {
		return
	}
	c := col
	for _, r := range text {
		if c >= 0 && c < n.width {
			n.cells[row][c] = r
		}
		c++
	}
}

// WriteCell satisfies splitter.CellWriter.
func (n *NullTerminal) WriteCell(row, col int, text string) {
	n.WriteStyled(row, col, text, Default)
}

// PollEvent returns queued events fed via PushEvent, in FIFO order.
func (n *NullTerminal) PollEvent() (Event, error) {
	if len(n.events) == 0 {
		return Event{Type: EventNone}, nil
	}
	ev := n.events[0]
	n.events = n.events[1:]
	return ev, nil
}

// PushEvent queues an event for the next PollEvent call.
func (n *NullTerminal) PushEvent(ev Event) {
	n.events = append(n.events, ev)
}

// Row returns the rendered content of a row as a string, for assertions.
func (n *NullTerminal) Row(row int) string {
	if row < 0 || row >= n.height {
		return ""
	}
	return string(n.cells[row])
}

// CursorPosition returns the last position MoveCursor was called with.
func (n *NullTerminal) CursorPosition() (row, col int) {
	return n.cursorRow, n.cursorCol
}

// CursorHidden reports whether the cursor is currently hidden.
func (n *NullTerminal) CursorHidden() bool {
	return n.cursorHidden
}

var _ Terminal = (*NullTerminal)(nil)
