package term

import "testing"

func TestColorChannelsRoundTrip(t *testing.T) {
	c := RGB(10, 20, 30)
	r, g, b := c.Channels()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("Channels() = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestNullTerminalWriteAndRead(t *testing.T) {
	n := NewNullTerminal(10, 3)
	n.WriteStyled(1, 2, "hi", Default)
	row := n.Row(1)
	if row[2:4] != "hi" {
		t.Errorf("Row(1)[2:4] = %q, want %q", row[2:4], "hi")
	}
}

func TestNullTerminalCursorAndEvents(t *testing.T) {
	n := NewNullTerminal(10, 3)
	n.HideCursor()
	if !n.CursorHidden() {
		t.Error("cursor should be hidden")
	}
	n.ShowCursor()
	if n.CursorHidden() {
		t.Error("cursor should be visible")
	}

	n.MoveCursor(2, 5)
	row, col := n.CursorPosition()
	if row != 2 || col != 5 {
		t.Errorf("CursorPosition() = (%d,%d), want (2,5)", row, col)
	}

	n.PushEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
	ev, err := n.PollEvent()
	if err != nil {
		t.Fatalf("PollEvent: %v", err)
	}
	if ev.Rune != 'x' {
		t.Errorf("PollEvent() rune = %q, want 'x'", ev.Rune)
	}

	ev, _ = n.PollEvent()
	if ev.Type != EventNone {
		t.Errorf("PollEvent() with empty queue = %+v, want EventNone", ev)
	}
}
