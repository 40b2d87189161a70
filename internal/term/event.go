package term

// EventType identifies the kind of input event PollEvent returned.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Key names a non-printable key. Printable keys arrive as EventKey with
// Key == KeyRune and the character in Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
)

// Event is one input event delivered by PollEvent.
type Event struct {
	Type EventType

	Key  Key
	Rune rune

	Width, Height int
}
