package resolver

// Action identifies a NORMAL-mode command resolved from keystrokes. Its
// values are positional: Action(i) is whatever the i'th entry of
// DefaultTable names, so renumbering the table renumbers these too.
type Action int

const (
	Insert Action = iota
	Append
	Replace
	Join
	Change
	ChangeWord
	Delete
	PutAfter
	PutBefore
	Undo
	Repeat
	OpenLine
	MoveLeft
	MoveDown
	MoveUp
	MoveRight
	NextWord
	PrevWord
	MoveLineEnd
	MoveDocEnd
	CopyLine
	CopyWord
	DeleteLine
	DeleteWord
	DeleteTill
	Quit
	MoveLineBegin
	SearchNext
)

// String names an Action for logging and status-line messages.
func (a Action) String() string {
	switch a {
	case Insert:
		return "INSERT"
	case Append:
		return "APPEND"
	case Replace:
		return "REPLACE"
	case Join:
		return "JOIN"
	case Change:
		return "CHANGE"
	case ChangeWord:
		return "CHANGE_WORD"
	case Delete:
		return "DELETE"
	case PutAfter:
		return "PUT_AFTER"
	case PutBefore:
		return "PUT_BEFORE"
	case Undo:
		return "UNDO"
	case Repeat:
		return "REPEAT"
	case OpenLine:
		return "OPEN_LINE"
	case MoveLeft:
		return "MOVE_LEFT"
	case MoveDown:
		return "MOVE_DOWN"
	case MoveUp:
		return "MOVE_UP"
	case MoveRight:
		return "MOVE_RIGHT"
	case NextWord:
		return "NEXT_WORD"
	case PrevWord:
		return "PREV_WORD"
	case MoveLineEnd:
		return "MOVE_LINE_END"
	case MoveDocEnd:
		return "MOVE_DOC_END"
	case CopyLine:
		return "COPY_LINE"
	case CopyWord:
		return "COPY_WORD"
	case DeleteLine:
		return "DELETE_LINE"
	case DeleteWord:
		return "DELETE_WORD"
	case DeleteTill:
		return "DELETE_TILL"
	case Quit:
		return "QUIT"
	case MoveLineBegin:
		return "MOVE_LINE_BEGIN"
	case SearchNext:
		return "SEARCH_NEXT"
	default:
		return "UNKNOWN_ACTION"
	}
}
