package geometry

// Cursor is a 1-based (row, col) coordinate. It is used both as a screen
// coordinate relative to a Window and as a buffer coordinate, depending on
// context.
type Cursor struct {
	Row int16
	Col int16
}

// NewCursor creates a Cursor at the given row and column.
func NewCursor(row, col int16) Cursor {
	return Cursor{Row: row, Col: col}
}

// Add returns the component-wise sum of two cursors.
func (c Cursor) Add(o Cursor) Cursor {
	return Cursor{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Sub returns the component-wise difference of two cursors.
func (c Cursor) Sub(o Cursor) Cursor {
	return Cursor{Row: c.Row - o.Row, Col: c.Col - o.Col}
}

// Equal reports whether two cursors have the same row and column.
func (c Cursor) Equal(o Cursor) bool {
	return c.Row == o.Row && c.Col == o.Col
}
