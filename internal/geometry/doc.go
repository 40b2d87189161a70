// Package geometry provides the integer row/column primitives shared by the
// splitter, buffer views, and terminal backend: a 1-based screen/buffer
// coordinate (Cursor) and an axis-aligned screen rectangle (Window).
package geometry
