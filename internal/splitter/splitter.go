package splitter

import (
	"strings"

	"github.com/hsaturn/vied/internal/geometry"
)

// CellWriter is the narrow surface Draw needs from a terminal backend: the
// ability to place a run of text at a screen cell. internal/term.Terminal
// satisfies this structurally.
type CellWriter interface {
	WriteCell(row, col int, text string)
}

// Splitter is a binary tree of screen splits. The root always exists — a
// freshly constructed Splitter already has two leaves, the editing region
// (Root's side 1) and the status strip (Root's side 0) — so callers never
// see an empty tree.
type Splitter struct {
	root *node
}

// New builds the top-level splitter for a terminal of the given height: a
// horizontal split whose side-1 (upper) region is the editing area of size
// height-3, leaving the bottom two rows plus the separator line for the
// status/command strip.
func New(height int16) *Splitter {
	return &Splitter{root: &node{orientation: Horizontal, size: height - 3}}
}

// locate walks from the root along wid's bit path and returns the address
// of the pointer slot holding the node at that position. It fails if an
// ancestor along the path is nil (the path runs off the edge of the
// existing tree before the terminator bit is reached).
func (s *Splitter) locate(wid Wid) (**node, bool) {
	pp := &s.root
	working := wid
	for working != Root {
		if *pp == nil {
			return nil, false
		}
		if working&0x8000 != 0 {
			pp = &(*pp).side1
		} else {
			pp = &(*pp).side0
		}
		working <<= 1
	}
	return pp, true
}

// CalcWindow starts from full (the whole-screen rectangle) and walks the
// tree along wid's path, narrowing the rectangle at each split it passes
// through. It reports false if wid's path runs off the tree before its
// terminator bit is reached.
func (s *Splitter) CalcWindow(wid Wid, full geometry.Window) (geometry.Window, bool) {
	n := s.root
	win := full
	working := wid
	for working != Root {
		if n == nil {
			return geometry.Window{}, false
		}
		side1 := working&0x8000 != 0
		if n.orientation == Vertical {
			if side1 {
				win.Width = n.size
			} else {
				win.Left += n.size + 1
				win.Width -= n.size + 1
			}
		} else {
			if side1 {
				win.Height = n.size
			} else {
				win.Top += n.size + 1
				win.Height -= n.size + 1
			}
		}
		if side1 {
			n = n.side1
		} else {
			n = n.side0
		}
		working <<= 1
	}
	return win, true
}

// Split descends to the node addressed by wid and replaces that subtree
// with a fresh splitter of the given orientation and size, discarding
// whatever was there before. It fails (no-op) if wid is the root itself,
// if wid is already at the 15-split depth ceiling, or if an ancestor of
// wid does not yet exist.
func (s *Splitter) Split(wid Wid, orientation Orientation, size int16) (NodeHandle, bool) {
	if wid == Root {
		return NodeHandle{}, false
	}
	if !wid.CanSplit() {
		return NodeHandle{}, false
	}
	slot, ok := s.locate(wid)
	if !ok {
		return NodeHandle{}, false
	}
	*slot = &node{orientation: orientation, size: size}
	return NodeHandle{n: *slot}, true
}

// Close is a placeholder: it exists to satisfy the operation table but
// performs no tree surgery. What should happen to a closed leaf's sibling
// is unspecified upstream, so no behavior is implemented here.
func (s *Splitter) Close(wid Wid) {
}

// ForEachWindow visits every leaf of the tree in pre-order, computing each
// leaf's rectangle relative to full and calling fn with the rectangle, the
// leaf's Wid, and a handle to its immediate parent split (nil at the
// root's own two leaves only if the root had no children, which cannot
// happen — New always creates a root split). fn returning false stops the
// traversal early.
func (s *Splitter) ForEachWindow(full geometry.Window, fn func(rect geometry.Window, wid Wid, parent NodeHandle) bool) {
	s.forEachWindow(s.root, Root, full, NodeHandle{}, fn)
}

func (s *Splitter) forEachWindow(n *node, wid Wid, rect geometry.Window, parent NodeHandle, fn func(geometry.Window, Wid, NodeHandle) bool) bool {
	if n == nil {
		return fn(rect, wid, parent)
	}
	c1, c0 := wid.Children()
	r1, r0 := rect, rect
	if n.orientation == Vertical {
		r1.Width = n.size
		r0.Left += n.size + 1
		r0.Width -= n.size + 1
	} else {
		r1.Height = n.size
		r0.Top += n.size + 1
		r0.Height -= n.size + 1
	}
	here := NodeHandle{n: n}
	if !s.forEachWindow(n.side1, c1, r1, here, fn) {
		return false
	}
	return s.forEachWindow(n.side0, c0, r0, here, fn)
}

// FindWindow returns the Wid of the unique leaf whose rectangle contains
// point, or 0 if no leaf covers it.
func (s *Splitter) FindWindow(full geometry.Window, point geometry.Cursor) Wid {
	var found Wid
	s.ForEachWindow(full, func(rect geometry.Window, wid Wid, _ NodeHandle) bool {
		if rect.IsInside(point) {
			found = wid
			return false
		}
		return true
	})
	return found
}

// Draw renders the separator glyphs for every split line — "│" for
// vertical splits, "─" for horizontal ones — clipped to full, then
// recurses into both children with their narrowed sub-rectangles.
func (s *Splitter) Draw(full geometry.Window, w CellWriter) {
	s.draw(s.root, full, w)
}

func (s *Splitter) draw(n *node, rect geometry.Window, w CellWriter) {
	if n == nil {
		return
	}
	r1, r0 := rect, rect
	if n.orientation == Vertical {
		r1.Width = n.size
		sepCol := rect.Left + n.size
		for row := rect.Top; row < rect.Top+rect.Height; row++ {
			w.WriteCell(int(row), int(sepCol), "│")
		}
		r0.Left = sepCol + 1
		r0.Width = rect.Width - n.size - 1
	} else {
		r1.Height = n.size
		sepRow := rect.Top + n.size
		w.WriteCell(int(sepRow), int(rect.Left), strings.Repeat("─", int(rect.Width)))
		r0.Top = sepRow + 1
		r0.Height = rect.Height - n.size - 1
	}
	s.draw(n.side1, r1, w)
	s.draw(n.side0, r0, w)
}
