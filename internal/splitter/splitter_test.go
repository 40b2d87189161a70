package splitter

import (
	"testing"

	"github.com/hsaturn/vied/internal/geometry"
)

func TestRootTerminatorAndDepth(t *testing.T) {
	if Root.terminator() != Root {
		t.Errorf("Root.terminator() = %#x, want %#x", Root.terminator(), Root)
	}
	if Root.Depth() != 0 {
		t.Errorf("Root.Depth() = %d, want 0", Root.Depth())
	}
	if !Root.CanSplit() {
		t.Error("Root should have room to split")
	}
}

func TestChildrenBitEncoding(t *testing.T) {
	c1, c0 := Root.Children()
	if c1 != 0xC000 {
		t.Errorf("Root child1 = %#x, want 0xC000", c1)
	}
	if c0 != 0x4000 {
		t.Errorf("Root child0 = %#x, want 0x4000", c0)
	}

	gc1, gc0 := c1.Children()
	if gc1 != 0xE000 {
		t.Errorf("child1.Children().child1 = %#x, want 0xE000", gc1)
	}
	if gc0 != 0xA000 {
		t.Errorf("child1.Children().child0 = %#x, want 0xA000", gc0)
	}
}

func TestDepthCeiling(t *testing.T) {
	w := Wid(0x0001) // terminator already at bit 0
	if w.CanSplit() {
		t.Error("a Wid terminating at bit 0 must not be splittable")
	}
	if w.Depth() != 15 {
		t.Errorf("Depth() = %d, want 15", w.Depth())
	}
}

func TestNewSplitterHasTwoLeavesFromRoot(t *testing.T) {
	s := New(23) // height 23: edit region 20 rows, status strip 2 rows + 1 separator
	full := geometry.NewWindow(1, 1, 80, 23)

	edit, ok := s.CalcWindow(0xC000, full)
	if !ok {
		t.Fatal("CalcWindow(0xC000) failed")
	}
	if edit.Height != 20 || edit.Top != 1 {
		t.Errorf("edit region = %+v, want height 20 at top 1", edit)
	}

	status, ok := s.CalcWindow(0x4000, full)
	if !ok {
		t.Fatal("CalcWindow(0x4000) failed")
	}
	if status.Height != 2 {
		t.Errorf("status region height = %d, want 2", status.Height)
	}
	if status.Top != edit.Bottom()+1 {
		t.Errorf("status region top = %d, want %d", status.Top, edit.Bottom()+1)
	}
}

func TestCalcWindowFailsPastTreeEdge(t *testing.T) {
	s := New(23)
	full := geometry.NewWindow(1, 1, 80, 23)

	// 0xC000 is currently a leaf; a Wid one step deeper has no tree to
	// walk into.
	deeper, _ := Wid(0xC000).Children()
	if _, ok := s.CalcWindow(deeper, full); ok {
		t.Error("CalcWindow should fail past the edge of the tree")
	}
}

func TestSplitRejectsRootAndDepthCeiling(t *testing.T) {
	s := New(23)
	if _, ok := s.Split(Root, Vertical, 10); ok {
		t.Error("splitting the root itself should fail")
	}
	if _, ok := s.Split(0x0001, Vertical, 1); ok {
		t.Error("splitting past the depth ceiling should fail")
	}
	if _, ok := s.Split(0xE000, Vertical, 1); ok {
		t.Error("splitting through a missing ancestor should fail")
	}
}

func TestSplitNarrowsChild(t *testing.T) {
	s := New(23)
	full := geometry.NewWindow(1, 1, 80, 23)

	h, ok := s.Split(0xC000, Vertical, 20)
	if !ok {
		t.Fatal("Split(0xC000) failed")
	}
	if h.Orientation() != Vertical || h.Size() != 20 {
		t.Errorf("handle = {%v %d}, want {vertical 20}", h.Orientation(), h.Size())
	}

	left, right := Wid(0xC000).Children()

	leftWin, ok := s.CalcWindow(left, full)
	if !ok {
		t.Fatal("CalcWindow(left) failed")
	}
	if leftWin.Width != 20 {
		t.Errorf("left width = %d, want 20", leftWin.Width)
	}

	rightWin, ok := s.CalcWindow(right, full)
	if !ok {
		t.Fatal("CalcWindow(right) failed")
	}
	if rightWin.Left != leftWin.Right()+1 {
		t.Errorf("right left = %d, want %d", rightWin.Left, leftWin.Right()+1)
	}

	// Re-splitting the same target updates size and discards the old
	// subtree.
	if _, ok := s.Split(0xC000, Horizontal, 5); !ok {
		t.Fatal("re-split of 0xC000 failed")
	}
	reLeft, ok := s.CalcWindow(left, full)
	if !ok || reLeft.Height != 5 || reLeft.Width != 80 {
		t.Errorf("after re-split, left = %+v (ok=%v), want height 5 width 80 (old vertical split discarded)", reLeft, ok)
	}
}

func TestForEachWindowCoversDisjointly(t *testing.T) {
	s := New(23)
	s.Split(0xC000, Vertical, 20)
	full := geometry.NewWindow(1, 1, 80, 23)

	var rects []geometry.Window
	seen := map[Wid]bool{}
	s.ForEachWindow(full, func(rect geometry.Window, wid Wid, _ NodeHandle) bool {
		if seen[wid] {
			t.Errorf("leaf %#x visited twice", wid)
		}
		seen[wid] = true
		rects = append(rects, rect)
		return true
	})

	if len(rects) != 3 {
		t.Fatalf("got %d leaves, want 3", len(rects))
	}

	area := func(w geometry.Window) int { return int(w.Width) * int(w.Height) }
	total := 0
	for _, r := range rects {
		total += area(r)
	}
	// The one-cell separator lines belong to no leaf: an 80-cell row
	// between the root's two children and a 20-cell column between the
	// vertical split's two children.
	separators := 80 + 20
	if total+separators != area(full) {
		t.Errorf("leaf areas plus separators sum to %d, want %d (full coverage, no overlap)", total+separators, area(full))
	}
}

func TestFindWindowMatchesForEachWindow(t *testing.T) {
	s := New(23)
	s.Split(0xC000, Vertical, 20)
	full := geometry.NewWindow(1, 1, 80, 23)

	target := geometry.NewCursor(2, 2)
	found := s.FindWindow(full, target)
	if found == 0 {
		t.Fatal("FindWindow returned 0")
	}

	rect, ok := s.CalcWindow(found, full)
	if !ok {
		t.Fatal("CalcWindow(found) failed")
	}
	if !rect.IsInside(target) {
		t.Errorf("found leaf %#x does not contain %+v", found, target)
	}
}

type fakeCellWriter struct {
	writes int
}

func (f *fakeCellWriter) WriteCell(row, col int, text string) {
	f.writes++
}

func TestDrawVisitsEverySplit(t *testing.T) {
	s := New(23)
	s.Split(0xC000, Vertical, 20)
	full := geometry.NewWindow(1, 1, 80, 23)

	w := &fakeCellWriter{}
	s.Draw(full, w)

	// One horizontal separator line for the root split, plus one column
	// of vertical separator cells for the 0xC000 split.
	if w.writes < 2 {
		t.Errorf("Draw wrote %d cells, want at least 2 separator regions", w.writes)
	}
}
