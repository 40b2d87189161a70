package splitter

// Wid is the bit-encoded path from the root of a splitter tree to a single
// node. Bits are consumed MSB-first: a 1 bit steps into the "side 1" child,
// a 0 bit steps into "side 0". The walk stops at the lowest set bit, which
// acts as a terminator rather than a path step.
type Wid uint16

// Root is the Wid of the top-level splitter. It encodes zero steps: its
// only set bit (0x8000) is the terminator itself.
const Root Wid = 0x8000

// maxDepth mirrors the 15-step ceiling implied by a 16-bit path: once the
// terminator reaches bit 0 there is no room left to shift in another step.
const maxDepth = 15

// terminator returns the lowest set bit of w, i.e. the bit marking "no more
// steps after this one".
func (w Wid) terminator() Wid {
	return w & -w
}

// Depth returns the number of splits consumed to reach w from Root.
func (w Wid) Depth() int {
	d := 0
	for b := w.terminator(); b != Root; b <<= 1 {
		d++
	}
	return d
}

// CanSplit reports whether w still has room for one more level below it.
// A Wid whose terminator already sits in bit 0 is at the 15-split depth
// ceiling and cannot be split further.
func (w Wid) CanSplit() bool {
	return w.terminator() > 1
}

// Children computes the two child Wids one step below w: child1 is reached
// by a 1 bit (side 1), child0 by a 0 bit (side 0).
func (w Wid) Children() (child1, child0 Wid) {
	b := w.terminator()
	h := b >> 1
	child1 = w | h
	child0 = child1 &^ b
	return child1, child0
}
