// Package splitter implements the binary-tree screen splitter: a tree of
// horizontal/vertical splits addressed by compact 16-bit Wids (window IDs).
// Rectangles are never stored; callers re-derive a leaf's Window from the
// full-screen rectangle and its Wid on every access via CalcWindow.
//
// The node representation is an owned tree of boxed nodes (see Design Notes
// in SPEC_FULL.md — the Wid bit encoding is the invariant that must survive
// bit-for-bit, not the tree's internal shape).
package splitter
