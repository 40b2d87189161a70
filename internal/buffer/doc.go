// Package buffer holds the in-memory document model (Buffer) and the
// per-window edit surface over it (WindowBuffer). The two live together
// deliberately: a WindowBuffer borrows its Buffer for its entire
// lifetime and a Buffer owns the WindowBuffers viewing it, so splitting
// them into separate packages would just trade a real coupling for an
// import cycle.
package buffer
