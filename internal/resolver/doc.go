// Package resolver turns accumulated NORMAL-mode keystrokes into an
// Action by walking a flat, comma-separated command table with a
// longest-prefix match. It holds no state of its own beyond the table;
// the caller is responsible for accumulating keystrokes across calls
// while the match stays UNTERMINATED.
package resolver
