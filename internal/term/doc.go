// Package term is the terminal abstraction the editor core is built
// against: report size, position and hide/show the cursor, write styled
// text, clear the screen, and read the next input event. Terminal is
// implemented by tcellTerminal, which wraps a tcell.Screen.
package term
