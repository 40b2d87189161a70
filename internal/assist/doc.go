// Package assist sends the :ai command-line extension's prompt, plus
// the active buffer's current line for context, to a configured
// Anthropic model and returns its reply text for insertion at the
// cursor.
package assist
