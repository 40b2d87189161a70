// Package script embeds gopher-lua for the editor's :lua command-line
// extension. A single sandboxed state runs one script at a time to
// completion, on the same goroutine that reads keys, and exposes a
// vied module for scripts to reach into the running editor.
package script
