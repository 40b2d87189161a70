// Package editor is the top-level modal key dispatcher: it owns the mode
// state machine (NORMAL/COMMAND/INSERT/REPLACE), the splitter tree and the
// open buffers, routes keystrokes to the active view or the command line,
// and drives count-prefix repetition and dot-repeat macro playback.
package editor
