package editor

import "errors"

var (
	errUnknownCommand = errors.New("editor: unknown command")
	errNoActiveBuffer = errors.New("editor: no active buffer")
	errSaveRefused    = errors.New("editor: save refused, file exists (use ! to force)")
)
