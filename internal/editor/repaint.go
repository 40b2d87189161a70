package editor

// Repaint redraws the splitter separators, every open view, and the
// command/status strip. It is the handler for Ctrl-L and for a terminal
// resize event.
func (e *Editor) Repaint() {
	e.split.Draw(e.full, e.term)

	for _, fv := range e.files {
		win, ok := e.split.CalcWindow(fv.wid, e.full)
		if !ok {
			continue
		}
		fv.view.Draw(win, e.term, 0, 0)
	}

	e.drawStatusStrip()
	e.term.Flush()
}

func (e *Editor) drawStatusStrip() {
	win, ok := e.split.CalcWindow(e.cmdWid, e.full)
	if !ok {
		return
	}
	if e.statusMsg != "" {
		e.cmdBuf.SetLine(1, e.statusMsg)
		e.statusMsg = ""
	}
	e.cmdView.Draw(win, e.term, 0, 0)
}
