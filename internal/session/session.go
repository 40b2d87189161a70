// Package session persists and restores the set of open windows between
// editor runs: which files were open, where each window's split lived,
// and where its cursor was.
package session

import (
	"io"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/hsaturn/vied/internal/fsys"
	"github.com/hsaturn/vied/internal/geometry"
	"github.com/hsaturn/vied/internal/splitter"
)

// WindowState is one open window's saved position: which file it
// viewed, where its split lived in the tree, and the buffer cursor and
// viewport origin within that file.
type WindowState struct {
	Wid    splitter.Wid
	Path   string
	Cursor geometry.Cursor
	PosRow int16
	PosCol int16
}

// State is the full set of open windows and which one was active.
type State struct {
	Windows   []WindowState
	ActiveWid splitter.Wid
}

// FileName is the session file's name, resolved relative to the
// workspace directory.
const FileName = ".vied-session.json"

// Save writes state as JSON to path, building the document field by
// field with sjson rather than marshalling the whole struct at once.
func Save(fs fsys.FS, path string, state State) error {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "active_wid", uint16(state.ActiveWid))
	if err != nil {
		return err
	}
	for i, w := range state.Windows {
		prefix := "windows." + strconv.Itoa(i) + "."
		if doc, err = sjson.Set(doc, prefix+"wid", uint16(w.Wid)); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, prefix+"path", w.Path); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, prefix+"cursor.row", w.Cursor.Row); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, prefix+"cursor.col", w.Cursor.Col); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, prefix+"pos_row", w.PosRow); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, prefix+"pos_col", w.PosCol); err != nil {
			return err
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.WriteString(f, doc)
	return err
}

// Load reads a previously saved session from path. ok is false if no
// session file exists; a missing file is not an error.
func Load(fs fsys.FS, path string) (state State, ok bool, err error) {
	if !fs.Exists(path) {
		return State{}, false, nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return State{}, false, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return State{}, false, err
	}

	root := gjson.ParseBytes(data)
	state.ActiveWid = splitter.Wid(root.Get("active_wid").Uint())

	for _, w := range root.Get("windows").Array() {
		state.Windows = append(state.Windows, WindowState{
			Wid:  splitter.Wid(w.Get("wid").Uint()),
			Path: w.Get("path").String(),
			Cursor: geometry.NewCursor(
				int16(w.Get("cursor.row").Int()),
				int16(w.Get("cursor.col").Int()),
			),
			PosRow: int16(w.Get("pos_row").Int()),
			PosCol: int16(w.Get("pos_col").Int()),
		})
	}
	return state, true, nil
}
