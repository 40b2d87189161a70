package session

import (
	"testing"

	"github.com/hsaturn/vied/internal/fsys"
	"github.com/hsaturn/vied/internal/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := fsys.NewMemFS()
	want := State{
		ActiveWid: 0xE000,
		Windows: []WindowState{
			{Wid: 0xA000, Path: "a.txt", Cursor: geometry.NewCursor(3, 5), PosRow: 1, PosCol: 1},
			{Wid: 0xE000, Path: "b.txt", Cursor: geometry.NewCursor(1, 1), PosRow: 2, PosCol: 1},
		},
	}

	if err := Save(fs, FileName, want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Load(fs, FileName)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected session file to be found")
	}
	if got.ActiveWid != want.ActiveWid {
		t.Errorf("ActiveWid = %#x, want %#x", got.ActiveWid, want.ActiveWid)
	}
	if len(got.Windows) != len(want.Windows) {
		t.Fatalf("len(Windows) = %d, want %d", len(got.Windows), len(want.Windows))
	}
	for i, w := range want.Windows {
		g := got.Windows[i]
		if g.Wid != w.Wid || g.Path != w.Path || g.Cursor != w.Cursor || g.PosRow != w.PosRow || g.PosCol != w.PosCol {
			t.Errorf("window %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	fs := fsys.NewMemFS()
	_, ok, err := Load(fs, FileName)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false for a missing session file")
	}
}
