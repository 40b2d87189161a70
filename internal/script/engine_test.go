package script

import "testing"

type fakeHost struct {
	inserted string
	line     string
	mapped   map[string]string
}

func newFakeHost() *fakeHost {
	return &fakeHost{line: "hello world", mapped: make(map[string]string)}
}

func (h *fakeHost) InsertAtCursor(text string) { h.inserted += text }
func (h *fakeHost) CurrentLine() string        { return h.line }
func (h *fakeHost) MapKey(lhs, rhs string) bool {
	h.mapped[lhs] = rhs
	return rhs != "unknown"
}

func TestRunInsertsText(t *testing.T) {
	host := newFakeHost()
	e := New(host)
	defer e.Close()

	if err := e.Run(`vied.insert("hi")`); err != nil {
		t.Fatal(err)
	}
	if host.inserted != "hi" {
		t.Errorf("inserted = %q, want %q", host.inserted, "hi")
	}
}

func TestRunReadsCurrentLine(t *testing.T) {
	host := newFakeHost()
	e := New(host)
	defer e.Close()

	if err := e.Run(`if vied.line() ~= "hello world" then error("mismatch") end`); err != nil {
		t.Fatal(err)
	}
}

func TestRunRegistersKeymap(t *testing.T) {
	host := newFakeHost()
	e := New(host)
	defer e.Close()

	if err := e.Run(`vied.map("normal", "gg", "G")`); err != nil {
		t.Fatal(err)
	}
	if host.mapped["gg"] != "G" {
		t.Errorf("mapped[gg] = %q, want %q", host.mapped["gg"], "G")
	}
}

func TestRunCannotLoadFiles(t *testing.T) {
	host := newFakeHost()
	e := New(host)
	defer e.Close()

	err := e.Run(`dofile("/etc/passwd")`)
	if err == nil {
		t.Fatal("expected an error calling a disabled global")
	}
}

func TestRunAfterCloseFails(t *testing.T) {
	host := newFakeHost()
	e := New(host)
	e.Close()

	if err := e.Run(`vied.insert("x")`); err != ErrEngineClosed {
		t.Errorf("Run after Close = %v, want ErrEngineClosed", err)
	}
}
