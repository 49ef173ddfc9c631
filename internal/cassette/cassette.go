// Package cassette implements the file-backed stand-in for the Apple-1
// cassette interface (spec.md §4.C): instead of reproducing the ACI's
// bit-banged timing, a single host file is read or written a byte at a
// time whenever the hook table intercepts the relevant ROM routine.
//
// Grounded on original_source/froot1.c's begin_write_cassette,
// begin_read_cassette, cassette_read, cassette_write, and cassette_end.
package cassette

import "os"

// A Prompter asks the user for one line of input, dropping to cooked
// terminal mode for the duration. It is implemented by internal/term; an
// empty string with ok=false means the user cancelled (entered blank).
type Prompter interface {
	Prompt(label string) (line string, ok bool)
}

// Tape holds the optional currently-open cassette file.
type Tape struct {
	file    *os.File
	prompt  Prompter
}

// New returns a Tape that asks p for filenames on demand.
func New(p Prompter) *Tape {
	return &Tape{prompt: p}
}

// BeginWrite opens a file for writing if none is already open, prompting the
// user for a path. A failed open re-prompts rather than giving up; only an
// empty line aborts (spec.md §7; original_source/froot1.c's
// begin_write_cassette loops the same way with a for(;;)).
func (t *Tape) BeginWrite() bool {
	if t.file != nil {
		return true
	}
	for {
		path, ok := t.prompt.Prompt("Cassette save to file (enter=cancel): ")
		if !ok || path == "" {
			return false
		}
		f, err := os.Create(path)
		if err != nil {
			continue
		}
		t.file = f
		return true
	}
}

// BeginRead opens a file for reading if none is already open, re-prompting
// on a failed open (see BeginWrite).
func (t *Tape) BeginRead() bool {
	if t.file != nil {
		return true
	}
	for {
		path, ok := t.prompt.Prompt("Cassette file to read (enter=cancel): ")
		if !ok || path == "" {
			return false
		}
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		t.file = f
		return true
	}
}

// ReadByte reads one byte from the open tape file. ok is false at EOF or
// when no file is open.
func (t *Tape) ReadByte() (byte, bool) {
	if t.file == nil {
		return 0, false
	}
	var buf [1]byte
	n, err := t.file.Read(buf[:])
	if n == 0 || err != nil {
		return 0, false
	}
	return buf[0], true
}

// WriteByte appends one byte to the open tape file; a no-op if no file is
// open.
func (t *Tape) WriteByte(b byte) {
	if t.file == nil {
		return
	}
	t.file.Write([]byte{b})
}

// End closes whatever file is currently open, if any.
func (t *Tape) End() {
	if t.file == nil {
		return
	}
	t.file.Close()
	t.file = nil
}
