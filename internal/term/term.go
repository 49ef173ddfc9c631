// Package term adapts the host terminal to the emulator's §6 host
// interface: non-blocking keystroke polling, raw/cooked mode toggling, and
// scoped line prompts that temporarily restore cooked mode.
//
// Grounded on original_source/froot1.c's set_raw/reset_term/kbhit, redone
// on top of golang.org/x/term (per the cross-pack terminal-handling
// manifests) instead of raw termios/ioctl syscalls. Non-blocking polling
// has no direct equivalent in the stdlib or x/term, so a single background
// reader goroutine feeds a channel PollKey drains without blocking — the
// one goroutine spec.md §5 explicitly carves out an exception for.
package term

import (
	"bufio"
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

// An Action names the side effect a translated keystroke demands of the
// caller, beyond simply buffering it as char_pending (spec.md §6).
type Action int

const (
	ActionNone Action = iota
	ActionExit
	ActionDebug
	ActionReset
	ActionLoadFile
)

// Translate maps a raw host byte to the byte that should be buffered as
// char_pending (if any) and the Action the caller must additionally take,
// per spec.md §6's keyboard translation table.
func Translate(b byte) (mapped byte, action Action) {
	switch b {
	case 0x03:
		return 0, ActionExit
	case 0x04:
		return 0, ActionDebug
	case 0x12:
		return 0, ActionReset
	case 0x0c:
		return 0, ActionLoadFile
	case 0x0a:
		return 0x0d, ActionNone
	case 0x08, 0x7f:
		return 0x08, ActionNone
	default:
		if b >= 'a' && b <= 'z' {
			return b - 'a' + 'A', ActionNone
		}
		return b, ActionNone
	}
}

// Keyboard owns the host stdin fd: raw/cooked mode state and a background
// reader goroutine that lets PollKey be non-blocking.
type Keyboard struct {
	fd       int
	saved    *xterm.State
	keys     chan byte
	in       *os.File
	isRaw    bool
}

// New wires a Keyboard to the given file (os.Stdin in production; tests use
// an *os.File backed by a pipe).
func New(in *os.File) *Keyboard {
	k := &Keyboard{
		fd:   int(in.Fd()),
		keys: make(chan byte, 64),
		in:   in,
	}
	go k.readLoop()
	return k
}

func (k *Keyboard) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := k.in.Read(buf)
		if n > 0 {
			k.keys <- buf[0]
		}
		if err != nil {
			return
		}
	}
}

// SetRaw toggles raw mode. Entering raw mode disables line buffering and
// echo (spec.md §5's terminal model); leaving it restores the saved state.
func (k *Keyboard) SetRaw(enable bool) error {
	if enable == k.isRaw {
		return nil
	}
	if enable {
		state, err := xterm.MakeRaw(k.fd)
		if err != nil {
			return fmt.Errorf("term: enter raw mode: %w", err)
		}
		k.saved = state
		k.isRaw = true
		return nil
	}
	if k.saved != nil {
		if err := xterm.Restore(k.fd, k.saved); err != nil {
			return fmt.Errorf("term: restore cooked mode: %w", err)
		}
	}
	k.isRaw = false
	return nil
}

// PollKey returns the next buffered keystroke, if any, without blocking.
func (k *Keyboard) PollKey() (byte, bool) {
	select {
	case b := <-k.keys:
		return b, true
	default:
		return 0, false
	}
}

// Prompt restores cooked mode, writes label, reads one line from the
// reader goroutine's channel, then restores whatever raw/cooked state was
// active before. It implements cassette.Prompter. ok is false when the
// line read is empty (cancel).
func (k *Keyboard) Prompt(label string) (line string, ok bool) {
	wasRaw := k.isRaw
	k.SetRaw(false)
	defer k.SetRaw(wasRaw)

	fmt.Fprint(os.Stdout, label)
	var b []byte
	for {
		ch := <-k.keys
		if ch == '\n' || ch == '\r' {
			break
		}
		b = append(b, ch)
	}
	s := string(b)
	return s, s != ""
}

// ReadLine reads a single line from r and strips the trailing CR/LF. Unlike
// Keyboard.Prompt it does not switch the terminal between raw and cooked
// mode.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

// Close restores the terminal to cooked mode, releasing the raw-mode
// resource on every exit path per spec.md §5.
func (k *Keyboard) Close() error {
	return k.SetRaw(false)
}
