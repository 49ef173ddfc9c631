// Package device implements the memory-mapped keyboard/display peripheral
// (spec.md §4.A's device address map), generalized from the two register
// branches baked into original_source/froot1.c's read6502/write6502.
package device

import (
	"io"
)

// TicksPerSecond is the resolution of the Clock used for baud throttling.
// original_source/froot1.c uses current_time_millis(), so milliseconds is
// the natural unit here too.
const TicksPerSecond = 1000

// A Clock supplies the current tick count for the baud throttle. Production
// code uses time.Now().UnixMilli(); tests inject a fake to control timing
// deterministically.
type Clock func() int64

const (
	kbdData    = 0xd010
	kbdControl = 0xd011
	dspDataLow = 0xd012
	dspCtrlLow = 0xd013
	ioMask     = 0xff1f
)

// IO is the keyboard/display peripheral described in spec.md §3-§4.A: a
// single pending keypress register, and a display register with an optional
// baud-rate throttle and column wrap.
type IO struct {
	// CharPending is 0 when no host keystroke is buffered, else the ASCII
	// byte last pushed by PressKey.
	CharPending byte

	// Baud is the output rate limit; 0 means unthrottled (sendReady always
	// true).
	Baud int
	// Columns is the wrap width; 0 means no wrapping.
	Columns int

	sendReady        bool
	nextCharDeadline int64
	currCol          int

	clock Clock
	out   io.Writer
}

// New returns an IO device with the given baud limit (0 = unthrottled),
// column wrap (0 = unlimited), output sink, and clock.
func New(baud, columns int, out io.Writer, clock Clock) *IO {
	return &IO{
		Baud:      baud,
		Columns:   columns,
		sendReady: true,
		out:       out,
		clock:     clock,
	}
}

// Maps reports whether addr is one of the keyboard/display registers.
func (d *IO) Maps(addr uint16) bool {
	switch addr {
	case kbdData, kbdControl:
		return true
	}
	return addr&ioMask == dspDataLow || addr&ioMask == dspCtrlLow
}

// Read implements bus.Device.
func (d *IO) Read(addr uint16) byte {
	switch {
	case addr == kbdData:
		v := 0x80 | d.CharPending
		d.CharPending = 0
		return v
	case addr == kbdControl:
		if d.CharPending != 0 {
			return 0x80
		}
		return 0x00
	case addr&ioMask == dspDataLow, addr&ioMask == dspCtrlLow:
		if d.ready() {
			return 0x00
		}
		return 0x80
	}
	return 0
}

// Write implements bus.Device.
func (d *IO) Write(addr uint16, v byte) {
	if addr&ioMask != dspDataLow {
		// $D011 and $D013 (and anything else mapped here) ignore writes.
		return
	}
	if v&0x80 == 0 || !d.ready() {
		return
	}
	ch := v & 0x7f
	d.emit(ch)
	if d.Baud > 0 {
		d.sendReady = false
		d.nextCharDeadline = d.clock() + int64(9*TicksPerSecond/d.Baud)
	}
}

func (d *IO) emit(ch byte) {
	out := ch
	if out == 0x0d {
		out = '\n'
	}
	d.out.Write([]byte{out})
	if d.Columns > 0 {
		if out == '\n' {
			d.currCol = 0
		} else {
			d.currCol++
			if d.currCol >= d.Columns {
				d.out.Write([]byte{'\n'})
				d.currCol = 0
			}
		}
	}
}

// ready reports display readiness: either the baud throttle has no pending
// deadline (sendReady) or enough ticks have elapsed that a file-fed stream
// could continue.
func (d *IO) ready() bool {
	if d.sendReady {
		return true
	}
	if d.clock() >= d.nextCharDeadline {
		d.sendReady = true
	}
	return d.sendReady
}

// Tick advances the throttle clock check; called once per main-loop
// iteration per spec.md §5's ordering guarantee. It is a convenience
// wrapper around ready() for callers that want to eagerly refresh state
// without performing a read.
func (d *IO) Tick() {
	d.ready()
}

// PressKey buffers one host keystroke for the CPU to observe via $D010/$D011.
// It reports false if a keystroke is already pending (the caller is expected
// to defer/push back the byte per spec.md §6).
func (d *IO) PressKey(b byte) bool {
	if d.CharPending != 0 {
		return false
	}
	d.CharPending = b
	return true
}
