package debugger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"froot1/internal/bus"
	"froot1/internal/cpu"
	"froot1/internal/symtab"
)

func newDebugger() (*bus.Bus, *cpu.Cpu, *Debugger) {
	b := bus.New()
	c := cpu.New(b)
	d := New(c, b, symtab.New())
	return b, c, d
}

func TestStepCommandExecutesOneInstruction(t *testing.T) {
	b, c, d := newDebugger()
	b.Load(0x0200, []byte{0xa9, 0x42}, false)
	c.ProgramCounter = 0x0200
	out := d.Execute("s")
	assert.Equal(t, byte(0x42), c.Accumulator)
	assert.Contains(t, out, "PC=$0202")
}

func TestBreakpointStopsContinue(t *testing.T) {
	// Scenario #5 from spec.md §8: JMP $C000 with a breakpoint set there.
	b, c, d := newDebugger()
	b.Load(0x0200, []byte{0x4c, 0x00, 0xc0}, false)
	c.ProgramCounter = 0x0200
	d.Execute("b c000")
	d.Execute("c")
	assert.Equal(t, Running, d.State)

	for i := 0; i < 5 && d.State == Running; i++ {
		d.PreStep()
		if d.State != Running {
			break
		}
		c.Step()
	}
	assert.Equal(t, Paused, d.State)
	assert.Equal(t, uint16(0xc000), c.ProgramCounter)
}

func TestStepOverInstallsTempBreakpointAtNextInstruction(t *testing.T) {
	b, c, d := newDebugger()
	b.Load(0x0200, []byte{0x20, 0x00, 0x03, 0xea}, false) // JSR $0300; NOP
	b.Load(0x0300, []byte{0x60}, false)                   // RTS
	c.ProgramCounter = 0x0200

	d.Execute("n")
	assert.Equal(t, Running, d.State)
	assert.True(t, b.HasBreakpoint(0x0203))

	for d.State == Running {
		d.PreStep()
		if d.State != Running {
			break
		}
		c.Step()
	}
	assert.Equal(t, uint16(0x0203), c.ProgramCounter)
	assert.False(t, b.HasBreakpoint(0x0203))
}

func TestSetAndListBreakpoints(t *testing.T) {
	_, c, d := newDebugger()
	c.ProgramCounter = 0x0200
	d.Execute("b 0300")
	d.Execute("b")
	out := d.Execute("lb")
	assert.Contains(t, out, "$0200")
	assert.Contains(t, out, "$0300")
}

func TestClearAllBreakpoints(t *testing.T) {
	_, _, d := newDebugger()
	d.Execute("b 0300")
	d.Execute("ca")
	out := d.Execute("lb")
	assert.Equal(t, "", strings.TrimSpace(out))
}

func TestEndTransitionsToOff(t *testing.T) {
	_, _, d := newDebugger()
	d.Execute("end")
	assert.Equal(t, Off, d.State)
}

func TestDisassembleLengthRange(t *testing.T) {
	b, c, d := newDebugger()
	b.Load(0x0200, []byte{0xa9, 0x42, 0xea}, false)
	c.ProgramCounter = 0x0200
	out := d.Execute("d 0200+3")
	assert.Contains(t, out, "lda #$42")
	assert.Contains(t, out, "nop")
}

func TestMemoryDumpShowsAsciiGutter(t *testing.T) {
	b, _, d := newDebugger()
	b.Load(0x0000, []byte("HELLO, WORLD!!!!"), false)
	out := d.Execute("m 0+10")
	assert.Contains(t, out, "HELLO")
}
