// Package hook implements the PC-keyed execution trap that stands in for
// bit-level Apple Cassette Interface timing (spec.md §4.C). Before each
// instruction fetch, the machine loop checks whether ProgramCounter matches
// one of a handful of addresses inside the Woz ACI ROM routine; if so, the
// hook rewrites CPU state and redirects ProgramCounter to skip the routine
// that would otherwise spin on real hardware timing.
//
// Grounded directly on original_source/froot1.c's check_pc, which performs
// the same address comparisons and the same ram[0x28]/status/pc mutations.
package hook

import (
	"froot1/internal/cassette"
	"froot1/internal/cpu"
)

// ROM addresses inside the Apple-1 cassette ROM (wozaci.rom) that the hook
// table intercepts. Names follow the ROM listing's own labels.
const (
	aciWrite    uint16 = 0xc170 // WRITE: about to spin in WRNEXT
	aciWBitLoop uint16 = 0xc17c // WBITLOOP: about to bit-bang one byte out
	aciRead     uint16 = 0xc18d // READ: about to spin waiting for a header
	aciRdByte   uint16 = 0xc1a4 // RDBYTE: about to bit-bang one byte in
	aciCarrySet uint16 = 0xc189 // shared "set carry, report error" landing pad
	aciGoEsc    uint16 = 0xc163 // GOESC: user backed out of cassette mode
)

// saveIndex is the zero-page cell (SAVEINDEX) the real ROM routine would
// have stashed X into before the code path this hook skips runs; since the
// hook jumps around that code, it must do the save itself.
const saveIndex uint16 = 0x28

// Table intercepts cassette I/O addresses and redirects them to the
// file-backed Tape instead of letting the CPU execute the ROM's bit-banging
// loops.
type Table struct {
	Enabled bool
	Tape    *cassette.Tape
}

// New returns a hook Table; Enabled controls whether Check does anything at
// all (spec.md's "-cassette n" disables the feature entirely).
func New(enabled bool, tape *cassette.Tape) *Table {
	return &Table{Enabled: enabled, Tape: tape}
}

// Check inspects c.ProgramCounter and, if it matches one of the cassette
// hook points, rewrites CPU state in place. Called once before every
// instruction fetch (spec.md §4.C, §5).
func (t *Table) Check(c *cpu.Cpu) {
	if !t.Enabled {
		return
	}
	switch c.ProgramCounter {
	case aciWrite:
		c.Write(saveIndex, c.X)
		if t.Tape.BeginWrite() {
			c.ProgramCounter = 0xc175
		} else {
			c.ProgramCounter = aciGoEsc
		}

	case aciWBitLoop:
		t.Tape.WriteByte(c.Accumulator)
		c.ProgramCounter = 0xc182

	case aciRead:
		if !t.Tape.BeginRead() {
			c.ProgramCounter = aciGoEsc
			return
		}
		c.Write(saveIndex, c.X)
		t.readByteInto(c)

	case aciRdByte:
		t.readByteInto(c)

	case aciCarrySet:
		c.Flags.Carry = true

	case aciGoEsc:
		t.Tape.End()
	}
}

// readByteInto implements the shared READ/RDBYTE tail: pull one byte from
// the tape, landing either on the success path (A=byte, X=0, jump to the
// "save new byte" routine) or the EOF path (Carry set, jump to the shared
// error landing pad).
func (t *Table) readByteInto(c *cpu.Cpu) {
	b, ok := t.Tape.ReadByte()
	if !ok {
		c.Flags.Carry = true
		c.ProgramCounter = aciCarrySet
		return
	}
	c.Accumulator = b
	c.X = 0
	c.ProgramCounter = 0xc1b1
}
