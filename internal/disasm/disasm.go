// Package disasm formats 6502 instructions as text and computes
// instruction boundaries, shared by the debugger's "d" command and the
// step-over logic's next_inst_addr (spec.md §4.D).
//
// Grounded on the teacher's cpu.Opcodes table (reused via froot1/internal/cpu)
// plus the nesdev 6502 instruction reference for operand formatting
// conventions.
package disasm

import (
	"fmt"
	"strings"

	"froot1/internal/bus"
	"froot1/internal/cpu"
)

// One formats the instruction at addr, reading up to 3 bytes via b, and
// returns its assembly text (lowercase mnemonic) and size in bytes.
func One(b *bus.Bus, addr uint16) (text string, size int) {
	opByte := b.Peek(addr)
	op, ok := cpu.Opcodes[opByte]
	if !ok {
		return "nop", 1
	}
	size = op.AddressingMode.Size()

	var operand string
	switch op.AddressingMode {
	case cpu.Implied:
		operand = ""
	case cpu.Accumulator:
		operand = "A"
	case cpu.Immediate:
		operand = fmt.Sprintf("#$%02x", b.Peek(addr+1))
	case cpu.ZeroPage:
		operand = fmt.Sprintf("$%02x", b.Peek(addr+1))
	case cpu.ZeroPageX:
		operand = fmt.Sprintf("$%02x,X", b.Peek(addr+1))
	case cpu.ZeroPageY:
		operand = fmt.Sprintf("$%02x,Y", b.Peek(addr+1))
	case cpu.IndirectX:
		operand = fmt.Sprintf("($%02x,X)", b.Peek(addr+1))
	case cpu.IndirectY:
		operand = fmt.Sprintf("($%02x),Y", b.Peek(addr+1))
	case cpu.Relative:
		rel := int8(b.Peek(addr + 1))
		target := uint16(int32(addr) + 2 + int32(rel))
		operand = fmt.Sprintf("$%04x", target)
	case cpu.Absolute:
		operand = fmt.Sprintf("$%04x", word16(b, addr+1))
	case cpu.AbsoluteX:
		operand = fmt.Sprintf("$%04x,X", word16(b, addr+1))
	case cpu.AbsoluteY:
		operand = fmt.Sprintf("$%04x,Y", word16(b, addr+1))
	case cpu.Indirect:
		operand = fmt.Sprintf("($%04x)", word16(b, addr+1))
	}

	name := strings.ToLower(op.Name)
	if operand == "" {
		return name, size
	}
	return name + " " + operand, size
}

// word16 reads a little-endian word for disassembly display purposes only
// (bounds/page-wrap quirks are a CPU execution-time concern, not a
// formatting one).
func word16(b *bus.Bus, addr uint16) uint16 {
	lo := b.Peek(addr)
	hi := b.Peek(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// NextInstAddr returns addr + size(opcode_at[addr]), the address step-over
// installs its temporary breakpoint at.
func NextInstAddr(b *bus.Bus, addr uint16) uint16 {
	_, size := One(b, addr)
	return addr + uint16(size)
}
