package cpu

import "froot1/internal/mask"

// Flags mirrors the 6502 status register (P): NV-B DIZC, bit 7 down to bit
// 0. The teacher's version represented this the same way but packed/unpacked
// it with a hand-rolled loop over a slice of bools in PHP/PLP; here the
// unpack direction is expressed with mask.IsSet, since mask's 1-indexed,
// MSB-first positions line up exactly with the N..C bit order the spec
// diagrams. The pack direction stays a plain bit composition: mask.Set's
// truncating multi-bit-insert semantics don't fit cleanly when every field
// being packed is a single bit.
type Flags struct {
	Negative         bool // bit 7
	Overflow         bool // bit 6
	Unused           bool // bit 5, always reads back as 1
	B                bool // bit 4, set on BRK/PHP, clear on IRQ/NMI pushes
	Decimal          bool // bit 3
	DisableInterrupt bool // bit 2
	Zero             bool // bit 1
	Carry            bool // bit 0
}

// Byte packs the flags into the conventional 6502 status byte.
func (f Flags) Byte() byte {
	var b byte
	if f.Negative {
		b |= 1 << 7
	}
	if f.Overflow {
		b |= 1 << 6
	}
	b |= 1 << 5 // unused bit always reads 1
	if f.B {
		b |= 1 << 4
	}
	if f.Decimal {
		b |= 1 << 3
	}
	if f.DisableInterrupt {
		b |= 1 << 2
	}
	if f.Zero {
		b |= 1 << 1
	}
	if f.Carry {
		b |= 1 << 0
	}
	return b
}

// SetByte unpacks a status byte (as pulled from the stack by PLP/RTI) into
// the flags struct.
func (f *Flags) SetByte(b byte) {
	f.Negative = mask.IsSet(b, mask.I1)
	f.Overflow = mask.IsSet(b, mask.I2)
	f.Unused = true
	f.B = mask.IsSet(b, mask.I4)
	f.Decimal = mask.IsSet(b, mask.I5)
	f.DisableInterrupt = mask.IsSet(b, mask.I6)
	f.Zero = mask.IsSet(b, mask.I7)
	f.Carry = mask.IsSet(b, mask.I8)
}
