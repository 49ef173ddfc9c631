package cpu

// Instruction implementations. Each receives the Cpu after decode() has
// already populated c.M (the operand value, where applicable) and
// c.AbsAddress (the effective address, where applicable).
//
// Grounded on the teacher's cpu instruction methods (same one-method-per-
// mnemonic shape, same receiver pattern used as Opcode.Instruction method
// values) with several corrected: the teacher's ASL/LSR/ROL/ROR shifted by
// two bits instead of one, BIT inverted its Zero-flag test, JMP assigned the
// fetched byte instead of the effective address, JSR/RTS/BRK/RTI never
// touched the stack correctly, PHP/PLP used a hand-rolled bool-slice loop
// instead of Flags.Byte/SetByte, and ADC/SBC carried no Overflow or BCD
// logic at all.

// ADC adds M and the carry flag to the Accumulator, with BCD correction
// when Decimal is set (spec.md §4.B; original_source/froot1.c's ADC helper
// performs the same nibble correction when the CPU is in decimal mode).
func (c *Cpu) ADC() {
	a := c.Accumulator
	m := c.M
	carry := byte(0)
	if c.Flags.Carry {
		carry = 1
	}

	if c.Flags.Decimal {
		lo := (a & 0x0f) + (m & 0x0f) + carry
		hi := (a >> 4) + (m >> 4)
		if lo > 9 {
			lo += 6
			hi++
		}
		c.Flags.Overflow = (a^m)&0x80 == 0 && (a^(hi<<4|lo&0x0f))&0x80 != 0
		if hi > 9 {
			hi += 6
		}
		c.Flags.Carry = hi > 15
		result := (hi << 4) | (lo & 0x0f)
		c.Accumulator = result
		c.setZN(result)
		return
	}

	sum := uint16(a) + uint16(m) + uint16(carry)
	result := byte(sum)
	c.Flags.Carry = sum > 0xff
	c.Flags.Overflow = (a^result)&(m^result)&0x80 != 0
	c.Accumulator = result
	c.setZN(result)
}

// SBC subtracts M and the borrow (inverse of carry) from the Accumulator,
// with BCD correction when Decimal is set.
func (c *Cpu) SBC() {
	a := c.Accumulator
	m := c.M
	borrow := byte(0)
	if !c.Flags.Carry {
		borrow = 1
	}

	// Overflow/Carry are always computed on the binary result, per 6502
	// reference behavior: decimal mode only corrects the digit nibbles A
	// ends up holding.
	diff := int16(a) - int16(m) - int16(borrow)
	binResult := byte(diff)
	c.Flags.Carry = diff >= 0
	c.Flags.Overflow = (a^m)&(a^binResult)&0x80 != 0

	if !c.Flags.Decimal {
		c.Accumulator = binResult
		c.setZN(binResult)
		return
	}

	lo := int16(a&0x0f) - int16(m&0x0f) - int16(borrow)
	hi := int16(a>>4) - int16(m>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	result := byte(hi<<4) | byte(lo&0x0f)
	c.Accumulator = result
	c.setZN(result)
}

// AND performs a bitwise AND between the Accumulator and M.
func (c *Cpu) AND() {
	c.Accumulator &= c.M
	c.setZN(c.Accumulator)
}

// ASL shifts the operand left by one bit, placing the vacated bit 7 into
// Carry.
func (c *Cpu) ASL() {
	v := c.M
	c.Flags.Carry = v&0x80 != 0
	v <<= 1
	c.setZN(v)
	c.writeBack(v)
}

// BIT tests M against the Accumulator without modifying either: Zero is set
// when A&M is zero, Negative/Overflow mirror M's bits 7 and 6 directly.
func (c *Cpu) BIT() {
	c.Flags.Zero = c.Accumulator&c.M == 0
	c.Flags.Negative = c.M&0x80 != 0
	c.Flags.Overflow = c.M&0x40 != 0
}

// BRK forces a software interrupt: push PC+1, push P with B set, then
// vector through $FFFE exactly like IRQ (spec.md §4.B explicitly
// distinguishes this from NMI, which the teacher conflated it with).
func (c *Cpu) BRK() {
	c.pushWord(c.ProgramCounter + 1)
	c.Flags.B = true
	c.push(c.Flags.Byte())
	c.Flags.DisableInterrupt = true
	c.ProgramCounter = c.Bus.Read16(0xfffe)
}

func (c *Cpu) compare(reg byte) {
	c.Flags.Carry = reg >= c.M
	c.Flags.Zero = reg == c.M
	c.Flags.Negative = (reg-c.M)&0x80 != 0
}

// CMP compares the Accumulator against M.
func (c *Cpu) CMP() { c.compare(c.Accumulator) }

// CPX compares X against M.
func (c *Cpu) CPX() { c.compare(c.X) }

// CPY compares Y against M.
func (c *Cpu) CPY() { c.compare(c.Y) }

// DEC decrements the operand in place.
func (c *Cpu) DEC() {
	v := c.M - 1
	c.setZN(v)
	c.writeBack(v)
}

// EOR performs a bitwise exclusive-OR between the Accumulator and M.
func (c *Cpu) EOR() {
	c.Accumulator ^= c.M
	c.setZN(c.Accumulator)
}

// INC increments the operand in place.
func (c *Cpu) INC() {
	v := c.M + 1
	c.setZN(v)
	c.writeBack(v)
}

// JMP sets the program counter to the effective address computed by
// decode(), which for Indirect mode already carries the page-wrap bug
// correction. The teacher's version mistakenly jumped to uint16(c.M), the
// single byte read from that address, rather than the address itself.
func (c *Cpu) JMP() {
	c.ProgramCounter = c.AbsAddress
}

// JSR pushes the address of the last byte of the JSR instruction (PC-1,
// since PC already points past the 3-byte instruction) and jumps to
// AbsAddress.
func (c *Cpu) JSR() {
	c.pushWord(c.ProgramCounter - 1)
	c.ProgramCounter = c.AbsAddress
}

// LDA loads the Accumulator from M.
func (c *Cpu) LDA() {
	c.Accumulator = c.M
	c.setZN(c.Accumulator)
}

// LDX loads X from M.
func (c *Cpu) LDX() {
	c.X = c.M
	c.setZN(c.X)
}

// LDY loads Y from M.
func (c *Cpu) LDY() {
	c.Y = c.M
	c.setZN(c.Y)
}

// LSR shifts the operand right by one bit, placing the vacated bit 0 into
// Carry. Negative is always cleared since bit 7 is always 0 afterward.
func (c *Cpu) LSR() {
	v := c.M
	c.Flags.Carry = v&0x01 != 0
	v >>= 1
	c.setZN(v)
	c.writeBack(v)
}

// NOP does nothing; also the fallback implementation for illegal opcodes.
func (c *Cpu) NOP() {}

// ORA performs a bitwise OR between the Accumulator and M.
func (c *Cpu) ORA() {
	c.Accumulator |= c.M
	c.setZN(c.Accumulator)
}

// ROL rotates the operand left by one bit through Carry.
func (c *Cpu) ROL() {
	v := c.M
	oldCarry := c.Flags.Carry
	c.Flags.Carry = v&0x80 != 0
	v <<= 1
	if oldCarry {
		v |= 0x01
	}
	c.setZN(v)
	c.writeBack(v)
}

// ROR rotates the operand right by one bit through Carry.
func (c *Cpu) ROR() {
	v := c.M
	oldCarry := c.Flags.Carry
	c.Flags.Carry = v&0x01 != 0
	v >>= 1
	if oldCarry {
		v |= 0x80
	}
	c.setZN(v)
	c.writeBack(v)
}

// RTI returns from an interrupt: pull P, then pull the full return address.
// Unlike RTS, no +1 adjustment happens since the pushed PC was not
// decremented.
func (c *Cpu) RTI() {
	c.Flags.SetByte(c.pull())
	c.ProgramCounter = c.pullWord()
}

// RTS returns from a subroutine: pull the return address pushed by JSR and
// add 1 (JSR pushed PC-1). The teacher's version only pulled a single byte
// instead of a full word.
func (c *Cpu) RTS() {
	c.ProgramCounter = c.pullWord() + 1
}

// STA stores the Accumulator to AbsAddress.
func (c *Cpu) STA() { c.Write(c.AbsAddress, c.Accumulator) }

// STX stores X to AbsAddress.
func (c *Cpu) STX() { c.Write(c.AbsAddress, c.X) }

// STY stores Y to AbsAddress.
func (c *Cpu) STY() { c.Write(c.AbsAddress, c.Y) }

// Flag clear/set instructions.

func (c *Cpu) CLC() { c.Flags.Carry = false }
func (c *Cpu) SEC() { c.Flags.Carry = true }
func (c *Cpu) CLI() { c.Flags.DisableInterrupt = false }
func (c *Cpu) SEI() { c.Flags.DisableInterrupt = true }
func (c *Cpu) CLV() { c.Flags.Overflow = false }
func (c *Cpu) CLD() { c.Flags.Decimal = false }
func (c *Cpu) SED() { c.Flags.Decimal = true }

// Register transfer/increment/decrement instructions.

func (c *Cpu) TAX() { c.X = c.Accumulator; c.setZN(c.X) }
func (c *Cpu) TXA() { c.Accumulator = c.X; c.setZN(c.Accumulator) }
func (c *Cpu) DEX() { c.X--; c.setZN(c.X) }
func (c *Cpu) INX() { c.X++; c.setZN(c.X) }
func (c *Cpu) TAY() { c.Y = c.Accumulator; c.setZN(c.Y) }
func (c *Cpu) TYA() { c.Accumulator = c.Y; c.setZN(c.Accumulator) }
func (c *Cpu) DEY() { c.Y--; c.setZN(c.Y) }
func (c *Cpu) INY() { c.Y++; c.setZN(c.Y) }

// Branch instructions. Each defers the taken/page-cross cycle accounting to
// branch(), which reads the target decode() already resolved into
// c.AbsAddress.

func (c *Cpu) BPL() { c.branch(!c.Flags.Negative) }
func (c *Cpu) BMI() { c.branch(c.Flags.Negative) }
func (c *Cpu) BVC() { c.branch(!c.Flags.Overflow) }
func (c *Cpu) BVS() { c.branch(c.Flags.Overflow) }
func (c *Cpu) BCC() { c.branch(!c.Flags.Carry) }
func (c *Cpu) BCS() { c.branch(c.Flags.Carry) }
func (c *Cpu) BNE() { c.branch(!c.Flags.Zero) }
func (c *Cpu) BEQ() { c.branch(c.Flags.Zero) }

// Stack instructions.

func (c *Cpu) TXS() { c.Stack = c.X }
func (c *Cpu) TSX() { c.X = c.Stack; c.setZN(c.X) }
func (c *Cpu) PHA() { c.push(c.Accumulator) }
func (c *Cpu) PLA() { c.Accumulator = c.pull(); c.setZN(c.Accumulator) }

// PHP pushes the status byte with B and Unused both set, per the 6502
// reference: PHP always pushes B=1, distinct from how NMI/IRQ push it.
func (c *Cpu) PHP() {
	saved := c.Flags
	c.Flags.B = true
	c.Flags.Unused = true
	c.push(c.Flags.Byte())
	c.Flags = saved
}

// PLP pulls the status byte via Flags.SetByte: Unused is forced set, and B
// takes whatever bit 4 of the pulled byte holds.
func (c *Cpu) PLP() {
	c.Flags.SetByte(c.pull())
}
