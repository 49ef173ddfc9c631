package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"froot1/internal/bus"
)

func TestOneFormatsEachAddressingMode(t *testing.T) {
	b := bus.New()
	b.Load(0x0200, []byte{0xa9, 0x42}, false) // LDA #$42
	text, size := One(b, 0x0200)
	assert.Equal(t, "lda #$42", text)
	assert.Equal(t, 2, size)

	b.Load(0x0210, []byte{0x4c, 0x00, 0xc0}, false) // JMP $C000
	text, size = One(b, 0x0210)
	assert.Equal(t, "jmp $c000", text)
	assert.Equal(t, 3, size)

	b.Load(0x0220, []byte{0x0a}, false) // ASL A
	text, size = One(b, 0x0220)
	assert.Equal(t, "asl A", text)
	assert.Equal(t, 1, size)

	b.Load(0x0230, []byte{0xea}, false) // NOP, implied: no operand
	text, size = One(b, 0x0230)
	assert.Equal(t, "nop", text)
	assert.Equal(t, 1, size)
}

func TestOneIllegalOpcodeIsOneByteNop(t *testing.T) {
	b := bus.New()
	b.Load(0x0200, []byte{0x02}, false)
	text, size := One(b, 0x0200)
	assert.Equal(t, "nop", text)
	assert.Equal(t, 1, size)
}

func TestRelativeOperandShowsAbsoluteTarget(t *testing.T) {
	b := bus.New()
	b.Load(0x0200, []byte{0xf0, 0x02}, false) // BEQ +2
	text, _ := One(b, 0x0200)
	assert.Equal(t, "beq $0204", text)
}

func TestNextInstAddrSumsSize(t *testing.T) {
	b := bus.New()
	b.Load(0x0200, []byte{0xa9, 0x42, 0xea}, false)
	assert.Equal(t, uint16(0x0202), NextInstAddr(b, 0x0200))
	assert.Equal(t, uint16(0x0203), NextInstAddr(b, 0x0202))
}
