package device

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboardRegisters(t *testing.T) {
	d := New(0, 0, &bytes.Buffer{}, func() int64 { return 0 })
	assert.Equal(t, byte(0x00), d.Read(0xd011))
	d.PressKey('B')
	assert.Equal(t, byte(0x80), d.Read(0xd011))
	assert.Equal(t, byte(0x80|'B'), d.Read(0xd010))
	// reading twice: first call drains the buffered key, second finds it
	// empty
	assert.Equal(t, byte(0x00), d.Read(0xd010))
}

func TestPressKeyRefusesWhilePending(t *testing.T) {
	d := New(0, 0, &bytes.Buffer{}, func() int64 { return 0 })
	assert.True(t, d.PressKey('A'))
	assert.False(t, d.PressKey('B'))
}

func TestDisplayWriteUnthrottled(t *testing.T) {
	var buf bytes.Buffer
	d := New(0, 0, &buf, func() int64 { return 0 })
	assert.Equal(t, byte(0x00), d.Read(0xd012))
	d.Write(0xd012, 0x80|0x42) // 'B'
	assert.Equal(t, "B", buf.String())
}

func TestDisplayCarriageReturnBecomesNewline(t *testing.T) {
	var buf bytes.Buffer
	d := New(0, 0, &buf, func() int64 { return 0 })
	d.Write(0xd012, 0x80|0x0d)
	assert.Equal(t, "\n", buf.String())
}

func TestDisplayIgnoresWriteWithHighBitClear(t *testing.T) {
	var buf bytes.Buffer
	d := New(0, 0, &buf, func() int64 { return 0 })
	d.Write(0xd012, 0x42)
	assert.Equal(t, "", buf.String())
}

func TestDisplayBaudThrottle(t *testing.T) {
	var buf bytes.Buffer
	now := int64(0)
	clock := func() int64 { return now }
	d := New(300, 0, &buf, clock)

	d.Write(0xd012, 0x80|'A')
	assert.Equal(t, "A", buf.String())
	// readiness should drop to not-ready immediately after the write
	assert.Equal(t, byte(0x80), d.Read(0xd012))

	// second write before the deadline is dropped silently
	d.Write(0xd012, 0x80|'B')
	assert.Equal(t, "A", buf.String())

	now += 9 * TicksPerSecond / 300
	assert.Equal(t, byte(0x00), d.Read(0xd012))
	d.Write(0xd012, 0x80|'C')
	assert.Equal(t, "AC", buf.String())
}

func TestDisplayMaskedAddressAliasing(t *testing.T) {
	var buf bytes.Buffer
	d := New(0, 0, &buf, func() int64 { return 0 })
	assert.True(t, d.Maps(0xd012))
	assert.True(t, d.Maps(0xd0f2)) // same (addr & 0xff1f)
	assert.True(t, d.Maps(0xd013))
	assert.False(t, d.Maps(0xd014))
}

func TestColumnWrap(t *testing.T) {
	var buf bytes.Buffer
	d := New(0, 3, &buf, func() int64 { return 0 })
	for _, c := range "ABCD" {
		d.Write(0xd012, 0x80|byte(c))
	}
	assert.Equal(t, "ABC\nD", buf.String())
}
