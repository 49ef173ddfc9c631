package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWritePlainRAM(t *testing.T) {
	b := New()
	b.Write(0x0200, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0x0200))
}

func TestROMWriteDiscarded(t *testing.T) {
	b := New()
	b.Load(0xff00, []byte{0xaa, 0xbb}, true)
	b.Write(0xff00, 0x99)
	assert.Equal(t, byte(0xaa), b.Read(0xff00))
}

func TestLoadROMWinsOverOverlappingRAMLoad(t *testing.T) {
	b := New()
	b.Load(0x1000, []byte{0x01}, true)
	b.Load(0x1000, []byte{0x02}, false)
	assert.Equal(t, byte(0x01), b.Read(0x1000))
	assert.True(t, b.IsROM(0x1000))
}

func TestBreakpoints(t *testing.T) {
	b := New()
	b.SetBreakpoint(0xc000)
	b.SetBreakpoint(0x0200)
	assert.Equal(t, []uint16{0x0200, 0xc000}, b.Breakpoints())
	b.ClearBreakpoint(0x0200)
	assert.False(t, b.HasBreakpoint(0x0200))
	assert.True(t, b.HasBreakpoint(0xc000))
	b.ClearAllBreakpoints()
	assert.Empty(t, b.Breakpoints())
}

func TestRead16(t *testing.T) {
	b := New()
	b.Write(0xfffc, 0x00)
	b.Write(0xfffd, 0x80)
	assert.Equal(t, uint16(0x8000), b.Read16(0xfffc))
}

type recordingDevice struct {
	addr   uint16
	reads  int
	writes []byte
}

func (d *recordingDevice) Maps(addr uint16) bool { return addr == d.addr }
func (d *recordingDevice) Read(addr uint16) byte { d.reads++; return 0xd0 }
func (d *recordingDevice) Write(addr uint16, v byte) {
	d.writes = append(d.writes, v)
}

func TestDeviceDispatch(t *testing.T) {
	dev := &recordingDevice{addr: 0xd010}
	b := New(dev)
	assert.Equal(t, byte(0xd0), b.Read(0xd010))
	assert.Equal(t, 1, dev.reads)
	b.Write(0xd010, 0x55)
	assert.Equal(t, []byte{0x55}, dev.writes)
}

func TestPeekBypassesDevice(t *testing.T) {
	dev := &recordingDevice{addr: 0xd010}
	b := New(dev)
	b.Poke(0xd010, 0x77)
	assert.Equal(t, byte(0x77), b.Peek(0xd010))
	assert.Equal(t, 0, dev.reads)
}
