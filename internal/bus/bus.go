// Package bus implements the memory bus that sits between the 6502 core and
// the rest of the machine: a 64 KiB byte-addressable space whose reads and
// writes are vectored to plain RAM, write-protected ROM, or a device's
// registers.
//
// This generalizes the teacher's flat `mem.Bus.FakeRam [64*1024]byte` into a
// cell-per-address model carrying independent ROM and breakpoint flags,
// since a single byte array has no room for that metadata.
package bus

// A Device is a memory-mapped peripheral. Addr is the full 16-bit address
// that was dereferenced; a Device decides for itself which of its own
// registers (if any) that address corresponds to.
type Device interface {
	// Maps reports whether addr is one of this device's registers.
	Maps(addr uint16) bool
	// Read returns the device's value for addr. Reading may mutate device
	// state (e.g. clearing a pending-keypress flag).
	Read(addr uint16) byte
	// Write updates device state in response to a write at addr.
	Write(addr uint16, v byte)
}

// A Cell is one of the 65536 addressable bytes. ReadOnly and Breakpoint are
// independent flags: ROM-ness doesn't imply a breakpoint is set, and vice
// versa.
type Cell struct {
	Value      byte
	ReadOnly   bool
	Breakpoint bool
}

const memSize = 1 << 16

// Bus owns the 64 KiB cell store and dispatches every CPU memory access
// either to a cell or to whichever Device claims the address. It is the sole
// owner of RAM, ROM flags, and breakpoint flags; the CPU and the debugger
// only ever reach memory through a Bus.
type Bus struct {
	cells   [memSize]Cell
	devices []Device
}

// New returns a Bus with every cell zeroed and writable, and the given
// devices registered in priority order (first match wins).
func New(devices ...Device) *Bus {
	return &Bus{devices: devices}
}

// AddDevice registers an additional device, checked after any already
// registered.
func (b *Bus) AddDevice(d Device) {
	b.devices = append(b.devices, d)
}

func (b *Bus) deviceFor(addr uint16) Device {
	for _, d := range b.devices {
		if d.Maps(addr) {
			return d
		}
	}
	return nil
}

// Read returns the value at addr: a device's computed value if addr is
// device-mapped, else the byte stored in the cell. Reading a device register
// may have side effects (see the individual Device implementations); reading
// a plain cell never does.
func (b *Bus) Read(addr uint16) byte {
	if d := b.deviceFor(addr); d != nil {
		return d.Read(addr)
	}
	return b.cells[addr].Value
}

// Write stores v at addr, unless addr is ROM (silently discarded) or
// device-mapped (dispatched to the device instead of the cell store).
func (b *Bus) Write(addr uint16, v byte) {
	if d := b.deviceFor(addr); d != nil {
		d.Write(addr, v)
		return
	}
	if b.cells[addr].ReadOnly {
		return
	}
	b.cells[addr].Value = v
}

// Peek reads a cell's raw byte without going through device dispatch; used
// by the disassembler and debugger memory dump, which must see the
// underlying storage even at device-mapped addresses.
func (b *Bus) Peek(addr uint16) byte {
	return b.cells[addr].Value
}

// Poke writes a cell's raw byte directly, bypassing ROM protection and
// device dispatch. It leaves the cell's ReadOnly flag as it is.
func (b *Bus) Poke(addr uint16, v byte) {
	b.cells[addr].Value = v
}

// MarkROM flags addr as read-only.
func (b *Bus) MarkROM(addr uint16) {
	b.cells[addr].ReadOnly = true
}

// MarkRAM clears the read-only flag on addr.
func (b *Bus) MarkRAM(addr uint16) {
	b.cells[addr].ReadOnly = false
}

// IsROM reports whether addr is currently write-protected.
func (b *Bus) IsROM(addr uint16) bool {
	return b.cells[addr].ReadOnly
}

// Load writes bytes starting at addr, skipping any cell that is already
// marked ROM ("ROM wins over RAM for overlapping loads"), and marks every
// written cell's ReadOnly flag to readOnly.
func (b *Bus) Load(addr uint16, data []byte, readOnly bool) {
	for i, v := range data {
		a := addr + uint16(i)
		if b.cells[a].ReadOnly {
			continue
		}
		b.cells[a].Value = v
		b.cells[a].ReadOnly = readOnly
	}
}

// SetBreakpoint flags addr so the debugger pauses execution before the
// instruction at addr is decoded.
func (b *Bus) SetBreakpoint(addr uint16) {
	b.cells[addr].Breakpoint = true
}

// ClearBreakpoint removes addr's breakpoint flag, if any.
func (b *Bus) ClearBreakpoint(addr uint16) {
	b.cells[addr].Breakpoint = false
}

// ClearAllBreakpoints removes every breakpoint flag.
func (b *Bus) ClearAllBreakpoints() {
	for i := range b.cells {
		b.cells[i].Breakpoint = false
	}
}

// HasBreakpoint reports whether addr currently has a breakpoint flag set.
func (b *Bus) HasBreakpoint(addr uint16) bool {
	return b.cells[addr].Breakpoint
}

// Breakpoints returns every address with a breakpoint flag set, in
// ascending order.
func (b *Bus) Breakpoints() []uint16 {
	var out []uint16
	for a := 0; a < memSize; a++ {
		if b.cells[a].Breakpoint {
			out = append(out, uint16(a))
		}
	}
	return out
}

// Read16 reads a little-endian word at addr, addr+1 (e.g. the reset
// vector).
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
