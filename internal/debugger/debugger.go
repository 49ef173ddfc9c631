// Package debugger implements the between-instruction REPL: single-step,
// step-over, run-to-breakpoint, disassembly, memory dump, and breakpoint
// management over the live CPU/Bus state (spec.md §4.E).
//
// Grounded on the teacher's cpu.Debug/model (bubbletea Model driving a
// Cpu), generalized from a fixed single-program stepper into a full
// command REPL operating on froot1/internal/cpu, disasm, and symtab.
package debugger

import (
	"fmt"
	"strings"

	"froot1/internal/bus"
	"froot1/internal/cpu"
	"froot1/internal/disasm"
	"froot1/internal/symtab"
)

// State is the debugger's three-mode state machine (spec.md §4.E).
type State int

const (
	// Off: the debugger has no per-step overhead; the main loop runs free.
	Off State = iota
	// Running: the CPU executes until a breakpoint PC or an explicit pause.
	Running
	// Paused: awaiting the next command at the prompt.
	Paused
)

const (
	defaultDisasmBytes = 20
	noTempBreakpoint   = -1
)

// Debugger owns references to the live CPU and Bus (borrowed, per spec.md
// §3's ownership note) plus its own symbol table and state.
type Debugger struct {
	Cpu    *cpu.Cpu
	Bus    *bus.Bus
	Syms   *symtab.Table
	State  State
	Output strings.Builder

	// tempBreak holds the step-over's single-shot temporary breakpoint
	// address, or -1 when none is pending.
	tempBreak int32
}

// New returns a Paused debugger over c/b.
func New(c *cpu.Cpu, b *bus.Bus, syms *symtab.Table) *Debugger {
	if syms == nil {
		syms = symtab.New()
	}
	return &Debugger{Cpu: c, Bus: b, Syms: syms, State: Paused, tempBreak: noTempBreakpoint}
}

// PreStep is called once per main-loop iteration, before the CPU executes
// the instruction at PC (spec.md §2, §4.E "Activation"). It transitions
// Running -> Paused when a breakpoint fires and clears any expired
// step-over temp breakpoint.
func (d *Debugger) PreStep() {
	if d.State != Running {
		return
	}
	pc := d.Cpu.ProgramCounter
	if d.Bus.HasBreakpoint(pc) {
		if d.tempBreak == int32(pc) {
			d.Bus.ClearBreakpoint(pc)
			d.tempBreak = noTempBreakpoint
		}
		d.State = Paused
		fmt.Fprintf(&d.Output, "breakpoint at $%04x\n", pc)
	}
}

// EnterDebugger forces a transition to Paused, e.g. on a host Ctrl-D
// keystroke (spec.md §4.E "Activation").
func (d *Debugger) EnterDebugger() {
	d.State = Paused
}

// Execute runs one command line and returns the text it produced. The
// Debugger's State after return tells the caller whether to keep prompting
// (Paused) or resume free execution (Running).
func (d *Debugger) Execute(line string) string {
	d.Output.Reset()
	cmd, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "", "s":
		d.Cpu.Step()
		d.printInstructionAt(d.Cpu.ProgramCounter)

	case "n":
		target := disasm.NextInstAddr(d.Bus, d.Cpu.ProgramCounter)
		d.Bus.SetBreakpoint(target)
		d.tempBreak = int32(target)
		d.State = Running
		fmt.Fprintf(&d.Output, "stepping over to $%04x\n", target)

	case "c":
		d.State = Running
		fmt.Fprintln(&d.Output, "continuing")

	case "b":
		addr := d.Cpu.ProgramCounter
		if args != "" {
			v, err := resolveAtom(args, d.Syms)
			if err != nil {
				fmt.Fprintln(&d.Output, err)
				break
			}
			addr = v
		}
		d.Bus.SetBreakpoint(addr)
		fmt.Fprintf(&d.Output, "breakpoint set at $%04x\n", addr)

	case "cb":
		addr := d.Cpu.ProgramCounter
		if args != "" {
			v, err := resolveAtom(args, d.Syms)
			if err != nil {
				fmt.Fprintln(&d.Output, err)
				break
			}
			addr = v
		}
		d.Bus.ClearBreakpoint(addr)
		fmt.Fprintf(&d.Output, "breakpoint cleared at $%04x\n", addr)

	case "ca":
		d.Bus.ClearAllBreakpoints()
		fmt.Fprintln(&d.Output, "all breakpoints cleared")

	case "lb":
		for _, a := range d.Bus.Breakpoints() {
			fmt.Fprintf(&d.Output, "$%04x\n", a)
		}

	case "d":
		d.disassembleRange(args)

	case "m":
		d.dumpMemory(args)

	case "end":
		d.State = Off
		fmt.Fprintln(&d.Output, "debugger off")

	case "h", "help":
		fmt.Fprint(&d.Output, helpText)

	default:
		fmt.Fprintf(&d.Output, "unknown command %q (h for help)\n", cmd)
	}

	return d.Output.String()
}

func (d *Debugger) printInstructionAt(addr uint16) {
	text, _ := disasm.One(d.Bus, addr)
	fmt.Fprintf(&d.Output,
		"PC=$%04x A=$%02x X=$%02x Y=$%02x SP=$%02x P=$%02x | %s\n",
		addr, d.Cpu.Accumulator, d.Cpu.X, d.Cpu.Y, d.Cpu.Stack, d.Cpu.Flags.Byte(), text)
}

func (d *Debugger) disassembleRange(args string) {
	start, end, err := ParseAddrRange(args, d.Syms, d.Cpu.ProgramCounter, defaultDisasmBytes)
	if err != nil {
		fmt.Fprintln(&d.Output, err)
		return
	}
	for addr := start; addr < end; {
		text, size := disasm.One(d.Bus, addr)
		fmt.Fprintf(&d.Output, "$%04x: %s\n", addr, text)
		addr += uint16(size)
	}
}

// dumpMemory implements the "m range" command: 16 bytes per row, an extra
// separating space between bytes 7 and 8, and an ASCII gutter showing
// printable low-7-bit characters or '.'. Rows start at the range's start
// address and advance in 16-byte strides; they are not realigned to 16-byte
// address boundaries.
func (d *Debugger) dumpMemory(args string) {
	if args == "" {
		fmt.Fprintln(&d.Output, "usage: m <range>")
		return
	}
	start, end, err := ParseAddrRange(args, d.Syms, d.Cpu.ProgramCounter, 0)
	if err != nil {
		fmt.Fprintln(&d.Output, err)
		return
	}

	for rowStart := start; rowStart < end; rowStart += 16 {
		var hex strings.Builder
		var ascii strings.Builder
		for i := uint16(0); i < 16 && rowStart+i < end; i++ {
			v := d.Bus.Peek(rowStart + i)
			if i == 8 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02x ", v)
			if c := v & 0x7f; c >= 0x20 && c < 0x7f {
				ascii.WriteByte(c)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(&d.Output, "$%04x: %-51s %s\n", rowStart, hex.String(), ascii.String())
	}
}

const helpText = `commands:
  s           step one instruction
  n           step over (skip past a subroutine call)
  c           continue until breakpoint
  b [addr]    set breakpoint (default: current PC)
  cb [addr]   clear breakpoint (default: current PC)
  ca          clear all breakpoints
  lb          list breakpoints
  d [range]   disassemble range (default: 20 bytes from PC)
  m range     hex+ascii memory dump
  end         leave the debugger
  h, help     this text
`
