// Package machine composes the Bus, Cpu, keyboard/display device, cassette
// hook table, and debugger into the single-threaded main loop described by
// spec.md §2 and §5.
//
// Grounded on original_source/froot1.c's main(): the same
// step/check_pc/kbhit ordering, generalized from file-scope globals into a
// Machine value per spec.md §9's redesign note ("fields of a Machine value
// passed by mutable reference to every subsystem").
package machine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"froot1/internal/bus"
	"froot1/internal/cassette"
	"froot1/internal/cpu"
	"froot1/internal/debugger"
	"froot1/internal/device"
	"froot1/internal/disasm"
	"froot1/internal/hook"
	"froot1/internal/symtab"
	"froot1/internal/term"
)

func nowMillis() int64 { return time.Now().UnixMilli() }

// Machine owns every subsystem and drives the main loop.
type Machine struct {
	Bus       *bus.Bus
	Cpu       *cpu.Cpu
	IO        *device.IO
	Hooks     *hook.Table
	Debugger  *debugger.Debugger
	Symbols   *symtab.Table
	Keyboard  *term.Keyboard
	batchFile *bufio.Reader
}

// Config gathers the construction-time knobs translated from CLI flags
// (spec.md §6).
type Config struct {
	RAMSize       int // bytes; cells above this become ROM
	CassetteOn    bool
	StartInDebug  bool
	Baud          int
	Columns       int
	Out           io.Writer
	Keyboard      *term.Keyboard
}

// New wires a Machine from cfg. Callers still need to Load ROM/RAM images
// and symbol files before calling Reset.
func New(cfg Config) *Machine {
	b := bus.New()
	c := cpu.New(b)
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	ioDev := device.New(cfg.Baud, cfg.Columns, out, nowMillis)
	b.AddDevice(ioDev)

	for addr := cfg.RAMSize; addr < 1<<16; addr++ {
		b.MarkROM(uint16(addr))
	}

	syms := symtab.New()
	tape := cassette.New(cfg.Keyboard)
	hooks := hook.New(cfg.CassetteOn, tape)

	dbg := debugger.New(c, b, syms)
	if cfg.StartInDebug {
		dbg.State = debugger.Paused
	} else {
		dbg.State = debugger.Off
	}

	return &Machine{
		Bus:      b,
		Cpu:      c,
		IO:       ioDev,
		Hooks:    hooks,
		Debugger: dbg,
		Symbols:  syms,
		Keyboard: cfg.Keyboard,
	}
}

// Reset issues the 6502 reset sequence; call after every ROM/RAM/symbol
// load is complete (spec.md §6 "Reset vector").
func (m *Machine) Reset() {
	m.Cpu.Reset()
}

// Run drives the main loop until ctx is cancelled or the CPU reaches an
// unrecoverable condition. Order per spec.md §2: debugger gate, hook
// check, one CPU step, keyboard drain, display throttle tick.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if m.Debugger.State == debugger.Paused {
			line, err := m.promptDebugger()
			if err != nil {
				return err
			}
			m.Debugger.Execute(line)
			continue
		}

		m.Debugger.PreStep()
		if m.Debugger.State == debugger.Paused {
			continue
		}

		m.Hooks.Check(m.Cpu)
		m.Cpu.Step()

		if err := m.drainKeyboard(); err != nil {
			return err
		}
		m.IO.Tick()
	}
}

// promptDebugger prints the debugger's banner plus the next instruction and
// reads one command line from the keyboard's scoped cooked-mode reader.
func (m *Machine) promptDebugger() (string, error) {
	c := m.Cpu
	text, _ := disasm.One(m.Bus, c.ProgramCounter)
	fmt.Fprintf(os.Stdout, "PC=$%04x A=$%02x X=$%02x Y=$%02x SP=$%02x P=$%02x | %s\n",
		c.ProgramCounter, c.Accumulator, c.X, c.Y, c.Stack, c.Flags.Byte(), text)
	fmt.Fprint(os.Stdout, "(froot1) ")
	if m.Keyboard == nil {
		return "", fmt.Errorf("machine: debugger requires a keyboard reader")
	}
	line, _ := m.Keyboard.Prompt("")
	return line, nil
}

// drainKeyboard polls for one host keystroke and, unless a keystroke is
// already buffered, translates and applies it (spec.md §6). Ctrl-C, Ctrl-D,
// and Ctrl-R are handled as the named Actions rather than being buffered.
func (m *Machine) drainKeyboard() error {
	if m.Keyboard == nil {
		return nil
	}
	if m.batchFile != nil {
		return m.drainBatchFile()
	}
	if m.IO.CharPending != 0 {
		return nil // defer; the host key stays queued for a later poll
	}
	raw, ok := m.Keyboard.PollKey()
	if !ok {
		return nil
	}

	mapped, action := term.Translate(raw)
	switch action {
	case term.ActionExit:
		m.Keyboard.Close()
		os.Exit(0)
	case term.ActionDebug:
		m.Debugger.EnterDebugger()
	case term.ActionReset:
		m.Cpu.Reset()
	case term.ActionLoadFile:
		return m.beginBatchLoad()
	default:
		m.IO.PressKey(mapped)
	}
	return nil
}

// beginBatchLoad handles Ctrl-L: prompt for a file, then feed its bytes in
// as if typed, translating LF to CR (spec.md §6).
func (m *Machine) beginBatchLoad() error {
	path, ok := m.Keyboard.Prompt("Load file: ")
	if !ok {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open", path, err)
		return nil
	}
	m.batchFile = bufio.NewReader(f)
	return nil
}

func (m *Machine) drainBatchFile() error {
	if m.IO.CharPending != 0 {
		return nil
	}
	b, err := m.batchFile.ReadByte()
	if err != nil {
		m.batchFile = nil
		return nil
	}
	if b == '\n' {
		b = '\r'
	}
	m.IO.PressKey(b)
	return nil
}
