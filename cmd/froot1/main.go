// Command froot1 runs the Apple-1-class emulator described in SPEC_FULL.md:
// it parses the CLI surface (spec.md §6), loads ROM/RAM/symbol files,
// resets the CPU, and drives the main loop.
//
// Grounded on original_source/froot1.c's argv handling and
// master-g-childhood's go/chr2png/main.go for the urfave/cli.App shape
// (flags, Action closure, os.Exit on error).
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"froot1/internal/loader"
	"froot1/internal/machine"
	"froot1/internal/term"
)

func main() {
	app := &cli.App{
		Name:  "froot1",
		Usage: "an Apple-1-class 6502 microcomputer emulator",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mem", Value: "full", Usage: "RAM size: Nk (1..64) or full"},
			&cli.StringFlag{Name: "cassette", Value: "y", Usage: "enable cassette interface: y/n"},
			&cli.StringFlag{Name: "rom", Usage: "comma-separated list of files to load as ROM"},
			&cli.StringFlag{Name: "ram", Usage: "comma-separated list of files to load as RAM"},
			&cli.StringFlag{Name: "sym", Usage: "comma-separated list of symbol files to load"},
			&cli.BoolFlag{Name: "d", Usage: "start in the debugger"},
			&cli.IntFlag{Name: "baud", Value: 0, Usage: "display output baud throttle, 0 = unthrottled"},
			&cli.IntFlag{Name: "cols", Value: 0, Usage: "display column wrap, 0 = no wrap"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "froot1:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ramSize, err := parseMemSize(c.String("mem"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	cassetteOn, err := parseYesNo(c.String("cassette"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	kb := term.New(os.Stdin)
	defer kb.Close()
	if err := kb.SetRaw(true); err != nil {
		return cli.Exit(err, 1)
	}

	m := machine.New(machine.Config{
		RAMSize:      ramSize,
		CassetteOn:   cassetteOn,
		StartInDebug: c.Bool("d"),
		Baud:         c.Int("baud"),
		Columns:      c.Int("cols"),
		Keyboard:     kb,
	})

	if err := loadROM(m, "monitor.rom"); err != nil {
		return cli.Exit(fmt.Errorf("monitor.rom is required: %w", err), 1)
	}
	if cassetteOn {
		if err := loadROM(m, "wozaci.rom"); err != nil {
			return cli.Exit(fmt.Errorf("wozaci.rom is required when cassette is enabled: %w", err), 1)
		}
	}

	for _, f := range splitList(c.String("rom")) {
		if err := loadROM(m, f); err != nil {
			return cli.Exit(err, 1)
		}
	}
	for _, f := range splitList(c.String("ram")) {
		if err := loadFileInto(m, f, false); err != nil {
			return cli.Exit(err, 1)
		}
	}
	for _, f := range splitList(c.String("sym")) {
		if err := loadSymbols(m, f); err != nil {
			return cli.Exit(err, 1)
		}
	}

	m.Reset()
	return m.Run(context.Background())
}

func loadROM(m *machine.Machine, name string) error {
	return loadFileInto(m, name, true)
}

func loadFileInto(m *machine.Machine, name string, readOnly bool) error {
	path, err := locate(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return loader.LoadText(m.Bus, f, readOnly)
}

func loadSymbols(m *machine.Machine, name string) error {
	path, err := locate(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Symbols.Load(f)
}

// locate searches the current directory first, then a platform data
// directory, per spec.md §6.
func locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if dataDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dataDir, "froot1", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cannot find %q in the current directory or the data directory", name)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("must specify y or n, got %q", s)
}

// parseMemSize parses "Nk" (1..64) or "full" into a RAM byte count.
func parseMemSize(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "full" {
		return 1 << 16, nil
	}
	s = strings.TrimSuffix(s, "k")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 64 {
		return 0, fmt.Errorf("invalid -mem value %q, want Nk (1..64) or full", s)
	}
	return n * 1024, nil
}
