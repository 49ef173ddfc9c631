// Package loader implements the text ROM/RAM file format consumed at
// startup (spec.md §6) and its inverse, used to seed a Bus from a host file
// and to dump memory back out in the same format.
//
// Grounded on original_source/bin2rom.c and rom2bin.c (the hex-row text
// format and its 4-hex-digit-address-then-colon framing), widened from
// their fixed 8-byte rows to the 16-byte rows spec.md §6 specifies.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"froot1/internal/bus"
)

// LoadText parses ROM/RAM text-format lines of the form
//
//	AAAA: BB BB BB BB BB BB BB BB BB BB BB BB BB BB BB BB
//
// from r and loads each row's bytes into b starting at AAAA, marking them
// ROM if readOnly is true. A blank or malformed line aborts the load with
// an error, per spec.md §6's "Blank or malformed lines abort the load."
func LoadText(b *bus.Bus, r io.Reader, readOnly bool) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return fmt.Errorf("loader: blank line %d", lineNo)
		}

		addrText, rest, found := strings.Cut(line, ":")
		if !found {
			return fmt.Errorf("loader: line %d missing ':'", lineNo)
		}
		addrText = strings.TrimSpace(addrText)
		if len(addrText) != 4 {
			return fmt.Errorf("loader: line %d address %q is not 4 hex digits", lineNo, addrText)
		}
		addr, err := strconv.ParseUint(addrText, 16, 16)
		if err != nil {
			return fmt.Errorf("loader: line %d: %w", lineNo, err)
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return fmt.Errorf("loader: line %d has no data bytes", lineNo)
		}
		if len(fields) > 16 {
			fields = fields[:16]
		}
		row := make([]byte, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return fmt.Errorf("loader: line %d byte %q: %w", lineNo, f, err)
			}
			row[i] = byte(v)
		}
		b.Load(uint16(addr), row, readOnly)
	}
	return scanner.Err()
}

// DumpText writes length bytes starting at start, in the same 16-byte-row
// text format LoadText parses, the inverse of original_source/bin2rom.c's
// print_row.
func DumpText(w io.Writer, b *bus.Bus, start uint16, length int) error {
	addr := start
	for remaining := length; remaining > 0; {
		n := 16
		if remaining < n {
			n = remaining
		}
		row := make([]string, n)
		for i := 0; i < n; i++ {
			row[i] = fmt.Sprintf("%02X", b.Peek(addr+uint16(i)))
		}
		if _, err := fmt.Fprintf(w, "%04X: %s\n", addr, strings.Join(row, " ")); err != nil {
			return err
		}
		addr += uint16(n)
		remaining -= n
	}
	return nil
}
