package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"froot1/internal/symtab"
)

// ParseAddrRange implements the debugger's address-range grammar (spec.md
// §4.E): a bare atom (paired with defaultSize), "<atom> <sep> <atom>" for
// an explicit end, or "<atom> + <atom>" where the second atom is a length
// added to the first. Separators accepted between two atoms are space,
// '.', ',', and '-'; an atom is 1-4 hex digits or "@name" resolved through
// syms.
func ParseAddrRange(input string, syms *symtab.Table, defaultStart, defaultSize uint16) (start, end uint16, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultStart, defaultStart + defaultSize, nil
	}

	if i := strings.Index(input, "+"); i > 0 {
		startAtom := strings.TrimSpace(input[:i])
		lenAtom := strings.TrimSpace(input[i+1:])
		s, err := resolveAtom(startAtom, syms)
		if err != nil {
			return 0, 0, err
		}
		n, err := resolveAtom(lenAtom, syms)
		if err != nil {
			return 0, 0, err
		}
		return s, s + n, nil
	}

	atoms := splitAtoms(input)
	switch len(atoms) {
	case 1:
		s, err := resolveAtom(atoms[0], syms)
		if err != nil {
			return 0, 0, err
		}
		return s, s + defaultSize, nil
	case 2:
		s, err := resolveAtom(atoms[0], syms)
		if err != nil {
			return 0, 0, err
		}
		e, err := resolveAtom(atoms[1], syms)
		if err != nil {
			return 0, 0, err
		}
		return s, e, nil
	default:
		return 0, 0, fmt.Errorf("debugger: cannot parse address range %q", input)
	}
}

// splitAtoms breaks input on the accepted separators (space, '.', ',',
// '-'), dropping empty fields.
func splitAtoms(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ' ', '\t', '.', ',', '-':
			return true
		}
		return false
	})
}

// resolveAtom resolves one grammar atom: either "@name" via the symbol
// table, or 1-4 hex digits.
func resolveAtom(atom string, syms *symtab.Table) (uint16, error) {
	if strings.HasPrefix(atom, "@") {
		name := atom[1:]
		if syms == nil {
			return 0, fmt.Errorf("debugger: no symbol table loaded, cannot resolve %q", atom)
		}
		v, ok := syms.Lookup(name)
		if !ok {
			return 0, fmt.Errorf("debugger: unknown symbol %q", name)
		}
		return v, nil
	}
	if len(atom) == 0 || len(atom) > 4 {
		return 0, fmt.Errorf("debugger: invalid address atom %q", atom)
	}
	v, err := strconv.ParseUint(atom, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("debugger: invalid address atom %q: %w", atom, err)
	}
	return uint16(v), nil
}
