// Package secname parses sector file names into grid coordinates.
package secname

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind represents the type of sector file.
type Kind int

const (
	// Unknown is an unrecognized extension.
	Unknown Kind = iota

	// Base holds nodes, roads, prefabs and most other items.
	Base

	// Aux holds auxiliary items (signs, triggers).
	Aux

	// Data holds item payloads referenced from base files.
	Data

	// Snd holds sound items.
	Snd
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Base:
		return "base"
	case Aux:
		return "aux"
	case Data:
		return "data"
	case Snd:
		return "snd"
	default:
		return "unknown"
	}
}

// Parsed represents the parsed sector file name.
type Parsed struct {
	Name string // base name without extension (e.g. sec+0012-0003)
	X    int    // grid column
	Z    int    // grid row
	Kind Kind   // file type
}

// ParseFile parses the sector information from a file path.
func ParseFile(path string) (Parsed, bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	p, ok := ParseBase(strings.TrimSuffix(base, filepath.Ext(base)))
	if !ok {
		return Parsed{}, false
	}

	switch ext {
	case ".base":
		p.Kind = Base
	case ".aux":
		p.Kind = Aux
	case ".data":
		p.Kind = Data
	case ".snd":
		p.Kind = Snd
	}

	return p, true
}

// ParseBase parses a name like `sec+0012-0003` into grid coordinates.
func ParseBase(base string) (Parsed, bool) {
	if !strings.HasPrefix(base, "sec") {
		return Parsed{}, false
	}

	rest := strings.TrimPrefix(base, "sec")
	if len(rest) != 10 {
		return Parsed{}, false
	}

	x, ok := parseSigned(rest[:5])
	if !ok {
		return Parsed{}, false
	}

	z, ok := parseSigned(rest[5:])
	if !ok {
		return Parsed{}, false
	}

	return Parsed{Name: base, X: x, Z: z}, true
}

// Format renders grid coordinates as a sector base name.
func Format(x, z int) string {
	return "sec" + formatSigned(x) + formatSigned(z)
}

// Distance returns the grid (Chebyshev) distance between two sectors.
func Distance(a, b Parsed) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}

	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}

	if dx > dz {
		return dx
	}

	return dz
}

// parseSigned parses a sign followed by exactly four digits.
func parseSigned(s string) (int, bool) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') || !isDigits(s[1:]) {
		return 0, false
	}

	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}
	if s[0] == '-' {
		v = -v
	}

	return v, true
}

func formatSigned(v int) string {
	sign := "+"
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%04d", sign, v)
}

// isDigits checks if a string contains only digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}
