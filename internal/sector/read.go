package sector

import (
	"encoding/binary"
	"math"
)

// readU32 reads a little-endian 32-bit integer from a byte slice.
func readU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}

	return binary.LittleEndian.Uint32(b)
}

// readU64 reads a little-endian 64-bit integer from a byte slice.
func readU64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}

	return binary.LittleEndian.Uint64(b)
}

// readF32 reads a little-endian 32-bit float from a byte slice.
func readF32(b []byte) float32 {
	return math.Float32frombits(readU32(b))
}

// view reads fields relative to an item start and remembers whether any read
// fell outside the buffer.
type view struct {
	data []byte
	base int
	ok   bool
}

func newView(data []byte, base int) *view {
	return &view{data: data, base: base, ok: base >= 0 && base < len(data)}
}

// fits reports whether n bytes at rel are inside the buffer.
func (v *view) fits(rel, n int) bool {
	p := v.base + rel
	return rel >= 0 && p >= v.base && p+n <= len(v.data)
}

func (v *view) at(rel, n int) []byte {
	if !v.fits(rel, n) {
		v.ok = false
		return nil
	}

	p := v.base + rel
	return v.data[p : p+n]
}

func (v *view) u8(rel int) byte {
	b := v.at(rel, 1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (v *view) u32(rel int) uint32 {
	return readU32(v.at(rel, 4))
}

func (v *view) i32(rel int) int32 {
	return int32(v.u32(rel))
}

func (v *view) u64(rel int) uint64 {
	return readU64(v.at(rel, 8))
}
