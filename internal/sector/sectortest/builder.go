// Package sectortest builds synthetic sector files for tests.
package sectortest

import (
	"encoding/binary"
	"math"
)

// Node describes a node record to emit.
type Node struct {
	UID      uint64
	Forward  uint64
	Backward uint64
	X, Y, Z  float64
	Yaw      float64
}

// Builder assembles a sector file: header, item records, node counter and
// node table.
type Builder struct {
	items    []byte
	offsets  []int
	nodes    []Node
	declared *uint32
}

const headerSize = 0x14

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Node appends a node record.
func (b *Builder) Node(n Node) *Builder {
	b.nodes = append(b.nodes, n)
	return b
}

// Declare overrides the node count written in the header.
func (b *Builder) Declare(n uint32) *Builder {
	b.declared = &n
	return b
}

// Raw appends arbitrary bytes to the item region and returns their offset.
func (b *Builder) Raw(p []byte) int {
	off := headerSize + len(b.items)
	b.items = append(b.items, p...)
	b.offsets = append(b.offsets, off)

	return off
}

// Record appends an item record of size bytes with the kind tag and uid
// filled in; set may write further fields. It returns the record offset.
func (b *Builder) Record(kind uint32, uid uint64, size int, set func(rec []byte)) int {
	rec := make([]byte, size)
	binary.LittleEndian.PutUint32(rec[0:], kind)
	binary.LittleEndian.PutUint64(rec[4:], uid)
	if set != nil {
		set(rec)
	}

	return b.Raw(rec)
}

// Road appends a road item.
func (b *Builder) Road(uid, start, end uint64, look uint32, stamps int) int {
	return b.Record(0x02, uid, 437+24*stamps, func(rec []byte) {
		binary.LittleEndian.PutUint32(rec[61:], look)
		binary.LittleEndian.PutUint64(rec[141:], start)
		binary.LittleEndian.PutUint64(rec[149:], end)
		binary.LittleEndian.PutUint32(rec[433:], uint32(int32(stamps)))
	})
}

// Prefab appends a prefab item with no trailing entries after the node list.
func (b *Builder) Prefab(uid uint64, def uint32, origin uint8, nodes ...uint64) int {
	n := len(nodes)
	return b.Record(0x03, uid, 0x61+8*n+1, func(rec []byte) {
		binary.LittleEndian.PutUint32(rec[57:], def)
		binary.LittleEndian.PutUint32(rec[81:], uint32(int32(n)))
		for i, id := range nodes {
			binary.LittleEndian.PutUint64(rec[85+8*i:], id)
		}
		binary.LittleEndian.PutUint32(rec[85+8*n:], 0)
		rec[0x61+8*n] = origin
	})
}

// City appends a city item.
func (b *Builder) City(uid, city, node uint64) int {
	return b.Record(0x0B, uid, 81, func(rec []byte) {
		binary.LittleEndian.PutUint64(rec[57:], city)
		binary.LittleEndian.PutUint64(rec[73:], node)
	})
}

// Company appends a company item with spots trailing spot nodes.
func (b *Builder) Company(uid, company, prefab, job, load uint64, spots ...uint64) int {
	return b.Record(0x05, uid, 109+8*len(spots), func(rec []byte) {
		binary.LittleEndian.PutUint64(rec[57:], company)
		binary.LittleEndian.PutUint64(rec[73:], prefab)
		binary.LittleEndian.PutUint64(rec[81:], job)
		binary.LittleEndian.PutUint64(rec[93:], load)
		for i, id := range spots {
			binary.LittleEndian.PutUint64(rec[109+8*i:], id)
		}
	})
}

// Fixed appends a constant-size item with node references at offsets.
func (b *Builder) Fixed(kind uint32, uid uint64, size int, nodes map[int]uint64) int {
	return b.Record(kind, uid, size, func(rec []byte) {
		for off, id := range nodes {
			binary.LittleEndian.PutUint64(rec[off:], id)
		}
	})
}

// List appends a counted node list item (cut plane, traffic rule, trigger).
func (b *Builder) List(kind uint32, uid uint64, base int, nodes ...uint64) int {
	return b.Record(kind, uid, base+8*len(nodes), func(rec []byte) {
		binary.LittleEndian.PutUint32(rec[57:], uint32(int32(len(nodes))))
		for i, id := range nodes {
			binary.LittleEndian.PutUint64(rec[61+8*i:], id)
		}
	})
}

// Offsets returns the offsets of the appended records in order.
func (b *Builder) Offsets() []int {
	return append([]int(nil), b.offsets...)
}

// Bytes renders the sector file. A sector without nodes ends with a zero
// sentinel record.
func (b *Builder) Bytes() []byte {
	declared := uint32(len(b.nodes))
	if b.declared != nil {
		declared = *b.declared
	}

	out := make([]byte, headerSize, headerSize+len(b.items)+4+56*(len(b.nodes)+1))
	binary.LittleEndian.PutUint32(out[0x10:], declared)
	out = append(out, b.items...)

	var counter [4]byte
	binary.LittleEndian.PutUint32(counter[:], uint32(len(b.nodes)))
	out = append(out, counter[:]...)

	if len(b.nodes) == 0 {
		return append(out, make([]byte, 56)...)
	}

	for _, n := range b.nodes {
		out = append(out, EncodeNode(n)...)
	}

	return out
}

// EncodeNode renders one 56-byte node record.
func EncodeNode(n Node) []byte {
	rec := make([]byte, 56)
	binary.LittleEndian.PutUint64(rec[0:], n.UID)
	binary.LittleEndian.PutUint32(rec[8:], uint32(int32(math.Round(n.X*256))))
	binary.LittleEndian.PutUint32(rec[12:], uint32(int32(math.Round(n.Y*256))))
	binary.LittleEndian.PutUint32(rec[16:], uint32(int32(math.Round(n.Z*256))))

	rx, rz := Rotation(n.Yaw)
	binary.LittleEndian.PutUint32(rec[20:], math.Float32bits(rx))
	binary.LittleEndian.PutUint32(rec[28:], math.Float32bits(rz))

	binary.LittleEndian.PutUint64(rec[36:], n.Backward)
	binary.LittleEndian.PutUint64(rec[44:], n.Forward)

	return rec
}

// Rotation returns raw rotation floats that decode back to yaw.
func Rotation(yaw float64) (rx, rz float32) {
	theta := math.Pi/2 - yaw
	x, z := math.Cos(theta), math.Sin(theta)
	if math.Abs(x) < 1e-7 {
		x = 0
	}
	if math.Abs(z) < 1e-7 {
		z = 0
	}

	return float32(x), float32(z)
}
