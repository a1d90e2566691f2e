package sector

import (
	"bytes"
	"encoding/binary"
)

// Candidates returns every offset in data where the little-endian encoding
// of uid starts, in ascending order. Overlapping matches are reported.
func Candidates(data []byte, uid uint64) []int {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], uid)

	var out []int
	for from := 0; from+len(key) <= len(data); {
		i := bytes.Index(data[from:], key[:])
		if i < 0 {
			break
		}

		out = append(out, from+i)
		from += i + 1
	}

	return out
}

// FindItem searches the item region of the sector for the record with uid.
// Every occurrence of the identifier is a candidate; the four bytes before it
// must hold a known kind tag and the record must decode as valid. The first
// valid candidate in scan order wins: offsets are not otherwise
// distinguishable, so a structurally valid false positive earlier in the
// buffer shadows the real record.
func (s *Sector) FindItem(uid uint64, env Env) *Item {
	if uid == 0 || !s.Usable() {
		return nil
	}

	if it, ok := s.Items[uid]; ok {
		return it
	}

	env.Sector = s.Nodes
	for _, pos := range Candidates(s.Data[:s.FooterOffset], uid) {
		off := pos - itemUIDOffset
		if off < 0 {
			continue
		}

		tag := readU32(s.Data[off:])
		if !plausibleTag(tag) || !Kind(tag).Known() {
			continue
		}

		it := DecodeItem(s.Data, Kind(tag), off, env)
		if !it.Valid {
			continue
		}

		it.Sector = s.Name
		s.Items[uid] = it
		return it
	}

	return nil
}
