package catalog

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// Color is an RGBA map color.
type Color struct {
	R, G, B, A uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is how a road look is drawn on debug maps.
type Style struct {
	Fill    Color `json:"fill"`
	Outline Color `json:"outline"`
}

// styleRule assigns a style to road look names containing any key.
type styleRule struct {
	Keys  []string
	Style Style
}

// styleRules are checked in order; the first match wins.
var styleRules = []styleRule{
	{Keys: []string{"ferry"}, Style: Style{Fill: Color{90, 190, 230, 255}, Outline: Color{30, 110, 160, 255}}},
	{Keys: []string{"train", "rail"}, Style: Style{Fill: Color{200, 70, 50, 255}, Outline: Color{120, 30, 20, 255}}},
	{Keys: []string{"motorway", "highway", "freeway"}, Style: Style{Fill: Color{60, 120, 220, 255}, Outline: Color{20, 60, 160, 255}}},
	{Keys: []string{"expressway", "exp"}, Style: Style{Fill: Color{95, 115, 140, 255}, Outline: Color{50, 70, 100, 255}}},
	{Keys: []string{"city", "town"}, Style: Style{Fill: Color{230, 170, 70, 255}, Outline: Color{170, 110, 25, 255}}},
	{Keys: []string{"grav", "dirt", "quarry"}, Style: Style{Fill: Color{190, 145, 90, 255}, Outline: Color{120, 80, 40, 255}}},
	{Keys: []string{"local", "rural"}, Style: Style{Fill: Color{170, 170, 170, 255}, Outline: Color{100, 100, 100, 255}}},
}

// StyleFor returns the style of a road look name. Unknown names get a
// stable color derived from the name.
func StyleFor(name string) Style {
	name = strings.ToLower(name)
	for _, rule := range styleRules {
		for _, k := range rule.Keys {
			if strings.Contains(name, k) {
				return rule.Style
			}
		}
	}

	fill := hashColor(name)
	return Style{Fill: fill, Outline: darkenAndSaturate(fill, 0.7, 1.25)}
}

// Style returns the style of the road look; nil looks are drawn grey.
func (l *RoadLook) Style() Style {
	if l == nil {
		return Style{Fill: Color{128, 128, 128, 255}, Outline: Color{64, 64, 64, 255}}
	}

	return StyleFor(l.Name)
}

// Dim returns s shaded for items hidden from the in-game map.
func (s Style) Dim() Style {
	return Style{Fill: darken(s.Fill, 0.5), Outline: darken(s.Outline, 0.5)}
}

func hashColor(name string) Color {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], xxhash.Sum64String(name))
	h := binary.LittleEndian.Uint32(buf[:4]) ^ binary.LittleEndian.Uint32(buf[4:])

	r := byte(60 + (h&0xff)%160)
	g := byte(60 + ((h>>8)&0xff)%160)
	b := byte(60 + ((h>>16)&0xff)%160)

	avg := (int(r) + int(g) + int(b)) / 3
	return Color{
		R: clampByte(avg + int(float64(int(r)-avg)*1.2)),
		G: clampByte(avg + int(float64(int(g)-avg)*1.2)),
		B: clampByte(avg + int(float64(int(b)-avg)*1.2)),
		A: 255,
	}
}

func darkenAndSaturate(c Color, factor, sat float64) Color {
	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	shade := func(v uint8) uint8 {
		s := clampByte(int(float64(int(v)-avg)*sat) + avg)
		return clampByte(int(float64(s) * factor))
	}

	return Color{R: shade(c.R), G: shade(c.G), B: shade(c.B), A: 255}
}

func darken(c Color, factor float64) Color {
	return Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// clampByte keeps generated colors away from black and white.
func clampByte(v int) byte {
	if v < 40 {
		return 40
	}
	if v > 220 {
		return 220
	}

	return byte(v)
}
