// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"fmt"
	"regexp"
	"strconv"
)

// HexColorPattern is the accepted form of a 24-bit color literal.
const HexColorPattern = `^0x[0-9a-fA-F]{6}$`

var hexColorRe = regexp.MustCompile(HexColorPattern)

// HexColor is a 24-bit color literal of the form 0xRRGGBB.
type HexColor string

// ParseHexColor returns s as a HexColor if it is a valid literal.
func ParseHexColor(s string) (HexColor, error) {
	c := HexColor(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid hex color %q (want 0xRRGGBB)", s)
	}
	return c, nil
}

// FromRGB formats the low 24 bits of v as a HexColor.
func FromRGB(v uint32) HexColor {
	return HexColor(fmt.Sprintf("0x%06x", v&0xFFFFFF))
}

// Valid reports whether c matches HexColorPattern.
func (c HexColor) Valid() bool {
	return hexColorRe.MatchString(string(c))
}

// RGB returns the numeric value of c.
func (c HexColor) RGB() (uint32, bool) {
	if !c.Valid() {
		return 0, false
	}
	v, err := strconv.ParseUint(string(c[2:]), 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// GColor8 quantizes c to the watch's 64-color palette: an opaque ARGB byte
// with two bits per channel, matching GColorFromHEX on the device.
func (c HexColor) GColor8() (uint8, bool) {
	v, ok := c.RGB()
	if !ok {
		return 0, false
	}
	r := uint8(v>>16) >> 6
	g := uint8(v>>8) >> 6
	b := uint8(v) >> 6
	return 0b11<<6 | r<<4 | g<<2 | b, true
}

func (c HexColor) String() string {
	return string(c)
}
