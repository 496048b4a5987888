// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x000000", false},
		{"0x0055ff", false},
		{"0xABCDEF", false},
		{"0X000000", true},
		{"#0055ff", true},
		{"0x0055f", true},
		{"0x0055fff", true},
		{"0x00gg00", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHexColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, HexColor(tt.in).Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, HexColor(tt.in), c)
		})
	}
}

func TestHexColor_RGB(t *testing.T) {
	v, ok := HexColor("0x0055ff").RGB()
	require.True(t, ok)
	assert.Equal(t, uint32(0x0055ff), v)

	_, ok = HexColor("blue").RGB()
	assert.False(t, ok)
}

func TestFromRGB(t *testing.T) {
	assert.Equal(t, HexColor("0x0055ff"), FromRGB(22015))
	assert.Equal(t, HexColor("0x000000"), FromRGB(0))
	assert.Equal(t, HexColor("0xffffff"), FromRGB(0xFFFFFFFF))
}

func TestHexColor_GColor8(t *testing.T) {
	tests := []struct {
		color HexColor
		want  uint8
	}{
		{"0x000000", 0b11000000},
		{"0xffffff", 0b11111111},
		{"0x0055ff", 0b11000111},
		{"0x0000aa", 0b11000010},
		{"0xff0000", 0b11110000},
	}
	for _, tt := range tests {
		t.Run(string(tt.color), func(t *testing.T) {
			got, ok := tt.color.GColor8()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := HexColor("0x12").GColor8()
	assert.False(t, ok)
}
