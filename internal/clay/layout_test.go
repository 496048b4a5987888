// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_Rectangular(t *testing.T) {
	sw := Swatch("0x000000")
	tests := []struct {
		name   string
		layout Layout
		want   bool
	}{
		{"3x3", Layout{{Cell{}, sw, Cell{}}, {sw, sw, sw}, {Cell{}, sw, Cell{}}}, true},
		{"1x1", Layout{{sw}}, true},
		{"ragged", Layout{{sw, sw}, {sw}}, false},
		{"no rows", Layout{}, false},
		{"empty row", Layout{{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.layout.Rectangular())
		})
	}
}

func TestLayout_String(t *testing.T) {
	sw := Swatch("0x000000")
	assert.Equal(t, "2x3", Layout{{sw, sw, sw}, {sw}}.String())
	assert.Equal(t, "0x0", Layout{}.String())
}

func TestCell_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Layout{{Cell{}, Swatch("0x0055ff")}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[false,"0x0055ff"]]`, string(out))
}
