// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"encoding/json"
	"fmt"
)

// Layout is a grid of palette swatches, row by row.
type Layout [][]Cell

// Cell is one swatch slot. The zero Cell is an empty slot, encoded as false.
type Cell struct {
	Color HexColor
}

// Swatch returns a cell holding c. Swatch("") is the empty slot; decoders
// reject "" in input so it never stands in for false.
func Swatch(c HexColor) Cell {
	return Cell{Color: c}
}

// Empty reports whether the slot holds no color.
func (c Cell) Empty() bool {
	return c.Color == ""
}

// MarshalJSON encodes an empty slot as false and a swatch as its literal.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Empty() {
		return []byte("false"), nil
	}
	return json.Marshal(string(c.Color))
}

// MarshalYAML mirrors MarshalJSON.
func (c Cell) MarshalYAML() (interface{}, error) {
	if c.Empty() {
		return false, nil
	}
	return string(c.Color), nil
}

// Dimensions returns the row count and the widest row length.
func (l Layout) Dimensions() (rows, cols int) {
	for _, row := range l {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(l), cols
}

// Rectangular reports whether l has at least one row and column and every row
// has the same length.
func (l Layout) Rectangular() bool {
	if len(l) == 0 || len(l[0]) == 0 {
		return false
	}
	for _, row := range l[1:] {
		if len(row) != len(l[0]) {
			return false
		}
	}
	return true
}

// String renders the dimensions, e.g. "3x3".
func (l Layout) String() string {
	rows, cols := l.Dimensions()
	return fmt.Sprintf("%dx%d", rows, cols)
}
