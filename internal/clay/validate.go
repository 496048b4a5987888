// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/skwatch/internal/validate"
)

// Validate checks the semantic invariants of doc and reports every violation
// in one validate.ValidationError:
//
//   - color messageKeys are non-empty and unique at any depth (compared after
//     NFC normalization)
//   - color defaultValues and layout swatches are 0xRRGGBB literals
//   - layouts are rectangular with at least one row and column
//   - display elements carry a non-empty defaultValue
func Validate(doc *Document) error {
	v := validate.New()
	if doc == nil {
		v.Structural("$", "document is nil")
		return v.Err()
	}

	seen := make(map[string]string)
	_ = doc.Walk(func(path string, _ int, el Element) error {
		switch e := el.(type) {
		case nil:
			v.Structural(path, "element is nil")
		case Heading:
			requireText(v, path, e.DefaultValue)
		case Text:
			requireText(v, path, e.DefaultValue)
		case Submit:
			requireText(v, path, e.DefaultValue)
		case Section:
			if e.Items == nil {
				v.Structural(path+".items", "items is required")
			}
		case Color:
			validateColor(v, path, e, seen)
		}
		return nil
	})
	return v.Err()
}

func requireText(v *validate.Validator, path, value string) {
	if value == "" {
		v.Structural(path+".defaultValue", "defaultValue is required")
	}
}

func validateColor(v *validate.Validator, path string, c Color, seen map[string]string) {
	if c.MessageKey == "" {
		v.Structural(path+".messageKey", "messageKey is required")
	} else {
		key := norm.NFC.String(c.MessageKey)
		if first, dup := seen[key]; dup {
			v.Duplicate(path+".messageKey",
				fmt.Sprintf("duplicate messageKey %q (first declared at %s)", c.MessageKey, first),
				c.MessageKey)
		} else {
			seen[key] = path
		}
	}

	switch {
	case c.DefaultValue == "":
		v.Structural(path+".defaultValue", "defaultValue is required")
	case !c.DefaultValue.Valid():
		v.AddError(path+".defaultValue",
			fmt.Sprintf("invalid hex color %q (want 0xRRGGBB)", c.DefaultValue), string(c.DefaultValue))
	}

	if c.Layout == nil {
		return
	}
	lpath := path + ".layout"
	if !c.Layout.Rectangular() {
		rows, cols := c.Layout.Dimensions()
		if rows == 0 || cols == 0 {
			v.AddError(lpath, "layout must have at least one row and one column", c.Layout.String())
		} else {
			v.AddError(lpath, fmt.Sprintf("layout rows must have equal length (widest row has %d cells)", cols), c.Layout.String())
		}
	}
	for i, row := range c.Layout {
		for j, cell := range row {
			if !cell.Empty() && !cell.Color.Valid() {
				v.AddError(fmt.Sprintf("%s[%d][%d]", lpath, i, j),
					fmt.Sprintf("invalid hex color %q (want false or 0xRRGGBB)", cell.Color), string(cell.Color))
			}
		}
	}
}
