// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ManuGH/skwatch/internal/validate"
)

// maxJSONDepth bounds array/object nesting while walking JSON tokens.
const maxJSONDepth = 128

// jsonTree decodes data into generic values, keeping numbers as json.Number.
// Duplicate object keys and trailing content after the first value are
// rejected.
func jsonTree(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tree, err := jsonValue(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		if errors.Is(err, ErrSyntax) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected content after document", ErrSyntax)
	}
	return tree, nil
}

func jsonValue(dec *json.Decoder, depth int) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		if depth > 0 && errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth >= maxJSONDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrSyntax, maxJSONDepth)
	}

	switch delim {
	case '[':
		out := make([]interface{}, 0)
		for dec.More() {
			v, err := jsonValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, closeDelim(dec)
	case '{':
		out := make(map[string]interface{})
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: object key must be a string", ErrSyntax)
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("%w: duplicate key %q", ErrSyntax, key)
			}
			v, err := jsonValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, closeDelim(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, delim)
	}
}

// closeDelim consumes the ] or } that ends the current array or object.
func closeDelim(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// decoder turns a generic tree into typed elements, collecting every
// structural issue instead of stopping at the first.
type decoder struct {
	v *validate.Validator
}

func build(tree interface{}) (*Document, error) {
	d := &decoder{v: validate.New()}
	arr, ok := tree.([]interface{})
	if !ok {
		d.v.Structural("$", fmt.Sprintf("document must be an array, got %s", typeName(tree)))
		return nil, d.v.Err()
	}
	doc := &Document{Elements: d.elements("", arr)}
	if err := d.v.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *decoder) elements(prefix string, arr []interface{}) []Element {
	out := make([]Element, 0, len(arr))
	for i, raw := range arr {
		out = append(out, d.element(fmt.Sprintf("%s[%d]", prefix, i), raw))
	}
	return out
}

func (d *decoder) element(path string, raw interface{}) Element {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		d.v.Structural(path, fmt.Sprintf("element must be an object, got %s", typeName(raw)))
		return nil
	}
	rawKind, ok := obj["type"]
	if !ok {
		d.v.Structural(path+".type", "type is required")
		return nil
	}
	name, ok := rawKind.(string)
	if !ok {
		d.v.Structural(path+".type", fmt.Sprintf("type must be a string, got %s", typeName(rawKind)))
		return nil
	}
	kind := Kind(name)
	allowed, ok := attributes[kind]
	if !ok {
		d.v.Structural(path+".type", fmt.Sprintf("unknown element type %q", name))
		return nil
	}
	d.unknownAttributes(path, obj, allowed)

	switch kind {
	case KindHeading:
		return Heading{DefaultValue: d.requiredString(path, obj, "defaultValue")}
	case KindText:
		return Text{DefaultValue: d.requiredString(path, obj, "defaultValue")}
	case KindSubmit:
		return Submit{DefaultValue: d.requiredString(path, obj, "defaultValue")}
	case KindSection:
		return Section{Items: d.items(path, obj)}
	default:
		return Color{
			MessageKey:   d.requiredString(path, obj, "messageKey"),
			DefaultValue: HexColor(d.requiredString(path, obj, "defaultValue")),
			Label:        d.optionalString(path, obj, "label"),
			Sunlight:     d.optionalBool(path, obj, "sunlight"),
			Layout:       d.layout(path, obj),
		}
	}
}

func (d *decoder) unknownAttributes(path string, obj map[string]interface{}, allowed []string) {
	known := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		known[a] = true
	}
	var unknown []string
	for k := range obj {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		d.v.Structural(path+"."+k, fmt.Sprintf("unknown attribute %q for %s", k, obj["type"]))
	}
}

// requiredString treats an empty string the same as a missing attribute.
func (d *decoder) requiredString(path string, obj map[string]interface{}, key string) string {
	raw, ok := obj[key]
	if !ok {
		d.v.Structural(path+"."+key, key+" is required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.v.Structural(path+"."+key, fmt.Sprintf("%s must be a string, got %s", key, typeName(raw)))
		return ""
	}
	if s == "" {
		d.v.Structural(path+"."+key, key+" is required")
	}
	return s
}

func (d *decoder) optionalString(path string, obj map[string]interface{}, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.v.Structural(path+"."+key, fmt.Sprintf("%s must be a string, got %s", key, typeName(raw)))
		return ""
	}
	return s
}

func (d *decoder) optionalBool(path string, obj map[string]interface{}, key string) *bool {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		d.v.Structural(path+"."+key, fmt.Sprintf("%s must be a boolean, got %s", key, typeName(raw)))
		return nil
	}
	return &b
}

func (d *decoder) items(path string, obj map[string]interface{}) []Element {
	raw, ok := obj["items"]
	if !ok {
		d.v.Structural(path+".items", "items is required")
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		d.v.Structural(path+".items", fmt.Sprintf("items must be an array, got %s", typeName(raw)))
		return nil
	}
	return d.elements(path+".items", arr)
}

// layout decodes the swatch grid. Invalid cells become empty placeholders so
// row lengths, and therefore the rectangularity check, are unaffected.
func (d *decoder) layout(path string, obj map[string]interface{}) Layout {
	raw, ok := obj["layout"]
	if !ok {
		return nil
	}
	path += ".layout"
	rows, ok := raw.([]interface{})
	if !ok {
		d.v.Structural(path, fmt.Sprintf("layout must be an array of rows, got %s", typeName(raw)))
		return nil
	}
	out := make(Layout, 0, len(rows))
	for i, rawRow := range rows {
		rowPath := fmt.Sprintf("%s[%d]", path, i)
		cells, ok := rawRow.([]interface{})
		if !ok {
			d.v.Structural(rowPath, fmt.Sprintf("layout row must be an array, got %s", typeName(rawRow)))
			out = append(out, nil)
			continue
		}
		row := make([]Cell, len(cells))
		for j, cell := range cells {
			switch c := cell.(type) {
			case bool:
				if c {
					d.v.AddError(fmt.Sprintf("%s[%d]", rowPath, j), "layout cell must be false or a hex color", c)
				}
			case string:
				if c == "" {
					d.v.AddError(fmt.Sprintf("%s[%d]", rowPath, j), "layout cell must be false or a hex color", c)
					continue
				}
				row[j] = Swatch(HexColor(c))
			default:
				d.v.AddError(fmt.Sprintf("%s[%d]", rowPath, j),
					fmt.Sprintf("layout cell must be false or a hex color, got %s", typeName(cell)), cell)
			}
		}
		out = append(out, row)
	}
	return out
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
