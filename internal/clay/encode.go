// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Wire forms fix the attribute order of the encoded output.

type valueWire struct {
	Type         Kind   `json:"type" yaml:"type"`
	DefaultValue string `json:"defaultValue" yaml:"defaultValue"`
}

type sectionWire struct {
	Type  Kind      `json:"type" yaml:"type"`
	Items []Element `json:"items" yaml:"items"`
}

type colorWire struct {
	Type         Kind     `json:"type" yaml:"type"`
	MessageKey   string   `json:"messageKey" yaml:"messageKey"`
	DefaultValue HexColor `json:"defaultValue" yaml:"defaultValue"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Sunlight     *bool    `json:"sunlight,omitempty" yaml:"sunlight,omitempty"`
	Layout       Layout   `json:"layout,omitempty" yaml:"layout,omitempty,flow"`
}

func (h Heading) wire() interface{} { return valueWire{Type: KindHeading, DefaultValue: h.DefaultValue} }
func (t Text) wire() interface{}    { return valueWire{Type: KindText, DefaultValue: t.DefaultValue} }
func (s Submit) wire() interface{}  { return valueWire{Type: KindSubmit, DefaultValue: s.DefaultValue} }

func (s Section) wire() interface{} {
	items := s.Items
	if items == nil {
		items = []Element{}
	}
	return sectionWire{Type: KindSection, Items: items}
}

func (c Color) wire() interface{} {
	return colorWire{
		Type:         KindColor,
		MessageKey:   c.MessageKey,
		DefaultValue: c.DefaultValue,
		Label:        c.Label,
		Sunlight:     c.Sunlight,
		Layout:       c.Layout,
	}
}

func (h Heading) MarshalJSON() ([]byte, error) { return marshalJSON(h.wire()) }
func (t Text) MarshalJSON() ([]byte, error)    { return marshalJSON(t.wire()) }
func (s Section) MarshalJSON() ([]byte, error) { return marshalJSON(s.wire()) }
func (c Color) MarshalJSON() ([]byte, error)   { return marshalJSON(c.wire()) }
func (s Submit) MarshalJSON() ([]byte, error)  { return marshalJSON(s.wire()) }

func (h Heading) MarshalYAML() (interface{}, error) { return h.wire(), nil }
func (t Text) MarshalYAML() (interface{}, error)    { return t.wire(), nil }
func (s Section) MarshalYAML() (interface{}, error) { return s.wire(), nil }
func (c Color) MarshalYAML() (interface{}, error)   { return c.wire(), nil }
func (s Submit) MarshalYAML() (interface{}, error)  { return s.wire(), nil }

// MarshalJSON encodes the document as a JSON array.
func (d Document) MarshalJSON() ([]byte, error) {
	return marshalJSON(d.elements())
}

// MarshalYAML encodes the document as a YAML sequence.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.elements(), nil
}

// UnmarshalJSON decodes a JSON array strictly; see Parse.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Parse(data, FormatJSON)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// UnmarshalYAML decodes a YAML sequence strictly; see Parse.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	w := &yamlWalker{budget: maxYAMLNodes}
	tree, err := w.tree(node)
	if err != nil {
		return err
	}
	doc, err := build(tree)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

func (d Document) elements() []Element {
	if d.Elements == nil {
		return []Element{}
	}
	return d.Elements
}

// Encode renders doc in the given format with two-space indentation and a
// trailing newline.
func Encode(doc *Document, format Format) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	switch format {
	case FormatJSON:
		return encodeJSON(doc)
	case FormatJS:
		body, err := encodeJSON(doc)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(jsModulePrefix)
		buf.Write(bytes.TrimRight(body, "\n"))
		buf.WriteString(";\n")
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func encodeJSON(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// marshalJSON is json.Marshal without HTML escaping, so labels such as
// "Black & White" stay readable in the bundled artifact.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
