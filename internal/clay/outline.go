// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"fmt"
	"strings"
)

// Entry is one line of a document outline.
type Entry struct {
	Path         string `json:"path"`
	Depth        int    `json:"depth"`
	Kind         Kind   `json:"type"`
	MessageKey   string `json:"messageKey,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Label        string `json:"label,omitempty"`
	Items        int    `json:"items,omitempty"`
	Layout       string `json:"layout,omitempty"`
}

// Outline flattens the document into render order, depth-first.
func (d *Document) Outline() []Entry {
	var out []Entry
	_ = d.Walk(func(path string, depth int, el Element) error {
		e := Entry{Path: path, Depth: depth}
		switch v := el.(type) {
		case nil:
			return nil
		case Heading:
			e.DefaultValue = v.DefaultValue
		case Text:
			e.DefaultValue = v.DefaultValue
		case Submit:
			e.DefaultValue = v.DefaultValue
		case Section:
			e.Items = len(v.Items)
		case Color:
			e.MessageKey = v.MessageKey
			e.DefaultValue = string(v.DefaultValue)
			e.Label = v.Label
			if v.Layout != nil {
				e.Layout = v.Layout.String()
			}
		}
		e.Kind = el.Kind()
		out = append(out, e)
		return nil
	})
	return out
}

// String renders the entry indented by depth, e.g.
// `  color BackgroundColor=0x000000 "Background Color" [3x3]`.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", e.Depth))
	b.WriteString(string(e.Kind))
	switch e.Kind {
	case KindSection:
		noun := "items"
		if e.Items == 1 {
			noun = "item"
		}
		fmt.Fprintf(&b, " (%d %s)", e.Items, noun)
	case KindColor:
		fmt.Fprintf(&b, " %s=%s", e.MessageKey, e.DefaultValue)
		if e.Label != "" {
			fmt.Fprintf(&b, " %q", e.Label)
		}
		if e.Layout != "" {
			fmt.Fprintf(&b, " [%s]", e.Layout)
		}
	default:
		fmt.Fprintf(&b, " %q", e.DefaultValue)
	}
	return b.String()
}
