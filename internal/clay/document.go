// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"errors"
	"fmt"
)

// Document is an ordered sequence of elements; order is render order.
type Document struct {
	Elements []Element
}

// New returns a document holding elems in the given order.
func New(elems ...Element) *Document {
	return &Document{Elements: elems}
}

// SkipChildren may be returned by a WalkFunc to skip a section's items.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every element visited by Walk. path locates the
// element in wire form, e.g. "[2].items[0]".
type WalkFunc func(path string, depth int, el Element) error

// Walk visits every element depth-first in render order. Nil elements are
// reported with a nil el.
func (d *Document) Walk(fn WalkFunc) error {
	if d == nil {
		return nil
	}
	return walk("", 0, d.Elements, fn)
}

func walk(prefix string, depth int, elems []Element, fn WalkFunc) error {
	for i, el := range elems {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		err := fn(path, depth, el)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if s, ok := el.(Section); ok {
			if err := walk(path+".items", depth+1, s.Items, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Colors returns every color element in render order, at any depth.
func (d *Document) Colors() []Color {
	var out []Color
	_ = d.Walk(func(_ string, _ int, el Element) error {
		if c, ok := el.(Color); ok {
			out = append(out, c)
		}
		return nil
	})
	return out
}

// Color returns the color element submitted under key.
func (d *Document) Color(key string) (Color, bool) {
	for _, c := range d.Colors() {
		if c.MessageKey == key {
			return c, true
		}
	}
	return Color{}, false
}

// Count returns the number of elements at any depth.
func (d *Document) Count() int {
	n := 0
	_ = d.Walk(func(string, int, Element) error {
		n++
		return nil
	})
	return n
}
