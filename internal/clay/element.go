// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

// Kind is the "type" tag of an element.
type Kind string

const (
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindSection Kind = "section"
	KindColor   Kind = "color"
	KindSubmit  Kind = "submit"
)

// Kinds lists every supported kind in declaration order.
var Kinds = []Kind{KindHeading, KindText, KindSection, KindColor, KindSubmit}

// attributes lists the wire attributes accepted per kind, "type" included.
var attributes = map[Kind][]string{
	KindHeading: {"type", "defaultValue"},
	KindText:    {"type", "defaultValue"},
	KindSection: {"type", "items"},
	KindColor:   {"type", "messageKey", "defaultValue", "label", "sunlight", "layout"},
	KindSubmit:  {"type", "defaultValue"},
}

// Element is one renderable item of a settings form. The set of
// implementations is closed: Heading, Text, Section, Color and Submit.
type Element interface {
	Kind() Kind
	element()
}

// Heading is a display-only section title.
type Heading struct {
	DefaultValue string
}

// Text is a display-only descriptive paragraph.
type Text struct {
	DefaultValue string
}

// Section groups nested elements visually. Items may contain further sections.
type Section struct {
	Items []Element
}

// Color is a user-selectable color value, submitted under MessageKey.
type Color struct {
	MessageKey   string
	DefaultValue HexColor
	Label        string
	// Sunlight is the display-mode hint; nil leaves it to the renderer.
	Sunlight *bool
	// Layout is the palette swatch arrangement; nil means the renderer default.
	Layout Layout
}

// Submit triggers form submission; DefaultValue is the button label.
type Submit struct {
	DefaultValue string
}

func (Heading) Kind() Kind { return KindHeading }
func (Text) Kind() Kind    { return KindText }
func (Section) Kind() Kind { return KindSection }
func (Color) Kind() Kind   { return KindColor }
func (Submit) Kind() Kind  { return KindSubmit }

func (Heading) element() {}
func (Text) element()    {}
func (Section) element() {}
func (Color) element()   {}
func (Submit) element()  {}

// Bool returns a pointer to b, for optional attributes such as Color.Sunlight.
func Bool(b bool) *bool {
	return &b
}
