// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the exported schema.
const SchemaID = "https://github.com/ManuGH/skwatch/schema/config.json"

// JSONSchema describes the wire form of a document. messageKey uniqueness and
// layout rectangularity cannot be expressed and are left to Validate.
func JSONSchema() *jsonschema.Schema {
	ref := func(name string) *jsonschema.Schema {
		return &jsonschema.Schema{Ref: "#/$defs/" + name}
	}
	minLen := uint64(1)
	minItems := uint64(1)

	textKind := func(kind Kind, desc string) *jsonschema.Schema {
		props := jsonschema.NewProperties()
		props.Set("type", &jsonschema.Schema{Const: string(kind)})
		props.Set("defaultValue", &jsonschema.Schema{Type: "string", MinLength: &minLen})
		return &jsonschema.Schema{
			Type:                 "object",
			Description:          desc,
			Properties:           props,
			Required:             []string{"type", "defaultValue"},
			AdditionalProperties: jsonschema.FalseSchema,
		}
	}

	sectionProps := jsonschema.NewProperties()
	sectionProps.Set("type", &jsonschema.Schema{Const: string(KindSection)})
	sectionProps.Set("items", &jsonschema.Schema{Type: "array", Items: ref("element")})

	colorProps := jsonschema.NewProperties()
	colorProps.Set("type", &jsonschema.Schema{Const: string(KindColor)})
	colorProps.Set("messageKey", &jsonschema.Schema{
		Type:        "string",
		MinLength:   &minLen,
		Description: "Key the value is submitted under. Unique across the document.",
	})
	colorProps.Set("defaultValue", ref("hexColor"))
	colorProps.Set("label", &jsonschema.Schema{Type: "string"})
	colorProps.Set("sunlight", &jsonschema.Schema{Type: "boolean"})
	colorProps.Set("layout", ref("layout"))

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          jsonschema.ID(SchemaID),
		Title:       "Skwatch settings document",
		Description: "Ordered settings form elements; order is render order.",
		Type:        "array",
		Items:       ref("element"),
		Definitions: jsonschema.Definitions{
			"element": {
				OneOf: []*jsonschema.Schema{
					ref("heading"), ref("text"), ref("section"), ref("color"), ref("submit"),
				},
			},
			"heading": textKind(KindHeading, "Section title."),
			"text":    textKind(KindText, "Descriptive paragraph."),
			"submit":  textKind(KindSubmit, "Submit button; defaultValue is the label."),
			"section": {
				Type:                 "object",
				Description:          "Groups nested elements.",
				Properties:           sectionProps,
				Required:             []string{"type", "items"},
				AdditionalProperties: jsonschema.FalseSchema,
			},
			"color": {
				Type:                 "object",
				Description:          "Color picker.",
				Properties:           colorProps,
				Required:             []string{"type", "messageKey", "defaultValue"},
				AdditionalProperties: jsonschema.FalseSchema,
			},
			"hexColor": {
				Type:    "string",
				Pattern: HexColorPattern,
			},
			"layout": {
				Type:        "array",
				Description: "Swatch grid. Rows must have equal length.",
				MinItems:    &minItems,
				Items: &jsonschema.Schema{
					Type:     "array",
					MinItems: &minItems,
					Items: &jsonschema.Schema{
						OneOf: []*jsonschema.Schema{
							{Const: false},
							ref("hexColor"),
						},
					},
				},
			},
		},
	}
}
