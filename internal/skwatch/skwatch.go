// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package skwatch holds the settings document of the Skwatch watchface.
package skwatch

import (
	_ "embed"

	"github.com/ManuGH/skwatch/internal/clay"
)

// ArtifactName is the file name the companion app bundles.
const ArtifactName = "config.js"

// BackgroundColorKey is the message key the watch reads the background from.
const BackgroundColorKey = "BackgroundColor"

//go:embed config.js
var artifact []byte

// Artifact returns the bundled config.js as shipped to the companion app.
func Artifact() []byte {
	out := make([]byte, len(artifact))
	copy(out, artifact)
	return out
}

// Schema returns the Skwatch settings document.
func Schema() *clay.Document {
	empty := clay.Cell{}
	black := clay.Swatch("0x000000")
	return clay.New(
		clay.Heading{DefaultValue: "Skwatch Config"},
		clay.Text{DefaultValue: "Set the Skwatch options here."},
		clay.Section{Items: []clay.Element{
			clay.Color{
				MessageKey:   BackgroundColorKey,
				DefaultValue: "0x000000",
				Label:        "Background Color",
				Sunlight:     clay.Bool(true),
				Layout: clay.Layout{
					{empty, black, empty},
					{clay.Swatch("0x0055ff"), black, clay.Swatch("0x0000aa")},
					{empty, black, empty},
				},
			},
		}},
		clay.Submit{DefaultValue: "Save Settings"},
	)
}

// Bundled decodes the embedded artifact.
func Bundled() (*clay.Document, error) {
	return clay.Parse(artifact, clay.FormatJS)
}
