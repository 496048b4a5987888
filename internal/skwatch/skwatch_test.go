// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package skwatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/skwatch/internal/clay"
)

func TestBundledMatchesSchema(t *testing.T) {
	bundled, err := Bundled()
	require.NoError(t, err)
	if diff := cmp.Diff(Schema(), bundled); diff != "" {
		t.Fatalf("config.js drifted from Schema() (-schema +config.js):\n%s", diff)
	}
}

func TestSchemaValidates(t *testing.T) {
	require.NoError(t, clay.Validate(Schema()))
}

func TestSchemaOutline(t *testing.T) {
	doc := Schema()
	require.Len(t, doc.Elements, 4)

	assert.Equal(t, clay.Heading{DefaultValue: "Skwatch Config"}, doc.Elements[0])
	assert.IsType(t, clay.Text{}, doc.Elements[1])
	assert.Equal(t, clay.Submit{DefaultValue: "Save Settings"}, doc.Elements[3])

	section, ok := doc.Elements[2].(clay.Section)
	require.True(t, ok)
	require.Len(t, section.Items, 1)

	c, ok := section.Items[0].(clay.Color)
	require.True(t, ok)
	assert.Equal(t, BackgroundColorKey, c.MessageKey)
	assert.Equal(t, clay.HexColor("0x000000"), c.DefaultValue)

	rows, cols := c.Layout.Dimensions()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	for _, corner := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
		assert.True(t, c.Layout[corner[0]][corner[1]].Empty(), "corner %v", corner)
	}
	assert.Equal(t, clay.HexColor("0x0055ff"), c.Layout[1][0].Color)
	assert.Equal(t, clay.HexColor("0x000000"), c.Layout[1][1].Color)
	assert.Equal(t, clay.HexColor("0x0000aa"), c.Layout[1][2].Color)
}

func TestSchemaDefaults(t *testing.T) {
	assert.Equal(t, clay.Settings{BackgroundColorKey: "0x000000"}, Schema().Defaults())
}

func TestArtifactIsCopy(t *testing.T) {
	a := Artifact()
	a[0] = 'X'
	assert.NotEqual(t, a[0], Artifact()[0])
}
