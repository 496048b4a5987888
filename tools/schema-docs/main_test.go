// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/skwatch/internal/clay"
)

func TestRender(t *testing.T) {
	data, err := json.Marshal(clay.JSONSchema())
	require.NoError(t, err)
	var root Schema
	require.NoError(t, json.Unmarshal(data, &root))

	md := string(render(root))

	assert.True(t, strings.HasPrefix(md, "# Skwatch settings document\n"))
	for _, kind := range []string{"heading", "text", "section", "color", "submit"} {
		assert.Contains(t, md, "## `"+kind+"`\n")
	}
	assert.Contains(t, md, "| `messageKey` | `string` | ✓ | Key the value is submitted under. Unique across the document. |")
	assert.Contains(t, md, "| `defaultValue` | `hexColor` | ✓ |")
	assert.Contains(t, md, "| `items` | `array<element>` | ✓ |")
	assert.Contains(t, md, "| `type` | `\"color\"` | ✓ |")
	assert.Contains(t, md, "### `hexColor`")
	assert.Contains(t, md, "**Pattern:** `"+clay.HexColorPattern+"`")
	assert.NotContains(t, md, "### `element`")

	// kinds are listed in render order of the oneOf
	assert.Less(t, strings.Index(md, "## `heading`"), strings.Index(md, "## `submit`"))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		node Schema
		want string
	}{
		{Schema{"type": "string"}, "string"},
		{Schema{"$ref": "#/$defs/layout"}, "layout"},
		{Schema{"const": false}, "false"},
		{Schema{"oneOf": []any{map[string]any{"const": false}, map[string]any{"$ref": "#/$defs/hexColor"}}}, "false|hexColor"},
		{Schema{}, "any"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeOf(tt.node))
	}
}
